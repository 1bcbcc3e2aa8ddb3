package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSONL writes one JSON object per file of r, one per line.
func WriteJSONL(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	for i := range r.Files {
		if err := enc.Encode(&r.Files[i]); err != nil {
			return fmt.Errorf("encode %s: %w", r.Files[i].Path, err)
		}
	}
	return nil
}

// SaveJSONL writes r as JSON lines to the file at path.
func SaveJSONL(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create JSONL file: %w", err)
	}
	if err := WriteJSONL(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
