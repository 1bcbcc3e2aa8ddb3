package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"TEXT", FormatText, false},
		{"", FormatText, false},
		{"json", FormatJSON, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{"toon", FormatTOON, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	var stdout bytes.Buffer
	f, err := Open(FormatText, "", &stdout, true)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if f.Writer() != &stdout || !f.Colored() || f.file != nil {
		t.Error("Open without a path should write to stdout keeping color")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() should not error for stdout: %v", err)
	}

	outputPath := filepath.Join(t.TempDir(), "report.json")
	f, err = Open(FormatJSON, outputPath, &stdout, true)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if f.Colored() {
		t.Error("colored should be false when writing to file")
	}
	if err := f.Output(map[string]int{"total_files": 3}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `"total_files": 3`) {
		t.Errorf("unexpected file content %q", data)
	}

	if _, err := Open(FormatText, filepath.Join(t.TempDir(), "missing", "x.txt"), &stdout, false); err == nil {
		t.Error("Open() should error for an invalid path")
	}
}

func sampleTable() *Table {
	return NewTable(
		"Complexity",
		[]string{"File", "Status", "Score"},
		[][]string{
			{"a.go", "ok", "3"},
			{"b.go", "error", "25"},
		},
		[]string{"Total", "", "28"},
		nil,
	)
}

func TestTableRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTable().RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Complexity", "==========", "FILE", "STATUS", "a.go", "b.go", "25", "28"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := sampleTable()
	table.Rows = append(table.Rows, []string{"c|d.go", "ok", "1"})

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"## Complexity",
		"| File | Status | Score |",
		"| --- | --- | --- |",
		"| b.go | error | 25 |",
		`| c\|d.go | ok | 1 |`,
		"| Total |  | 28 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderData(t *testing.T) {
	data, ok := sampleTable().RenderData().([]map[string]string)
	if !ok {
		t.Fatal("RenderData() without Data should return row maps")
	}
	if len(data) != 2 || data[1]["File"] != "b.go" || data[1]["Score"] != "25" {
		t.Errorf("unexpected data %v", data)
	}

	withData := NewTable("", nil, nil, nil, []int{1, 2})
	if got, ok := withData.RenderData().([]int); !ok || len(got) != 2 {
		t.Errorf("RenderData() should return Data when set, got %v", withData.RenderData())
	}
}

func TestFormatterOutput(t *testing.T) {
	report := &Report{
		Title: "mccabre",
		Sections: []Renderable{
			&Section{Title: "Summary", Content: "3 files"},
			sampleTable(),
		},
		Data: map[string]any{"total_files": 3, "files": []string{"a.go", "b.go"}},
	}

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatText, []string{"mccabre\n=======", "Summary", "3 files", "FILE"}},
		{FormatMarkdown, []string{"# mccabre", "## Summary", "| File | Status | Score |"}},
		{FormatJSON, []string{`"total_files": 3`}},
		{FormatTOON, []string{"total_files: 3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := New(&buf, tt.format, false).Output(report); err != nil {
				t.Fatalf("Output() error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s output missing %q:\n%s", tt.format, want, buf.String())
				}
			}
		})
	}
}

func TestFormatterOutput_Raw(t *testing.T) {
	data := map[string]int{"groups": 2}

	var buf bytes.Buffer
	if err := New(&buf, FormatText, false).Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil || decoded["groups"] != 2 {
		t.Errorf("raw text output should be JSON, got %q", buf.String())
	}

	buf.Reset()
	if err := New(&buf, FormatMarkdown, false).Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "```json\n") {
		t.Errorf("raw markdown output should be fenced, got %q", buf.String())
	}
}

func TestMarshal(t *testing.T) {
	data := map[string]any{"id": 1}

	j, err := Marshal(data, FormatJSON)
	if err != nil || !strings.Contains(j, `"id": 1`) {
		t.Errorf("Marshal(json) = %q, %v", j, err)
	}

	md, err := Marshal(data, FormatMarkdown)
	if err != nil || !strings.HasPrefix(md, "```\n") || !strings.HasSuffix(md, "\n```") {
		t.Errorf("Marshal(markdown) = %q, %v", md, err)
	}

	tn, err := Marshal(data, FormatTOON)
	if err != nil || !strings.Contains(tn, "id: 1") {
		t.Errorf("Marshal(toon) = %q, %v", tn, err)
	}
}

func TestSectionRender(t *testing.T) {
	s := &Section{
		Title:    "Clones",
		Content:  "2 groups",
		Sections: []Section{{Title: "Group 1", Content: "a.go:1-10"}},
	}

	var text bytes.Buffer
	if err := s.RenderText(&text, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text.String(), "Group 1\n-------") {
		t.Errorf("subsections should be underlined with dashes:\n%s", text.String())
	}

	var md bytes.Buffer
	if err := s.RenderMarkdown(&md); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md.String(), "## Clones") || !strings.Contains(md.String(), "### Group 1") {
		t.Errorf("unexpected markdown:\n%s", md.String())
	}
}

func TestColorize(t *testing.T) {
	if got := Colorize(LevelError, "25", false); got != "25" {
		t.Errorf("uncolored text should pass through, got %q", got)
	}
	got := Colorize(LevelError, "25", true)
	if !strings.Contains(got, "25") || got == "25" {
		t.Errorf("colored text should carry escape codes, got %q", got)
	}
}
