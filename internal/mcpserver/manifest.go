package mcpserver

import (
	"encoding/json"
	"strings"

	"github.com/panbanda/mccabre/pkg/lang"
)

const (
	serverName   = "mccabre"
	registryName = "io.github.panbanda/mccabre"
	repoURL      = "https://github.com/panbanda/mccabre"
	imageRepo    = "ghcr.io/panbanda/mccabre"
	manifestURL  = "https://static.modelcontextprotocol.io/schemas/2025-10-17/server.schema.json"
)

// Manifest is the server.json entry published to the MCP registry.
type Manifest struct {
	Schema      string      `json:"$schema"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Version     string      `json:"version"`
	Repository  *Repository `json:"repository,omitempty"`
	Packages    []Package   `json:"packages,omitempty"`
}

// Repository points at the source of the server.
type Repository struct {
	URL    string `json:"url"`
	Source string `json:"source"`
	ID     string `json:"id,omitempty"`
}

// Package is a container image that runs the server over stdio.
type Package struct {
	RegistryType     string     `json:"registryType"`
	Identifier       string     `json:"identifier"`
	PackageArguments []Argument `json:"packageArguments,omitempty"`
	Transport        Transport  `json:"transport"`
}

type Argument struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

type Transport struct {
	Type string `json:"type"`
}

// serverDescription names the analyses and every registered language.
func serverDescription(r *lang.Registry) string {
	profiles := r.Languages()
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Language.String()
	}
	return "Cyclomatic complexity, line counts and token clone detection for " + strings.Join(names, ", ")
}

// GenerateManifest renders the registry entry for the image tagged version.
// An empty version renders as 0.0.0.
func GenerateManifest(version string) ([]byte, error) {
	if version == "" {
		version = "0.0.0"
	}

	m := Manifest{
		Schema:      manifestURL,
		Name:        registryName,
		Description: serverDescription(lang.Default()),
		Version:     version,
		Repository:  &Repository{URL: repoURL, Source: "github"},
		Packages: []Package{{
			RegistryType:     "oci",
			Identifier:       imageRepo + ":" + version,
			PackageArguments: []Argument{{Type: "positional", Value: "mcp"}},
			Transport:        Transport{Type: "stdio"},
		}},
	}
	return json.MarshalIndent(m, "", "  ")
}
