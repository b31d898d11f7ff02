// Package extractor turns knowledge base files into searchable lines
// of text. Plain text formats are decoded directly; PDFs go through a
// chain of decoding backends.
package extractor

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

// Reader kinds a profile can select.
const (
	ReaderText = "text"
	ReaderPDF  = "pdf"
)

// Profile describes how files with certain extensions are handled.
type Profile struct {
	Name        string   `yaml:"name"`
	Reader      string   `yaml:"reader"`
	ScanContent bool     `yaml:"scan_content"`
	Extensions  []string `yaml:"extensions"`
}

type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// Registry resolves file extensions to extraction profiles.
type Registry struct {
	byExt    map[string]Profile
	fallback Profile
}

// LoadRegistry parses the embedded profile definitions.
func LoadRegistry() (*Registry, error) {
	return parseRegistry(profilesYAML)
}

// MustRegistry is LoadRegistry for callers that treat a broken embedded
// registry as a programming error.
func MustRegistry() *Registry {
	r, err := LoadRegistry()
	if err != nil {
		panic(fmt.Sprintf("extractor: embedded profiles are invalid: %v", err))
	}
	return r
}

func parseRegistry(data []byte) (*Registry, error) {
	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("parse profiles: no profiles defined")
	}

	r := &Registry{
		byExt: make(map[string]Profile),
		// Unknown extensions are read as plain text but excluded from
		// content scanning during file-level search.
		fallback: Profile{Name: "default", Reader: ReaderText, ScanContent: false},
	}
	for _, p := range file.Profiles {
		if p.Reader != ReaderText && p.Reader != ReaderPDF {
			return nil, fmt.Errorf("parse profiles: profile %q has unknown reader %q", p.Name, p.Reader)
		}
		for _, ext := range p.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if existing, ok := r.byExt[ext]; ok {
				return nil, fmt.Errorf("parse profiles: extension %s claimed by both %q and %q", ext, existing.Name, p.Name)
			}
			r.byExt[ext] = p
		}
	}
	return r, nil
}

// Lookup returns the profile for a file extension. Extensions are
// matched case-insensitively; unknown extensions get the fallback
// profile.
func (r *Registry) Lookup(ext string) Profile {
	if p, ok := r.byExt[strings.ToLower(ext)]; ok {
		return p
	}
	return r.fallback
}

// ScansContent reports whether file-level search reads the content of
// files with the given extension.
func (r *Registry) ScansContent(ext string) bool {
	return r.Lookup(ext).ScanContent
}
