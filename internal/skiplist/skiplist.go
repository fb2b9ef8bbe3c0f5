// Package skiplist loads YAML skip manifests that exclude parts of a corpus
// from discovery: directory names pruned by the walker, file-stem prefixes
// dropped before scanning, and exact qualified identifiers removed after
// resolution.
package skiplist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default exclusions applied when a manifest does not override them.
var (
	defaultFilePrefixes = []string{"Test"}
	defaultDirectories  = []string{"Resources"}
)

// SkipList is a set of corpus exclusion rules.
type SkipList struct {
	Version int `yaml:"version"`
	Skip    struct {
		// FilePrefixes drops any source file whose stem starts with one of
		// these prefixes, before declarations are scanned.
		FilePrefixes []string `yaml:"file_prefixes"`

		// Directories are pruned by the walker before descent.
		Directories []string `yaml:"directories"`

		// Models are exact qualified identifiers excluded after resolution.
		Models []string `yaml:"models"`
	} `yaml:"skip"`
}

// Default returns the built-in skip rules used when no manifest is given.
func Default() *SkipList {
	var s SkipList
	s.Skip.FilePrefixes = append([]string(nil), defaultFilePrefixes...)
	s.Skip.Directories = append([]string(nil), defaultDirectories...)
	return &s
}

// Load reads a YAML skip manifest from disk. Rule lists absent from the
// manifest fall back to the defaults; an explicitly empty list disables that
// rule class.
func Load(path string) (*SkipList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s SkipList
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse skip manifest %s: %w", path, err)
	}
	if s.Skip.FilePrefixes == nil {
		s.Skip.FilePrefixes = append([]string(nil), defaultFilePrefixes...)
	}
	if s.Skip.Directories == nil {
		s.Skip.Directories = append([]string(nil), defaultDirectories...)
	}
	return &s, nil
}

// SkipFile reports whether the named source file is excluded by a stem
// prefix rule.
func (s *SkipList) SkipFile(path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	for _, prefix := range s.Skip.FilePrefixes {
		if strings.HasPrefix(stem, prefix) {
			return true
		}
	}
	return false
}

// SkipModel reports whether the resolved identifier is explicitly excluded.
func (s *SkipList) SkipModel(identifier string) bool {
	for _, m := range s.Skip.Models {
		if m == identifier {
			return true
		}
	}
	return false
}

// DirSet returns the pruned directory names as a set for the walker.
func (s *SkipList) DirSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Skip.Directories))
	for _, d := range s.Skip.Directories {
		set[d] = struct{}{}
	}
	return set
}
