package corpus

import (
	"path/filepath"
	"regexp"
)

// SourceExtension is the file extension of Modelica source units.
const SourceExtension = ".mo"

// packageRootName is the basename that marks a file as declaring the
// namespace itself rather than a class within it.
const packageRootName = "package" + SourceExtension

// Declaration is a top-level declaration recovered from a source unit by the
// lexical scanner.
type Declaration struct {
	// Kind is one of the fixed declaration keywords: model, class, block,
	// connector, record, function, package or type.
	Kind string

	// Name is the bare declared identifier.
	Name string
}

// declPattern matches a declaration at the start of a line, optionally
// preceded by whitespace and the "partial" and/or "encapsulated" qualifiers.
// This is a deliberately coarse scan, not a parser: no comment awareness and
// no brace balancing.
var declPattern = regexp.MustCompile(
	`(?m)^\s*(?:partial\s+)?(?:encapsulated\s+)?(model|class|block|connector|record|function|package|type)\s+(\w+)`)

// ScanDeclarations extracts all top-level declarations from raw source text,
// in source order. Scanning the same text twice yields the same sequence.
func ScanDeclarations(text string) []Declaration {
	matches := declPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	decls := make([]Declaration, 0, len(matches))
	for _, m := range matches {
		decls = append(decls, Declaration{Kind: m[1], Name: m[2]})
	}
	return decls
}

// IsPackageRoot reports whether the given path names a package-root file.
// Package-root files establish a namespace prefix for their siblings and
// contribute no declarations of their own during discovery.
func IsPackageRoot(path string) bool {
	return filepath.Base(path) == packageRootName
}
