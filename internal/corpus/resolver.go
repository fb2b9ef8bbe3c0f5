package corpus

import (
	"path/filepath"
	"strings"
)

// Resolve maps a source unit and one of its declarations to the
// fully-qualified dotted identifier understood by the compiler. It is a pure
// function of its arguments and performs no I/O.
//
// The identifier is derived from the unit's directory path relative to the
// corpus root:
//   - a package-root file resolves to the joined directory segments (the
//     package's self reference);
//   - a file whose stem exactly equals its containing directory resolves to
//     the joined directory segments, avoiding a duplicated trailing name;
//   - any other file resolves to the directory segments plus the declaration
//     name.
//
// When unitPath is not located under corpusRoot the bare declaration name is
// returned unchanged. This is a degraded fallback rather than an error: the
// corpus root may legitimately differ between callers.
func Resolve(unitPath, declName, corpusRoot string) string {
	rel, err := filepath.Rel(corpusRoot, unitPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return declName
	}

	var parts []string
	if dir := filepath.Dir(rel); dir != "." {
		parts = strings.Split(dir, string(filepath.Separator))
	}

	if IsPackageRoot(unitPath) {
		return strings.Join(parts, ".")
	}

	base := filepath.Base(unitPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if len(parts) > 0 && stem == parts[len(parts)-1] {
		// The file repeats its containing directory's name; the directory
		// segments already identify the declaration.
		return strings.Join(parts, ".")
	}

	return strings.Join(append(parts, declName), ".")
}
