// Package corpus discovers compilation units in a source tree. It walks the
// corpus for source files, lexically scans each file for top-level
// declarations, resolves every declaration to its fully-qualified dotted
// identifier, and emits one executable task per declaration.
package corpus
