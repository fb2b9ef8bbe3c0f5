// Package testutil provides shared fixtures for harness tests: an on-disk
// corpus builder, a stub compiler runner, a stub compiler script, and a
// thread-safe output buffer.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteCorpus materializes a corpus fixture in a temp directory. Keys are
// root-relative paths (e.g. "Modelica/Math/sin.mo"), which naturally creates
// the directory structure. The corpus root path is returned.
func WriteCorpus(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// WriteStubCompiler writes an executable shell script that mimics the
// compiler contract: it prints stdout, prints stderr, and exits with the
// given code. The script path is returned for use as the compiler command.
func WriteStubCompiler(t *testing.T, stdout, stderr string, exitCode int) string {
	t.Helper()

	script := "#!/bin/sh\n"
	if stdout != "" {
		script += "cat <<'EOF'\n" + stdout + "\nEOF\n"
	}
	if stderr != "" {
		script += "cat >&2 <<'EOF'\n" + stderr + "\nEOF\n"
	}
	script += "exit " + strconv.Itoa(exitCode) + "\n"

	path := filepath.Join(t.TempDir(), "stub-compiler.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}
