package profile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mobench/internal/profile"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullProfile(t *testing.T) {
	t.Parallel()

	path := writeProfile(t, `
corpus {
  root     = "/data/msl"
  package  = "Modelica.Blocks"
  skiplist = "skip.yaml"
}

compiler {
  command     = "rumoca"
  timeout_sec = 60
}

execution {
  parallelism = 8
  limit       = 100
}

report {
  output        = "results.json"
  show_failures = 5
}
`)

	p, err := profile.Load(context.Background(), path)

	require.NoError(t, err)
	require.NotNil(t, p.Corpus)
	assert.Equal(t, "/data/msl", p.Corpus.Root)
	assert.Equal(t, "Modelica.Blocks", p.Corpus.Package)
	assert.Equal(t, "skip.yaml", p.Corpus.SkipList)

	require.NotNil(t, p.Compiler)
	assert.Equal(t, "rumoca", p.Compiler.Command)
	assert.Equal(t, 60, p.Compiler.TimeoutSec)

	require.NotNil(t, p.Execution)
	assert.Equal(t, 8, p.Execution.Parallelism)
	assert.Equal(t, 100, p.Execution.Limit)

	require.NotNil(t, p.Report)
	assert.Equal(t, "results.json", p.Report.Output)
	require.NotNil(t, p.Report.ShowFailures)
	assert.Equal(t, 5, *p.Report.ShowFailures)
}

func TestLoad_AllBlocksOptional(t *testing.T) {
	t.Parallel()

	p, err := profile.Load(context.Background(), writeProfile(t, ""))

	require.NoError(t, err)
	assert.Nil(t, p.Corpus)
	assert.Nil(t, p.Compiler)
	assert.Nil(t, p.Execution)
	assert.Nil(t, p.Report)
}

func TestLoad_ExplicitZeroShowFailures(t *testing.T) {
	t.Parallel()

	path := writeProfile(t, `
report {
  show_failures = 0
}
`)

	p, err := profile.Load(context.Background(), path)

	require.NoError(t, err)
	require.NotNil(t, p.Report)
	require.NotNil(t, p.Report.ShowFailures, "an explicit zero must survive decoding")
	assert.Equal(t, 0, *p.Report.ShowFailures)
}

func TestLoad_EnvironmentInterpolation(t *testing.T) {
	t.Setenv("MOBENCH_TEST_CORPUS", "/mnt/corpora/msl-4.0")

	path := writeProfile(t, `
corpus {
  root = env.MOBENCH_TEST_CORPUS
}

report {
  output = "${env.MOBENCH_TEST_CORPUS}/results.json"
}
`)

	p, err := profile.Load(context.Background(), path)

	require.NoError(t, err)
	require.NotNil(t, p.Corpus)
	assert.Equal(t, "/mnt/corpora/msl-4.0", p.Corpus.Root)
	require.NotNil(t, p.Report)
	assert.Equal(t, "/mnt/corpora/msl-4.0/results.json", p.Report.Output)
}

func TestLoad_InvalidSyntax(t *testing.T) {
	t.Parallel()

	path := writeProfile(t, `corpus { root = `)

	_, err := profile.Load(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse profile")
}

func TestLoad_UnknownAttribute(t *testing.T) {
	t.Parallel()

	path := writeProfile(t, `
compiler {
  command = "rumoca"
  flavour = "strict"
}
`)

	_, err := profile.Load(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode profile")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := profile.Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))

	require.Error(t, err)
}
