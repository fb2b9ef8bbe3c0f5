package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mobench/internal/testutil"
)

func TestRun_EndToEnd_AllPass(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.WriteCorpus(t, map[string]string{
		"Modelica/package.mo":  "package Modelica\nend Modelica;\n",
		"Modelica/Math/sin.mo": "function sin\nend sin;\n",
		"Modelica/Math/cos.mo": "function cos\nend cos;\n",
	})
	compiler := testutil.WriteStubCompiler(t, `{"structure":{"n_equations":1,"n_states":1,"n_algebraic":0}}`, "", 0)
	out := &testutil.SafeBuffer{}

	// --- Act ---
	err := run(out, []string{"--compiler", compiler, "--log-level", "error", root})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "COMPILATION SUMMARY")
	assert.Contains(t, out.String(), "Total Models:     2")
	assert.Contains(t, out.String(), "Passed:           2")
}

func TestRun_EndToEnd_AllFail(t *testing.T) {
	t.Parallel()

	root := testutil.WriteCorpus(t, map[string]string{
		"Modelica/Math/sin.mo": "function sin\nend sin;\n",
	})
	compiler := testutil.WriteStubCompiler(t, "", "flatten error: missing component", 1)
	out := &testutil.SafeBuffer{}

	err := run(out, []string{"--compiler", compiler, "--log-level", "error", root})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no models passed")
	assert.Contains(t, out.String(), "Flatten errors: 1")
	assert.Contains(t, out.String(), "flatten error: missing component")
}

func TestRun_EndToEnd_JSONReport(t *testing.T) {
	t.Parallel()

	root := testutil.WriteCorpus(t, map[string]string{
		"Modelica/Math/sin.mo": "function sin\nend sin;\n",
	})
	compiler := testutil.WriteStubCompiler(t, "", "", 0)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	err := run(&testutil.SafeBuffer{}, []string{
		"--compiler", compiler,
		"--output", reportPath,
		"--log-level", "error",
		root,
	})

	require.NoError(t, err)
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var report struct {
		Summary struct {
			TotalModels int     `json:"total_models"`
			Passed      int     `json:"passed"`
			PassRate    float64 `json:"pass_rate"`
		} `json:"summary"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 1, report.Summary.TotalModels)
	assert.Equal(t, 1, report.Summary.Passed)
	assert.InDelta(t, 100.0, report.Summary.PassRate, 0.001)
	assert.Len(t, report.Results, 1)
}

func TestRun_EndToEnd_Profile(t *testing.T) {
	t.Parallel()

	root := testutil.WriteCorpus(t, map[string]string{
		"Modelica/Math/sin.mo": "function sin\nend sin;\n",
	})
	compiler := testutil.WriteStubCompiler(t, "", "", 0)
	profilePath := filepath.Join(t.TempDir(), "bench.hcl")
	require.NoError(t, os.WriteFile(profilePath, []byte(`
corpus {
  root = "`+root+`"
}

compiler {
  command = "`+compiler+`"
}
`), 0644))
	out := &testutil.SafeBuffer{}

	err := run(out, []string{"--profile", profilePath, "--log-level", "error"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Passed:           1")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &testutil.SafeBuffer{}

	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()

	err := run(&testutil.SafeBuffer{}, []string{"--no-such-flag"})

	require.Error(t, err)
}

func TestRun_StartupPanicBecomesError(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "absent.hcl")

	err := run(&testutil.SafeBuffer{}, []string{"--profile", missing, "--log-level", "error"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "application startup panicked")
}
