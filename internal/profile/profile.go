package profile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/mobench/internal/ctxlog"
)

// Profile is the decoded form of a run-profile file. All blocks and
// attributes are optional; nil blocks mean "nothing configured here".
type Profile struct {
	Corpus    *CorpusBlock    `hcl:"corpus,block"`
	Compiler  *CompilerBlock  `hcl:"compiler,block"`
	Execution *ExecutionBlock `hcl:"execution,block"`
	Report    *ReportBlock    `hcl:"report,block"`
}

// CorpusBlock locates and filters the corpus.
type CorpusBlock struct {
	Root     string `hcl:"root,optional"`
	Package  string `hcl:"package,optional"`
	SkipList string `hcl:"skiplist,optional"`
}

// CompilerBlock configures the compiler invocation.
type CompilerBlock struct {
	Command    string `hcl:"command,optional"`
	TimeoutSec int    `hcl:"timeout_sec,optional"`
}

// ExecutionBlock bounds the run.
type ExecutionBlock struct {
	Parallelism int `hcl:"parallelism,optional"`
	Limit       int `hcl:"limit,optional"`
}

// ReportBlock configures output rendering.
type ReportBlock struct {
	Output string `hcl:"output,optional"`

	// ShowFailures is a pointer so an explicit zero can be told apart from
	// an absent attribute.
	ShowFailures *int `hcl:"show_failures,optional"`
}

// Load parses and decodes a profile file. Expressions are evaluated against
// a context exposing the process environment as the `env` object.
func Load(ctx context.Context, path string) (*Profile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading run profile.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, diags)
	}

	var p Profile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &p)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, diags)
	}

	logger.Debug("Run profile loaded.", "path", path)
	return &p, nil
}

// evalContext exposes the process environment to profile expressions as
// `env.<NAME>`.
func evalContext() *hcl.EvalContext {
	envVars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		envVars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envVars),
		},
	}
}
