package scaffold

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/flow/internal/constants"
	"github.com/mrz1836/flow/internal/domain"
)

// planFor builds the gated step plan for a kind with the given feature
// tokens, without executing anything.
// This helper is used across multiple test files.
func planFor(t *testing.T, k *Kind, tokens ...string) []Step {
	t.Helper()
	req := kindRequest(t, k, tokens...)
	c := &Context{Request: req, Runner: newFakeRunner(), Files: newFakeWriter()}
	return k.Plan(c)
}

// stepNames extracts the names from a step plan.
func stepNames(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Name
	}
	return out
}

// allTokens returns every feature the kind offers, as raw tokens.
func allTokens(k *Kind) []string {
	out := make([]string, len(k.Features))
	for i, opt := range k.Features {
		out[i] = string(opt.Feature)
	}
	return out
}

// kindRequest builds a request for the kind named "myapp" under a temp dir.
func kindRequest(t *testing.T, k *Kind, tokens ...string) domain.Request {
	t.Helper()
	target := filepath.Join(t.TempDir(), "myapp")
	req, err := domain.NewRequest("myapp", k.Type, k.Framework, k.FeatureTokens(), tokens, target)
	require.NoError(t, err)
	return *req
}

// runKind generates the kind with fakes and requires a successful run,
// returning the recorded commands and writes for inspection.
func runKind(t *testing.T, k *Kind, tokens ...string) (*fakeRunner, *fakeWriter, domain.Request) {
	t.Helper()
	r := newFakeRunner()
	w := newFakeWriter()
	e := NewEngine(r, w)

	req := kindRequest(t, k, tokens...)
	res, err := e.Generate(context.Background(), k, req)
	require.NoError(t, err)
	require.Equal(t, constants.RunStatusSucceeded, res.Status)
	return r, w, req
}
