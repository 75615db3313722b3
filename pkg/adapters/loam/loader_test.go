package loam

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/strumyk/internal/testutils"
	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const approvalMarkdown = `---
places: [p_start, {id: p_end, label: Done}]
transitions:
  - id: approve
    from: p_start
    to: p_end
    when: approved
variables:
  approved: bool
---
# Approval flow

Moves a request to done once it is approved.
`

const linearJSON = `{
  "net": "linear",
  "places": ["a", "b"],
  "transitions": [{"id": "t", "input": ["a"], "output": ["b"]}]
}`

func newLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir, repo := testutils.SetupTestRepo(t)
	testutils.WriteFiles(t, dir, files)
	return New(loam.NewTypedRepository[NetMetadata](repo))
}

func TestLoader_Contract(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"approval.md": approvalMarkdown,
		"linear.json": linearJSON,
	})

	setupData := map[string][]byte{
		"approval": []byte(`{"net":"approval","label":"Approval flow","places":[{"id":"p_start"},{"id":"p_end","label":"Done"}],"transitions":[{"id":"approve","input":["p_start"],"output":["p_end"],"condition":"approved"}],"variables":{"approved":"bool"}}`),
		"linear":   []byte(`{"net":"linear","places":[{"id":"a"},{"id":"b"}],"transitions":[{"id":"t","input":["a"],"output":["b"]}]}`),
	}

	tests.NetLoaderContractTest(t, loader, setupData)
}

func TestLoader_DecodesIntoNet(t *testing.T) {
	loader := newLoader(t, map[string]string{"approval.md": approvalMarkdown})

	data, err := loader.Get(context.Background(), "approval")
	require.NoError(t, err)

	var doc domain.NetDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	net, err := domain.NewNet(doc)
	require.NoError(t, err)
	tr, ok := net.Transition("approve")
	require.True(t, ok)
	assert.Equal(t, "approved", tr.Condition)
	assert.Equal(t, map[string]string{"approved": "bool"}, net.Variables())
}

func TestLoader_SliceVariables(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"tags.md": "---\nplaces: [a]\ntransitions: []\nvariables:\n  tags: [string]\n---\n",
	})

	data, err := loader.Get(context.Background(), "tags")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"variables":{"tags":"[string]"}`)
}

func TestLoader_DetectsCollisions(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"foo.md":   "---\nnet: foo\nplaces: [a]\n---\n",
		"foo.json": `{"net": "foo", "places": ["a"]}`,
	})

	_, err := loader.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestLoader_RejectsBadArcs(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"bad.md": "---\nplaces: [a]\ntransitions:\n  - id: t\n    input: [1]\n---\n",
	})

	_, err := loader.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transitions[0].input")
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "nets/order", trimExtension(filepath.Join("nets", "order.md")))
	assert.Equal(t, "order", trimExtension("order"))
}

func TestLoader_LabelFromHeading(t *testing.T) {
	loader := newLoader(t, map[string]string{
		"approval.md": approvalMarkdown,
		"named.md":    "---\nlabel: Explicit\nplaces: [a]\n---\n# Ignored heading\n",
	})
	ctx := context.Background()

	var doc domain.NetDocument
	data, err := loader.Get(ctx, "approval")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Approval flow", doc.Label)

	data, err = loader.Get(ctx, "named")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Explicit", doc.Label)
}
