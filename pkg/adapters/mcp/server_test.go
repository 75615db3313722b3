package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/testutils"
	"github.com/aretw0/strumyk/pkg/adapters/memory"
	"github.com/aretw0/strumyk/pkg/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := strumyk.New("",
		strumyk.WithLoader(memory.NewLoader(map[string]string{
			"linear":   testutils.LinearNetYAML,
			"approval": testutils.GuardedNetYAML,
		})),
		strumyk.WithReportStore(memory.NewStore()),
	)
	require.NoError(t, err)
	return NewServer(eng, "test", nil)
}

func TestHandleValidate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleValidate(ctx, mcp.CallToolRequest{}, NetArgs{Name: "linear"})
	require.NoError(t, err)
	assert.True(t, resp.Sound)
	assert.Equal(t, "linear", resp.Net)

	resp, err = s.handleValidate(ctx, mcp.CallToolRequest{}, NetArgs{Document: testutils.UnsoundNetYAML})
	require.NoError(t, err)
	assert.False(t, resp.Sound)
	assert.Equal(t, "multiple_sources", resp.Kind)
	assert.Equal(t, []string{"p1", "p2"}, resp.IDs)

	_, err = s.handleValidate(ctx, mcp.CallToolRequest{}, NetArgs{})
	assert.ErrorIs(t, err, ErrMissingNet)

	_, err = s.handleValidate(ctx, mcp.CallToolRequest{}, NetArgs{Name: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNetNotFound)
}

func TestHandleSimulate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{
		NetArgs: NetArgs{Name: "approval"},
		Context: `{"approved": true}`,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)

	res, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{
		NetArgs: NetArgs{Name: "approval"},
		Context: `{"approved": false}`,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeadlocked, res.Status)
	assert.Empty(t, res.Trace)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{
		NetArgs: NetArgs{Name: "linear"},
		Context: `not json`,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRunConfiguration)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{
		NetArgs:  NetArgs{Name: "linear"},
		MaxSteps: 1,
	})
	require.NoError(t, err)
}

func TestGraph(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, SimulateArgs{NetArgs: NetArgs{Name: "linear"}})
	require.NoError(t, err)

	out, err := s.graph(ctx, GraphArgs{NetArgs: NetArgs{Name: "linear"}, RunID: res.ID})
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "class t2 fired;")

	out, err = s.graph(ctx, GraphArgs{NetArgs: NetArgs{Name: "linear"}, Format: "dot"})
	require.NoError(t, err)
	assert.Contains(t, out, "digraph")

	_, err = s.graph(ctx, GraphArgs{NetArgs: NetArgs{Name: "linear"}, Format: "png"})
	assert.Error(t, err)

	_, err = s.graph(ctx, GraphArgs{NetArgs: NetArgs{Name: "linear"}, RunID: "missing"})
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
