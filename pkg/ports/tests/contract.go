package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/strumyk/pkg/domain"
	"github.com/aretw0/strumyk/pkg/ports"
)

// NetLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.NetLoader.
// setupData maps net names to the exact bytes the loader is expected to return.
func NetLoaderContractTest(t *testing.T, loader ports.NetLoader, setupData map[string][]byte) {
	t.Helper()
	ctx := context.Background()

	// 1. Test Get (Success)
	t.Run("Get_Success", func(t *testing.T) {
		for name, expectedContent := range setupData {
			content, err := loader.Get(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error getting net %s: %v", name, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, expectedContent)
			}
		}
	})

	// 2. Test Get (NotFound)
	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := loader.Get(ctx, "non-existent-net")
		if !errors.Is(err, domain.ErrNetNotFound) {
			t.Errorf("expected ErrNetNotFound for non-existent net, got %v", err)
		}
	})

	// 3. Test List
	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing nets: %v", err)
		}

		if len(names) != len(setupData) {
			t.Errorf("expected %d nets, got %d (%v)", len(setupData), len(names), names)
		}

		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("names must be sorted, got %v", names)
				break
			}
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range setupData {
			if !lookup[name] {
				t.Errorf("net %s missing from list", name)
			}
		}
	})
}
