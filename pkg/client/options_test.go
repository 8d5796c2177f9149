package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependentSelectNarrowsOnUpstreamChange(t *testing.T) {
	byDeposito := map[string][]SelectOption{
		"d1": {{ID: "f1", Label: "Furadeira"}, {ID: "f2", Label: "Serra"}},
		"d2": {{ID: "f2", Label: "Serra"}, {ID: "f3", Label: "Lixadeira"}},
	}
	sel := NewDependentSelect(func(_ context.Context, up string) ([]SelectOption, error) {
		return byDeposito[up], nil
	})
	ctx := context.Background()

	require.NoError(t, sel.SetUpstream(ctx, "d1"))
	require.Len(t, sel.Options(), 2)
	require.True(t, sel.Select("f1"))

	// f1 is not in d2: the selection is cleared, not carried over.
	require.NoError(t, sel.SetUpstream(ctx, "d2"))
	assert.Empty(t, sel.Selected())

	// f2 exists in both; selecting it before the switch keeps it valid.
	require.NoError(t, sel.SetUpstream(ctx, "d1"))
	require.True(t, sel.Select("f2"))
	require.NoError(t, sel.SetUpstream(ctx, "d2"))
	assert.Equal(t, "f2", sel.Selected())
}

func TestDependentSelectRefusesOptionOutsideSet(t *testing.T) {
	sel := NewDependentSelect(func(_ context.Context, _ string) ([]SelectOption, error) {
		return []SelectOption{{ID: "f1", Label: "Furadeira"}}, nil
	})
	require.NoError(t, sel.SetUpstream(context.Background(), "d1"))

	assert.False(t, sel.Select("f9"))
	assert.Empty(t, sel.Selected())
}

func TestDependentSelectClearsOnEmptyUpstream(t *testing.T) {
	sel := NewDependentSelect(func(_ context.Context, _ string) ([]SelectOption, error) {
		return []SelectOption{{ID: "f1", Label: "Furadeira"}}, nil
	})
	ctx := context.Background()
	require.NoError(t, sel.SetUpstream(ctx, "d1"))
	require.True(t, sel.Select("f1"))

	require.NoError(t, sel.SetUpstream(ctx, ""))
	assert.Empty(t, sel.Options())
	assert.Empty(t, sel.Selected())
}

func TestDependentSelectCoalescesConcurrentLoads(t *testing.T) {
	var calls int32
	gate := make(chan struct{})
	sel := NewDependentSelect(func(ctx context.Context, up string) ([]SelectOption, error) {
		atomic.AddInt32(&calls, 1)
		<-gate
		return []SelectOption{{ID: "f1", Label: "Furadeira"}}, nil
	})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- sel.SetUpstream(ctx, "d1") }()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)

	// The same upstream arriving again while the load is in flight does not
	// start a second request.
	require.NoError(t, sel.SetUpstream(ctx, "d1"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	close(gate)
	require.NoError(t, <-done)
	require.Eventually(t, func() bool { return len(sel.Options()) == 1 }, time.Second, time.Millisecond)
}

func TestDependentSelectStaleLoadDiscarded(t *testing.T) {
	d1started := make(chan struct{})
	gates := map[string]chan struct{}{
		"d1": make(chan struct{}),
		"d2": make(chan struct{}),
	}
	sel := NewDependentSelect(func(ctx context.Context, up string) ([]SelectOption, error) {
		if up == "d1" {
			close(d1started)
		}
		<-gates[up]
		return []SelectOption{{ID: "opt-" + up, Label: up}}, nil
	})
	ctx := context.Background()

	d1done := make(chan error, 1)
	go func() { d1done <- sel.SetUpstream(ctx, "d1") }()
	<-d1started

	// The user changes the deposito again while d1's options are loading.
	d2done := make(chan error, 1)
	go func() { d2done <- sel.SetUpstream(ctx, "d2") }()

	close(gates["d2"])
	require.NoError(t, <-d2done)

	// d1's late result must not overwrite the current upstream's options.
	close(gates["d1"])
	require.NoError(t, <-d1done)

	opts := sel.Options()
	require.Len(t, opts, 1)
	assert.Equal(t, "opt-d2", opts[0].ID)
}
