package client

import (
	"context"
	"sync"
)

// Option entries for select widgets.
type SelectOption struct {
	ID    string
	Label string
}

// OptionSource produces the options valid under a given upstream value. For
// the loan form the upstream is the deposito and the source lists available
// tools in it; for the funcionario select the upstream is the tool's filial.
type OptionSource func(ctx context.Context, upstream string) ([]SelectOption, error)

// DependentSelect is a dropdown whose option set derives from another
// field's value. Changing the upstream re-derives the options and clears the
// current selection when it is no longer among them. Concurrent loads for
// the same upstream value coalesce into a single request.
type DependentSelect struct {
	source OptionSource

	mu       sync.Mutex
	upstream string
	options  []SelectOption
	selected string
	loading  map[string][]chan loadResult
	version  uint64
}

type loadResult struct {
	options []SelectOption
	err     error
}

func NewDependentSelect(source OptionSource) *DependentSelect {
	return &DependentSelect{
		source:  source,
		loading: make(map[string][]chan loadResult),
	}
}

// Options returns the current option set.
func (d *DependentSelect) Options() []SelectOption {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]SelectOption, len(d.options))
	copy(out, d.options)
	return out
}

// Selected returns the currently selected option ID, empty when none.
func (d *DependentSelect) Selected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// Select picks an option. Selecting an ID outside the current option set is
// refused so the form can never submit a pair the upstream does not allow.
func (d *DependentSelect) Select(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, opt := range d.options {
		if opt.ID == id {
			d.selected = id
			return true
		}
	}
	return false
}

// SetUpstream switches the upstream value, reloads the option set and drops
// the selection when the new set no longer contains it. A stale load that
// finishes after yet another upstream change is discarded.
func (d *DependentSelect) SetUpstream(ctx context.Context, upstream string) error {
	d.mu.Lock()
	if upstream == d.upstream {
		d.mu.Unlock()
		return nil
	}
	d.upstream = upstream
	d.version++
	version := d.version
	d.mu.Unlock()

	if upstream == "" {
		d.mu.Lock()
		if d.version == version {
			d.options = nil
			d.selected = ""
		}
		d.mu.Unlock()
		return nil
	}

	opts, err := d.load(ctx, upstream)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.version != version {
		return nil
	}
	d.options = opts
	if d.selected != "" && !contains(opts, d.selected) {
		d.selected = ""
	}
	return nil
}

// load coalesces concurrent fetches for the same upstream: the first caller
// performs the request, the rest wait on its result.
func (d *DependentSelect) load(ctx context.Context, upstream string) ([]SelectOption, error) {
	d.mu.Lock()
	if waiters, inflight := d.loading[upstream]; inflight {
		ch := make(chan loadResult, 1)
		d.loading[upstream] = append(waiters, ch)
		d.mu.Unlock()
		select {
		case res := <-ch:
			return res.options, res.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	d.loading[upstream] = []chan loadResult{}
	d.mu.Unlock()

	opts, err := d.source(ctx, upstream)

	d.mu.Lock()
	waiters := d.loading[upstream]
	delete(d.loading, upstream)
	d.mu.Unlock()
	for _, ch := range waiters {
		ch <- loadResult{options: opts, err: err}
	}
	return opts, err
}

func contains(opts []SelectOption, id string) bool {
	for _, opt := range opts {
		if opt.ID == id {
			return true
		}
	}
	return false
}
