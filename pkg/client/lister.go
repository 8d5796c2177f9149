package client

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
)

// searchDebounce is how long a typed query must sit still before a request
// goes out. Matches the front-end behaviour of filtering as the user types
// without issuing one request per keystroke.
const searchDebounce = 500 * time.Millisecond

// Lister pages through a list endpoint strictly forward: page N+1 is only
// requested after page N arrived, never while a fetch is in flight, and never
// past a null next link. Changing the search query resets accumulation and
// cancels whatever fetch the previous query still had running.
type Lister[T any] struct {
	c        *Client
	cache    *Cache
	entity   string
	path     string
	debounce time.Duration

	mu       sync.Mutex
	query    url.Values
	results  []T
	next     *string
	loaded   bool
	inflight bool
	seq      uint64
	cancel   context.CancelFunc
	timer    *time.Timer
	onChange func([]T)
}

type ListerOption[T any] func(*Lister[T])

// WithDebounce overrides the search debounce interval.
func WithDebounce[T any](d time.Duration) ListerOption[T] {
	return func(l *Lister[T]) { l.debounce = d }
}

// WithOnChange registers a callback fired after every accepted page or reset.
func WithOnChange[T any](fn func([]T)) ListerOption[T] {
	return func(l *Lister[T]) { l.onChange = fn }
}

func NewLister[T any](c *Client, cache *Cache, entity, path string, opts ...ListerOption[T]) *Lister[T] {
	l := &Lister[T]{
		c:        c,
		cache:    cache,
		entity:   entity,
		path:     path,
		debounce: searchDebounce,
		query:    url.Values{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Results returns a copy of everything accumulated so far.
func (l *Lister[T]) Results() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.results))
	copy(out, l.results)
	return out
}

// HasMore reports whether another page can still be requested.
func (l *Lister[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.loaded || l.next != nil
}

// SetFilter sets a query parameter (filial, ativo, search_field...) and
// resets pagination. An empty value removes the parameter.
func (l *Lister[T]) SetFilter(key, value string) {
	l.mu.Lock()
	if value == "" {
		l.query.Del(key)
	} else {
		l.query.Set(key, value)
	}
	l.resetLocked()
	l.mu.Unlock()
}

// LoadMore fetches the next page. It is a no-op while a fetch is in flight
// or after the server reported no next page.
func (l *Lister[T]) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if l.inflight || (l.loaded && l.next == nil) {
		l.mu.Unlock()
		return nil
	}
	target := l.nextURLLocked()
	gen := uint64(0)
	if l.cache != nil {
		gen = l.cache.Generation(l.entity)
		if cached, ok := l.cacheGetLocked(target); ok {
			l.appendPageLocked(cached)
			l.mu.Unlock()
			l.notify()
			return nil
		}
	}
	l.inflight = true
	seq := l.seq
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	var page dto.Pagina[T]
	err := l.c.get(fetchCtx, pathOf(target), queryOf(target), &page)
	cancel()

	l.mu.Lock()
	if l.seq != seq {
		// Superseded by a newer query; drop the response without touching
		// the state the new fetch owns.
		l.mu.Unlock()
		return nil
	}
	l.inflight = false
	l.cancel = nil
	if err != nil {
		l.mu.Unlock()
		return err
	}
	l.appendPageLocked(page)
	if l.cache != nil {
		l.cache.Put(l.entity, queryOf(target).Encode(), gen, page)
	}
	l.mu.Unlock()
	l.notify()
	return nil
}

// Search schedules a debounced reset-and-reload for the typed query. The
// request only fires once the query stops changing for the debounce window,
// and it cancels any fetch the previous query still had outstanding.
func (l *Lister[T]) Search(ctx context.Context, q string) {
	l.mu.Lock()
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() {
		l.mu.Lock()
		if q == "" {
			l.query.Del("search")
		} else {
			l.query.Set("search", q)
		}
		l.resetLocked()
		l.mu.Unlock()
		l.notify()
		_ = l.LoadMore(ctx)
	})
	l.mu.Unlock()
}

// Reload drops accumulated pages and refetches from page one.
func (l *Lister[T]) Reload(ctx context.Context) error {
	l.mu.Lock()
	l.resetLocked()
	l.mu.Unlock()
	return l.LoadMore(ctx)
}

func (l *Lister[T]) resetLocked() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
	l.results = nil
	l.next = nil
	l.loaded = false
	l.inflight = false
}

func (l *Lister[T]) appendPageLocked(page dto.Pagina[T]) {
	l.results = append(l.results, page.Results...)
	l.next = page.Next
	l.loaded = true
}

// nextURLLocked yields the URL for the page about to be fetched: the server's
// next link when one exists, otherwise the list path with current filters.
func (l *Lister[T]) nextURLLocked() string {
	if l.loaded && l.next != nil {
		return *l.next
	}
	if len(l.query) == 0 {
		return l.path
	}
	return l.path + "?" + l.query.Encode()
}

func (l *Lister[T]) cacheGetLocked(target string) (dto.Pagina[T], bool) {
	v, ok := l.cache.Get(l.entity, queryOf(target).Encode())
	if !ok {
		return dto.Pagina[T]{}, false
	}
	page, ok := v.(dto.Pagina[T])
	return page, ok
}

func (l *Lister[T]) notify() {
	if l.onChange != nil {
		l.onChange(l.Results())
	}
}

// pathOf strips scheme, host and query from a possibly absolute next link so
// it can be re-issued against the client's base URL.
func pathOf(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	return u.Path
}

func queryOf(target string) url.Values {
	u, err := url.Parse(target)
	if err != nil {
		return nil
	}
	q := u.Query()
	if len(q) == 0 {
		return nil
	}
	return q
}
