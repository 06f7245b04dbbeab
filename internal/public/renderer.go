// Package public renders the published machine list for site visitors.
package public

import (
	"context"
	"sync"
	"time"

	"zozikafe/internal/domain/lang"
	"zozikafe/internal/domain/machines"
	"zozikafe/internal/infra/events"
	"zozikafe/internal/infra/metrics"
)

// Source is the read side of the record store plus the empty-store seed.
type Source interface {
	LoadDisplay(ctx context.Context) []machines.Machine
	SeedDisplay(ctx context.Context, list []machines.Machine) (bool, error)
}

type Renderer struct {
	src     Source
	now     func() time.Time
	metrics *metrics.Metrics

	mu       sync.Mutex
	watching bool
	cache    []machines.Machine
	cached   bool
}

type Option func(*Renderer)

func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

func NewRenderer(src Source, opts ...Option) *Renderer {
	r := &Renderer{src: src, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Watch caches the derived list and drops the cache whenever bus reports an
// admin change. Without Watch every Render reads the store.
func (r *Renderer) Watch(bus *events.Bus) (stop func()) {
	if bus == nil {
		return func() {}
	}
	r.mu.Lock()
	r.watching = true
	r.mu.Unlock()
	unsubscribe := bus.Subscribe(func(events.Event) { r.Invalidate() })
	return func() {
		unsubscribe()
		r.mu.Lock()
		r.watching = false
		r.cache, r.cached = nil, false
		r.mu.Unlock()
	}
}

func (r *Renderer) Invalidate() {
	r.mu.Lock()
	r.cache, r.cached = nil, false
	r.mu.Unlock()
}

// Render projects every published machine into code. An empty store is
// seeded with the built-in samples first, unless a save got there before.
func (r *Renderer) Render(ctx context.Context, code lang.Code) ([]Card, error) {
	list := r.load(ctx)
	if len(list) == 0 {
		// a save may have landed since the read; reload either way
		if _, err := r.src.SeedDisplay(ctx, machines.PublicSamples(r.now())); err != nil {
			return nil, err
		}
		r.Invalidate()
		list = r.load(ctx)
	}
	r.metrics.Render(code.String())

	cards := make([]Card, 0, len(list))
	for _, m := range list {
		cards = append(cards, Project(m, code))
	}
	return cards, nil
}

func (r *Renderer) load(ctx context.Context) []machines.Machine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watching && r.cached {
		return machines.CloneAll(r.cache)
	}
	list := r.src.LoadDisplay(ctx)
	if r.watching {
		r.cache, r.cached = machines.CloneAll(list), true
	}
	return list
}

// Page is everything the public page template needs for one language.
type Page struct {
	Lang      lang.Code
	Cards     []Card
	Text      map[string]string
	Languages []LanguageOption
}

type LanguageOption struct {
	Code   lang.Code
	Label  string
	Active bool
}

// SetLanguage switches sel to code, re-renders the grid and re-applies all
// page text before returning.
func (r *Renderer) SetLanguage(ctx context.Context, sel *lang.Selector, code lang.Code) (Page, error) {
	sel.Set(code)
	cards, err := r.Render(ctx, code)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Lang:      code,
		Cards:     cards,
		Text:      sel.Texts(),
		Languages: LanguageOptions(code),
	}, nil
}

func LanguageOptions(active lang.Code) []LanguageOption {
	codes := lang.Supported()
	out := make([]LanguageOption, 0, len(codes))
	for _, c := range codes {
		out = append(out, LanguageOption{Code: c, Label: c.Label(), Active: c == active})
	}
	return out
}
