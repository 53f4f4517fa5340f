// Package target enumerates interactable actors, pages them for the
// target browser, and previews a route to the highlighted one.
package target

import (
	"context"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nathoo/turncore/engine/errs"
	"github.com/nathoo/turncore/engine/grid"
	"github.com/nathoo/turncore/engine/prompt"
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// Defaults used when Config leaves a field zero.
const (
	DefaultPageSize  = 16
	DefaultCacheSize = 256
	DefaultMaxInputs = 1000
	DefaultRadius    = 15
)

// RouteFunc computes the cells from one point to another.
type RouteFunc func(w *types.World, from, to types.Point) []types.Point

// VisibleFunc reports whether to is in view from from.
type VisibleFunc func(w *types.World, from, to types.Point, radius int) bool

// Config tunes a Selector.
type Config struct {
	PageSize  int
	CacheSize int
	MaxInputs int
	Radius    int
	Route     RouteFunc
	Visible   VisibleFunc
}

// Candidate is one selectable actor. It is only meaningful for the world
// state it was built from.
type Candidate struct {
	Actor    int
	Name     string
	Position types.Point
	Distance int
}

type routeKey struct {
	from, to types.Point
	revision int
	turn     int
}

// Selector builds and browses target lists.
type Selector struct {
	pageSize  int
	maxInputs int
	radius    int
	route     RouteFunc
	visible   VisibleFunc
	routes    *lru.Cache[routeKey, []types.Point]
}

// New creates a Selector, filling zero fields of cfg with defaults.
func New(cfg Config) (*Selector, error) {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.MaxInputs <= 0 {
		cfg.MaxInputs = DefaultMaxInputs
	}
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultRadius
	}
	if cfg.Route == nil {
		cfg.Route = grid.Route
	}
	if cfg.Visible == nil {
		cfg.Visible = grid.Visible
	}
	cache, err := lru.New[routeKey, []types.Point](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("route cache: %w", err)
	}
	return &Selector{
		pageSize:  cfg.PageSize,
		maxInputs: cfg.MaxInputs,
		radius:    cfg.Radius,
		route:     cfg.Route,
		visible:   cfg.Visible,
		routes:    cache,
	}, nil
}

// PageSize returns the number of entries per page.
func (s *Selector) PageSize() int { return s.pageSize }

// Candidates lists the living actors other than actor that actor can see,
// nearest first, ties broken by index.
func (s *Selector) Candidates(w *types.World, actor int) []Candidate {
	if !state.Alive(w, actor) {
		return nil
	}
	from := w.Actors[actor].Position
	var out []Candidate
	for i := range w.Actors {
		a := &w.Actors[i]
		if i == actor || !a.Alive {
			continue
		}
		if !s.visible(w, from, a.Position, s.radius) {
			continue
		}
		out = append(out, Candidate{
			Actor:    i,
			Name:     a.Name,
			Position: a.Position,
			Distance: state.Dist(from, a.Position),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Actor < out[j].Actor
	})
	return out
}

// Pages returns how many pages n candidates fill; at least one.
func (s *Selector) Pages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + s.pageSize - 1) / s.pageSize
}

// NextPage returns the page after page, wrapping to the first.
func (s *Selector) NextPage(page, n int) int {
	return (page + 1) % s.Pages(n)
}

// PrevPage returns the page before page, wrapping to the last.
func (s *Selector) PrevPage(page, n int) int {
	pages := s.Pages(n)
	return (page - 1 + pages) % pages
}

// Route returns the cached route preview between two cells. Entries are
// keyed by map revision and turn so terrain or actor changes miss.
func (s *Selector) Route(w *types.World, from, to types.Point) []types.Point {
	key := routeKey{from: from, to: to, revision: w.Map.Revision, turn: w.TurnCount}
	if r, ok := s.routes.Get(key); ok {
		return r
	}
	r := s.route(w, from, to)
	s.routes.Add(key, r)
	return r
}

// CachedRoutes returns the number of cached route previews.
func (s *Selector) CachedRoutes() int {
	return s.routes.Len()
}

// Select runs the browse loop and returns the chosen actor index. The
// cursor starts on the actor's current enemy when it is still a candidate.
// It fails with InvalidTarget when nothing is in view and with Cancelled on
// cancel or after too many inputs.
func (s *Selector) Select(ctx context.Context, w *types.World, p prompt.Prompter, actor int, title string) (int, error) {
	cands := s.Candidates(w, actor)
	if len(cands) == 0 {
		return types.NoIndex, errs.InvalidTarget("You look around and find nothing.").WithKey("target.none")
	}

	cursor := 0
	last := w.Actors[actor].EnemyID
	for i, c := range cands {
		if c.Actor == last {
			cursor = i
			break
		}
	}

	from := w.Actors[actor].Position
	for range s.maxInputs {
		if err := ctx.Err(); err != nil {
			return types.NoIndex, errs.Wrap(err, "target selection interrupted")
		}
		page := cursor / s.pageSize
		in, err := p.Browse(ctx, s.view(w, cands, page, cursor, from, title))
		if err != nil {
			return types.NoIndex, err
		}
		switch in.Key {
		case prompt.KeySelect:
			idx := page*s.pageSize + in.Slot
			if in.Slot >= 0 && in.Slot < s.pageSize && idx < len(cands) {
				return cands[idx].Actor, nil
			}
		case prompt.KeyConfirm:
			return cands[cursor].Actor, nil
		case prompt.KeyDown:
			cursor = (cursor + 1) % len(cands)
		case prompt.KeyUp:
			cursor = (cursor - 1 + len(cands)) % len(cands)
		case prompt.KeyNextPage:
			cursor = s.NextPage(page, len(cands)) * s.pageSize
		case prompt.KeyPrevPage:
			cursor = s.PrevPage(page, len(cands)) * s.pageSize
		case prompt.KeyCancel:
			return types.NoIndex, errs.Cancelled()
		}
	}
	return types.NoIndex, errs.Cancelled()
}

func (s *Selector) view(w *types.World, cands []Candidate, page, cursor int, from types.Point, title string) prompt.Page {
	start := page * s.pageSize
	end := min(start+s.pageSize, len(cands))
	entries := make([]prompt.Entry, 0, end-start)
	for _, c := range cands[start:end] {
		entries = append(entries, prompt.Entry{Label: c.Name, Distance: c.Distance, Position: c.Position})
	}
	return prompt.Page{
		Title:   title,
		Entries: entries,
		Cursor:  cursor - start,
		Page:    page,
		Pages:   s.Pages(len(cands)),
		Route:   s.Route(w, from, cands[cursor].Position),
	}
}
