// Package grid implements the default pathfinding and field-of-view
// collaborators over a map's cells.
package grid

import (
	"github.com/nathoo/turncore/engine/state"
	"github.com/nathoo/turncore/types"
)

// MaxRoute bounds the length of a previewed route.
const MaxRoute = 100

var directions = []types.Point{
	{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0},
	{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// Route returns the cells from (excluding) from to (including) to along a
// shortest walkable path. Actors other than the one at to block the path.
// It returns nil when to cannot be reached within MaxRoute steps.
func Route(w *types.World, from, to types.Point) []types.Point {
	if from == to || !state.InBounds(&w.Map, to) {
		return nil
	}
	prev := map[types.Point]types.Point{from: from}
	depth := map[types.Point]int{from: 0}
	queue := []types.Point{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= MaxRoute {
			continue
		}
		for _, d := range directions {
			next := cur.Add(d)
			if _, seen := prev[next]; seen {
				continue
			}
			if next != to && !state.Passable(w, next) {
				continue
			}
			if next == to && !state.Walkable(&w.Map, next) && state.ActorAt(w, next) == types.NoIndex {
				continue
			}
			prev[next] = cur
			depth[next] = depth[cur] + 1
			if next == to {
				return unwind(prev, from, to)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func unwind(prev map[types.Point]types.Point, from, to types.Point) []types.Point {
	var path []types.Point
	for p := to; p != from; p = prev[p] {
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Visible reports whether to is within radius of from and no wall lies on
// the straight line between them.
func Visible(w *types.World, from, to types.Point, radius int) bool {
	if state.Dist(from, to) > radius {
		return false
	}
	for _, p := range Line(from, to) {
		if p == to {
			break
		}
		c := state.CellAt(&w.Map, p)
		if c == nil || c.Kind == types.TileWall {
			return false
		}
	}
	return true
}

// Line returns the cells from (excluding) from to (including) to using
// Bresenham's algorithm.
func Line(from, to types.Point) []types.Point {
	var out []types.Point
	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)
	e := dx + dy
	x, y := from.X, from.Y
	for x != to.X || y != to.Y {
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
		out = append(out, types.Point{X: x, Y: y})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
