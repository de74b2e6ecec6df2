package graph

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/rocketpartners/engine/containers"
	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// PassableFunc tells whether a node can be walked through.
type PassableFunc func(node *GraphNode) bool

// Pathfinder searches the shortest orthogonal path on a GraphMap (A*, manhattan
// heuristic).
type Pathfinder struct {
	graph    *GraphMap
	passable PassableFunc
}

func NewPathfinder(graph *GraphMap, passable PassableFunc) *Pathfinder {
	if passable == nil {
		passable = func(node *GraphNode) bool { return len(node.Objects) == 0 }
	}
	return &Pathfinder{graph: graph, passable: passable}
}

type searchEntry struct {
	node *GraphNode
	f    int
}

// checkEvery is how many node expansions happen between two context checks.
const checkEvery = 64

// Find returns the nodes from start to target, both included. The search stops
// with ErrPathfindTimeout when ctx is done first.
func (p *Pathfinder) Find(ctx context.Context, start, target math.Vec2) ([]*GraphNode, error) {
	if p.graph == nil {
		return nil, fmt.Errorf("pathfinder has no graph map: %w", core.ErrNotInitialized)
	}
	from := p.graph.NodeAt(start)
	to := p.graph.NodeAt(target)
	if from == nil || to == nil {
		return nil, fmt.Errorf("start or target outside the graph map: %w", core.ErrPathNotFound)
	}
	if !p.passable(to) {
		return nil, fmt.Errorf("target node (%d, %d) is blocked: %w", to.X, to.Y, core.ErrPathNotFound)
	}

	open := containers.NewPriorityQueue(func(a, b searchEntry) bool { return a.f < b.f })
	cameFrom := map[*GraphNode]*GraphNode{}
	cost := map[*GraphNode]int{from: 0}
	open.Add(searchEntry{node: from, f: heuristic(from, to)})

	expanded := 0
	for !open.IsEmpty() {
		if expanded%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %s", core.ErrPathfindTimeout, err)
			}
		}
		expanded++

		current, _ := open.Poll()
		if current.node == to {
			return reconstruct(cameFrom, to), nil
		}
		for _, nb := range p.graph.Neighbors(current.node) {
			if !p.passable(nb) {
				continue
			}
			c := cost[current.node] + 1
			if old, seen := cost[nb]; seen && old <= c {
				continue
			}
			cost[nb] = c
			cameFrom[nb] = current.node
			open.Add(searchEntry{node: nb, f: c + heuristic(nb, to)})
		}
	}
	return nil, core.ErrPathNotFound
}

func heuristic(a, b *GraphNode) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func reconstruct(cameFrom map[*GraphNode]*GraphNode, end *GraphNode) []*GraphNode {
	path := []*GraphNode{end}
	for n, ok := cameFrom[end]; ok; n, ok = cameFrom[n] {
		path = append(path, n)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
