package graph

import (
	"fmt"
	gomath "math"

	"github.com/spaghettifunk/rocketpartners/engine/math"
)

// GraphNode is one cell of a GraphMap. Objects holds whatever was added over
// the cell since the last Reset.
type GraphNode struct {
	X, Y    int
	Bounds  math.Rect
	Objects []interface{}
}

// GraphMap is a uniform grid laid over the world. The world system rebuilds
// it every step so pathfinding sees the current obstacles.
type GraphMap struct {
	origin   math.Vec2
	cols     int
	rows     int
	nodeSize float32
	nodes    []*GraphNode
}

func NewGraphMap(origin math.Vec2, cols, rows int, nodeSize float32) (*GraphMap, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("graph map needs a positive size, got %dx%d", cols, rows)
	}
	if nodeSize <= 0 {
		return nil, fmt.Errorf("graph map node size must be > 0, got %f", nodeSize)
	}
	g := &GraphMap{
		origin:   origin,
		cols:     cols,
		rows:     rows,
		nodeSize: nodeSize,
		nodes:    make([]*GraphNode, cols*rows),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.nodes[y*cols+x] = &GraphNode{
				X:      x,
				Y:      y,
				Bounds: math.NewRect(origin.X+float32(x)*nodeSize, origin.Y+float32(y)*nodeSize, nodeSize, nodeSize),
			}
		}
	}
	return g, nil
}

func (g *GraphMap) Width() int        { return g.cols }
func (g *GraphMap) Height() int       { return g.rows }
func (g *GraphMap) NodeSize() float32 { return g.nodeSize }

// Node returns the node at the given grid coordinates, or nil outside the map.
func (g *GraphMap) Node(x, y int) *GraphNode {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return nil
	}
	return g.nodes[y*g.cols+x]
}

// WorldToNode returns the grid coordinates holding the world point.
func (g *GraphMap) WorldToNode(p math.Vec2) (int, int) {
	x := gomath.Floor(float64((p.X - g.origin.X) / g.nodeSize))
	y := gomath.Floor(float64((p.Y - g.origin.Y) / g.nodeSize))
	return int(x), int(y)
}

// NodeAt returns the node holding the world point, or nil.
func (g *GraphMap) NodeAt(p math.Vec2) *GraphNode {
	return g.Node(g.WorldToNode(p))
}

// Add registers obj in every node its bounds overlap.
func (g *GraphMap) Add(obj interface{}, bounds math.Rect) {
	minX, minY := g.WorldToNode(math.NewVec2(bounds.X, bounds.Y))
	maxX, maxY := g.WorldToNode(math.NewVec2(bounds.X+bounds.Width, bounds.Y+bounds.Height))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			n := g.Node(x, y)
			if n != nil && n.Bounds.Overlaps(bounds) {
				n.Objects = append(n.Objects, obj)
			}
		}
	}
}

// Reset empties every node.
func (g *GraphMap) Reset() {
	for _, n := range g.nodes {
		n.Objects = n.Objects[:0]
	}
}

// Neighbors returns the orthogonal neighbors of n inside the map.
func (g *GraphMap) Neighbors(n *GraphNode) []*GraphNode {
	out := make([]*GraphNode, 0, 4)
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if nb := g.Node(n.X+d[0], n.Y+d[1]); nb != nil {
			out = append(out, nb)
		}
	}
	return out
}
