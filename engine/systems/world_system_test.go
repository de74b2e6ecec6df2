package systems

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/graph"
	"github.com/spaghettifunk/rocketpartners/engine/math"
	"github.com/spaghettifunk/rocketpartners/engine/world"
)

type contactRecorder struct {
	events []string
}

func (r *contactRecorder) BeginContact(c world.Contact, _ float32) {
	r.events = append(r.events, "begin")
}

func (r *contactRecorder) ContinueContact(c world.Contact, _ float32) {
	r.events = append(r.events, "continue")
}

func (r *contactRecorder) EndContact(c world.Contact, _ float32) {
	r.events = append(r.events, "end")
}

func TestNewWorldSystemValidatesConfig(t *testing.T) {
	_, err := NewWorldSystem(nil)
	assert.Error(t, err)
	_, err = NewWorldSystem(&WorldSystemConfig{ContactListener: &contactRecorder{}})
	assert.Error(t, err)
	_, err = NewWorldSystem(&WorldSystemConfig{FixedStep: 0.1})
	assert.Error(t, err)
}

func TestWorldSystemFixedStep(t *testing.T) {
	ws, err := NewWorldSystem(&WorldSystemConfig{ContactListener: &contactRecorder{}, FixedStep: 0.1})
	require.NoError(t, err)

	body := world.NewBody(world.DYNAMIC, math.NewRect(0, 0, 1, 1))
	body.Velocity = math.NewVec2(10, 0)
	steps := 0
	body.PostProcess = func(float32) { steps++ }
	ws.Add(entityWith(&BodyComponent{Body: body}))

	require.NoError(t, ws.Update(0.25))
	assert.Equal(t, 2, steps)
	assert.InDelta(t, 2, body.Bounds.X, 1e-4)

	require.NoError(t, ws.Update(0.05))
	assert.Equal(t, 3, steps)
	assert.InDelta(t, 3, body.Bounds.X, 1e-4)

	ws.SetOn(false)
	require.NoError(t, ws.Update(1))
	assert.Equal(t, 3, steps)
}

func TestWorldSystemResolvesCollisionsAndFillsGraph(t *testing.T) {
	g, err := graph.NewGraphMap(math.NewVec2Zero(), 10, 3, 1)
	require.NoError(t, err)
	ws, err := NewWorldSystem(&WorldSystemConfig{
		ContactListener: &contactRecorder{},
		GraphMap:        func() *graph.GraphMap { return g },
		FixedStep:       0.1,
	})
	require.NoError(t, err)

	ground := world.NewBody(world.STATIC, math.NewRect(0, 0, 10, 1))
	player := world.NewBody(world.DYNAMIC, math.NewRect(2, 0.5, 1, 1))
	ws.Add(entityWith(&BodyComponent{Body: ground}))
	ws.Add(entityWith(&BodyComponent{Body: player}))

	require.NoError(t, ws.Update(0.1))
	assert.InDelta(t, 1, player.Bounds.Y, 1e-4)
	assert.InDelta(t, 2, player.Bounds.X, 1e-4)

	assert.Contains(t, g.NodeAt(math.NewVec2(5.5, 0.5)).Objects, ground)
	assert.Contains(t, g.NodeAt(math.NewVec2(2.5, 1.5)).Objects, player)
	assert.Empty(t, g.NodeAt(math.NewVec2(8.5, 2.5)).Objects)
}

func TestWorldSystemContacts(t *testing.T) {
	rec := &contactRecorder{}
	ws, err := NewWorldSystem(&WorldSystemConfig{
		ContactListener: rec,
		FixedStep:       0.1,
		FilterMap:       world.NewFilterMap(map[interface{}][]interface{}{"player": {"item"}}),
	})
	require.NoError(t, err)

	a := world.NewBody(world.ABSTRACT, math.NewRect(0, 0, 2, 2))
	a.AddFixture(world.NewFixture("player", 2, 2))
	b := world.NewBody(world.ABSTRACT, math.NewRect(10, 0, 2, 2))
	b.AddFixture(world.NewFixture("item", 2, 2))
	b.AddFixture(world.NewFixture("other", 2, 2))
	ws.Add(entityWith(&BodyComponent{Body: a}))
	ws.Add(entityWith(&BodyComponent{Body: b}))

	require.NoError(t, ws.Update(0.1))
	assert.Empty(t, rec.events)

	b.SetPosition(math.NewVec2(1, 0))
	require.NoError(t, ws.Update(0.1))
	require.NoError(t, ws.Update(0.1))
	require.Len(t, ws.Contacts(), 1)
	assert.True(t, ws.Contacts()[0].FixturesMatch("item", "player"))

	b.SetPosition(math.NewVec2(10, 0))
	require.NoError(t, ws.Update(0.1))
	assert.Equal(t, []string{"begin", "continue", "end"}, rec.events)
	assert.Empty(t, ws.Contacts())
}

func TestPathfindingSystemDeliversPaths(t *testing.T) {
	g, err := graph.NewGraphMap(math.NewVec2Zero(), 5, 5, 1)
	require.NoError(t, err)
	factory := func(*PathfindingComponent) *graph.Pathfinder { return graph.NewPathfinder(g, nil) }

	_, err = NewPathfindingSystem(&PathfindingSystemConfig{Factory: factory})
	assert.Error(t, err)
	_, err = NewPathfindingSystem(&PathfindingSystemConfig{Timeout: time.Second})
	assert.Error(t, err)

	ps, err := NewPathfindingSystem(&PathfindingSystemConfig{Factory: factory, Timeout: 10 * time.Millisecond})
	require.NoError(t, err)

	var (
		path    []*graph.GraphNode
		lastErr error
		calls   int
	)
	target := math.NewVec2(4.5, 0.5)
	c := &PathfindingComponent{
		Start:  func() math.Vec2 { return math.NewVec2(0.5, 0.5) },
		Target: func() math.Vec2 { return target },
		Consumer: func(p []*graph.GraphNode, err error) {
			calls++
			path, lastErr = p, err
		},
	}
	ps.Add(entityWith(c))

	require.NoError(t, ps.Update(0.1))
	require.NoError(t, lastErr)
	require.Len(t, path, 5)
	assert.Equal(t, 4, path[4].X)

	g.Add("rock", g.NodeAt(target).Bounds)
	require.NoError(t, ps.Update(0.1))
	assert.ErrorIs(t, lastErr, core.ErrPathNotFound)

	c.ShouldUpdate = func(float64) bool { return false }
	require.NoError(t, ps.Update(0.1))
	assert.Equal(t, 2, calls)
}

func TestPathfinderHonorsCanceledContext(t *testing.T) {
	g, err := graph.NewGraphMap(math.NewVec2Zero(), 5, 5, 1)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = graph.NewPathfinder(g, nil).Find(ctx, math.NewVec2(0.5, 0.5), math.NewVec2(4.5, 4.5))
	assert.ErrorIs(t, err, core.ErrPathfindTimeout)
}
