package world

// Contact is a pair of overlapping fixtures whose types are allowed to interact.
type Contact struct {
	A *Fixture
	B *Fixture
}

// FixturesMatch reports whether the contact is between fixtures of the two
// types, in any order.
func (c Contact) FixturesMatch(t1, t2 interface{}) bool {
	return (c.A.Type == t1 && c.B.Type == t2) || (c.A.Type == t2 && c.B.Type == t1)
}

// FixturesInOrder returns the fixtures so that the first one has type t1.
func (c Contact) FixturesInOrder(t1, t2 interface{}) (*Fixture, *Fixture, bool) {
	if c.A.Type == t1 && c.B.Type == t2 {
		return c.A, c.B, true
	}
	if c.A.Type == t2 && c.B.Type == t1 {
		return c.B, c.A, true
	}
	return nil, nil, false
}

// Key identifies the contact across steps. Contacts between the same two
// fixtures are always built in the same order.
func (c Contact) Key() [2]*Fixture {
	return [2]*Fixture{c.A, c.B}
}

type ContactListener interface {
	BeginContact(contact Contact, delta float32)
	ContinueContact(contact Contact, delta float32)
	EndContact(contact Contact, delta float32)
}

type CollisionHandler interface {
	// HandleCollision resolves two overlapping bodies, returns true if it did.
	HandleCollision(a, b *Body) bool
}

// FilterMap declares which fixture types interact. A pair interacts when
// either direction was declared.
type FilterMap struct {
	allowed map[interface{}]map[interface{}]struct{}
}

func NewFilterMap(declared map[interface{}][]interface{}) *FilterMap {
	fm := &FilterMap{allowed: make(map[interface{}]map[interface{}]struct{}, len(declared))}
	for from, targets := range declared {
		set := make(map[interface{}]struct{}, len(targets))
		for _, t := range targets {
			set[t] = struct{}{}
		}
		fm.allowed[from] = set
	}
	return fm
}

func (fm *FilterMap) Allows(a, b interface{}) bool {
	if fm == nil {
		return false
	}
	if _, ok := fm.allowed[a][b]; ok {
		return true
	}
	_, ok := fm.allowed[b][a]
	return ok
}

// Targets returns the types declared for the given type.
func (fm *FilterMap) Targets(t interface{}) []interface{} {
	out := make([]interface{}, 0, len(fm.allowed[t]))
	for target := range fm.allowed[t] {
		out = append(out, target)
	}
	return out
}
