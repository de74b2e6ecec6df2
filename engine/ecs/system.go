package ecs

import (
	"reflect"

	"golang.org/x/exp/slices"
)

// GameSystem is a unit of per-frame behavior owned by a GameEngine. A system
// only processes the entities that qualify for it.
type GameSystem interface {
	Name() string
	On() bool
	SetOn(on bool)
	Qualifies(e *GameEntity) bool
	Add(e *GameEntity) bool
	Remove(e *GameEntity) bool
	Update(delta float64) error
	Reset()
	Shutdown() error
}

// BaseGameSystem keeps the entities having every required component and
// calls Process for each of them. Systems embed it and set Process.
type BaseGameSystem struct {
	name     string
	on       bool
	required []reflect.Type
	entities []*GameEntity

	// Process runs once per live entity on every Update while the system is on.
	Process func(e *GameEntity, delta float64) error
	// PreProcess and PostProcess wrap the entity loop.
	PreProcess  func(delta float64)
	PostProcess func(delta float64)
}

func NewBaseGameSystem(name string, required ...reflect.Type) *BaseGameSystem {
	return &BaseGameSystem{
		name:     name,
		on:       true,
		required: required,
	}
}

func (s *BaseGameSystem) Name() string    { return s.name }
func (s *BaseGameSystem) On() bool        { return s.on }
func (s *BaseGameSystem) SetOn(on bool)   { s.on = on }
func (s *BaseGameSystem) Shutdown() error { return nil }

func (s *BaseGameSystem) Qualifies(e *GameEntity) bool {
	for _, t := range s.required {
		if !e.HasComponent(t) {
			return false
		}
	}
	return true
}

func (s *BaseGameSystem) Add(e *GameEntity) bool {
	if slices.Contains(s.entities, e) {
		return false
	}
	s.entities = append(s.entities, e)
	return true
}

func (s *BaseGameSystem) Remove(e *GameEntity) bool {
	n := len(s.entities)
	s.entities = slices.DeleteFunc(s.entities, func(other *GameEntity) bool { return other == e })
	return len(s.entities) != n
}

// Entities returns the entities currently handled by the system.
func (s *BaseGameSystem) Entities() []*GameEntity {
	return slices.Clone(s.entities)
}

func (s *BaseGameSystem) Reset() {
	s.entities = nil
}

func (s *BaseGameSystem) Update(delta float64) error {
	if !s.on {
		return nil
	}
	if s.PreProcess != nil {
		s.PreProcess(delta)
	}
	if s.Process != nil {
		for _, e := range slices.Clone(s.entities) {
			if e.IsDead() {
				continue
			}
			if err := s.Process(e, delta); err != nil {
				return err
			}
		}
	}
	if s.PostProcess != nil {
		s.PostProcess(delta)
	}
	return nil
}
