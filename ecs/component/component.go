// Package component declares the data the navshell systems share. Every
// component type gets one package-level handle whose Kind keys its store.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies a component store. Zero is never handed out.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind ties a store id to its Go type so lookups stay typed.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind allocates a fresh kind. Two kinds of the same type are
// distinct stores.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

// Valid is false for the zero kind.
func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// ComponentHandle is the package-level declaration of a component, e.g.
//
//	var NavAgentComponent = NewComponent[NavAgent]()
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
