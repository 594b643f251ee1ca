package ecs

import "github.com/milk9111/climbing/ecs/component"

// Add stores value for e. Values are held by pointer so systems mutate them
// in place.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	return w.AddComponent(e, handle.Kind(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.Kind())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.Kind())
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	value, ok := w.GetComponent(e, handle.Kind())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok && cast != nil
}

// First returns the lowest-id live entity carrying handle.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, *T, bool) {
	e, ok := w.First(handle.Kind())
	if !ok {
		return 0, nil, false
	}
	v, ok := Get(w, e, handle)
	return e, v, ok
}

func ForEach[T any](w *World, a component.ComponentHandle[T], fn func(Entity, *T)) {
	for _, e := range w.Query(a.Kind()) {
		if av, ok := Get(w, e, a); ok {
			fn(e, av)
		}
	}
}

func ForEach2[A, B any](w *World, a component.ComponentHandle[A], b component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(a.Kind(), b.Kind()) {
		av, okA := Get(w, e, a)
		bv, okB := Get(w, e, b)
		if okA && okB {
			fn(e, av, bv)
		}
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentHandle[A], b component.ComponentHandle[B], c component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(a.Kind(), b.Kind(), c.Kind()) {
		av, okA := Get(w, e, a)
		bv, okB := Get(w, e, b)
		cv, okC := Get(w, e, c)
		if okA && okB && okC {
			fn(e, av, bv, cv)
		}
	}
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentHandle[A], b component.ComponentHandle[B], c component.ComponentHandle[C], d component.ComponentHandle[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range w.Query(a.Kind(), b.Kind(), c.Kind(), d.Kind()) {
		av, okA := Get(w, e, a)
		bv, okB := Get(w, e, b)
		cv, okC := Get(w, e, c)
		dv, okD := Get(w, e, d)
		if okA && okB && okC && okD {
			fn(e, av, bv, cv, dv)
		}
	}
}
