// Package entity owns the simulated objects of a running game.
//
// Entities are addressed by name. Spawning under an existing name replaces
// the entity wholesale but keeps its iteration slot, so render order is the
// order in which names were first introduced.
package entity

import "github.com/vovakirdan/gameland/internal/core"

// Entity is a named, positioned rectangle with velocity and color.
type Entity struct {
	Name   string
	X, Y   float64
	VX, VY float64
	W, H   float64
	Color  core.RGB
}

// Bounds returns the entity's rectangle on the canvas.
func (e Entity) Bounds() core.Rect {
	return core.NewRect(e.X, e.Y, e.W, e.H)
}

// Registry stores entities by name in first-spawn order.
// It is not safe for concurrent use; the frame scheduler is its only driver.
type Registry struct {
	byName map[string]*Entity
	order  []*Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Entity),
	}
}

// Spawn inserts a new entity or replaces the one already under name.
// Velocity always starts at zero.
func (r *Registry) Spawn(name string, x, y, w, h float64, color core.RGB) {
	fresh := Entity{Name: name, X: x, Y: y, W: w, H: h, Color: color}
	if e, ok := r.byName[name]; ok {
		*e = fresh
		return
	}
	e := &fresh
	r.byName[name] = e
	r.order = append(r.order, e)
}

// SetVelocity sets the velocity of a named entity.
// Unknown names are ignored.
func (r *Registry) SetVelocity(name string, vx, vy float64) {
	if e, ok := r.byName[name]; ok {
		e.VX = vx
		e.VY = vy
	}
}

// Position returns the position of a named entity.
// ok is false when no entity has that name.
func (r *Registry) Position(name string) (x, y float64, ok bool) {
	e, ok := r.byName[name]
	if !ok {
		return 0, 0, false
	}
	return e.X, e.Y, true
}

// SetPosition moves a named entity. Unknown names are ignored.
func (r *Registry) SetPosition(name string, x, y float64) {
	if e, ok := r.byName[name]; ok {
		e.X = x
		e.Y = y
	}
}

// Integrate advances every entity by one explicit Euler step of dt seconds.
func (r *Registry) Integrate(dt float64) {
	for _, e := range r.order {
		e.X += e.VX * dt
		e.Y += e.VY * dt
	}
}

// Each calls fn for every entity in first-spawn order.
func (r *Registry) Each(fn func(Entity)) {
	for _, e := range r.order {
		fn(*e)
	}
}

// Get returns a copy of the named entity.
func (r *Registry) Get(name string) (Entity, bool) {
	e, ok := r.byName[name]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns entity names in iteration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, e := range r.order {
		names[i] = e.Name
	}
	return names
}
