package core

// EntityID is an opaque identifier for a row of components
type EntityID uint64

// Component is a marker interface for all components
type Component interface {
	Type() ComponentType
}

// ComponentType identifies the type of component
type ComponentType uint32

const (
	CompPosition ComponentType = iota
	CompVelocity
	CompMass
	CompCelestial
	CompEndZone
	CompSpacecraft
	CompVisual
	CompFuelGauge
	CompCamera
	CompRunState
	CompMax
)

// World holds all entities and their components for one loaded level.
// It is discarded wholesale on level transition or restart.
type World struct {
	entities  map[EntityID]map[ComponentType]Component
	order     []EntityID // spawn order, drives query order
	systems   []System
	nextID    EntityID
	TickCount uint64
}

// System processes entities each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// Filter selects entities by required and forbidden component types
type Filter struct {
	With    []ComponentType
	Without []ComponentType
}

// NewWorld creates an empty ECS world
func NewWorld() *World {
	return &World{
		entities: make(map[EntityID]map[ComponentType]Component),
	}
}

// Spawn creates a new entity from a component bundle and returns its ID
func (w *World) Spawn(bundle ...Component) EntityID {
	w.nextID++
	id := w.nextID
	comps := make(map[ComponentType]Component, len(bundle))
	for _, c := range bundle {
		comps[c.Type()] = c
	}
	w.entities[id] = comps
	w.order = append(w.order, id)
	return id
}

// Attach adds a component to an entity, replacing any of the same type
func (w *World) Attach(id EntityID, c Component) {
	if comps, ok := w.entities[id]; ok {
		comps[c.Type()] = c
	}
}

// Get returns a component for an entity, or nil
func (w *World) Get(id EntityID, ct ComponentType) Component {
	if comps, ok := w.entities[id]; ok {
		return comps[ct]
	}
	return nil
}

// Has checks if an entity has a component
func (w *World) Has(id EntityID, ct ComponentType) bool {
	if comps, ok := w.entities[id]; ok {
		_, exists := comps[ct]
		return exists
	}
	return false
}

// Query returns all entity IDs that have ALL specified component types, in spawn order
func (w *World) Query(types ...ComponentType) []EntityID {
	return w.Select(Filter{With: types})
}

// Select returns the entity IDs matching f, in spawn order. The result is a
// snapshot: spawning while iterating it never invalidates it.
func (w *World) Select(f Filter) []EntityID {
	var result []EntityID
	for _, id := range w.order {
		comps := w.entities[id]
		if matches(comps, f) {
			result = append(result, id)
		}
	}
	return result
}

func matches(comps map[ComponentType]Component, f Filter) bool {
	for _, t := range f.With {
		if _, ok := comps[t]; !ok {
			return false
		}
	}
	for _, t := range f.Without {
		if _, ok := comps[t]; ok {
			return false
		}
	}
	return true
}

// Get returns the component of type T attached to id. T is the pointer type
// stored in the world, e.g. Get[*Position](w, id).
func Get[T Component](w *World, id EntityID) (T, bool) {
	var zero T
	c, ok := w.Get(id, zero.Type()).(T)
	return c, ok
}

// First returns the earliest-spawned entity carrying T. Used for singletons
// such as the camera and run state.
func First[T Component](w *World) (EntityID, T, bool) {
	var zero T
	ct := zero.Type()
	for _, id := range w.order {
		if c, ok := w.entities[id][ct].(T); ok {
			return id, c, true
		}
	}
	return 0, zero, false
}

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick runs all systems once
func (w *World) Tick(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.TickCount++
}

// EntityCount returns the number of alive entities
func (w *World) EntityCount() int {
	return len(w.entities)
}
