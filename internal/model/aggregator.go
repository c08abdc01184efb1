package model

import "strings"

// Model is the mutable aggregation store for one pipeline run. Components
// are keyed by identifier with last-write-wins upserts; interactions are an
// append-only log with no deduplication and no reference validation (both
// are resolved at render time). Not safe for concurrent use; the pipeline
// is single-writer.
type Model struct {
	components map[string]Component
	order      []string // identifier insertion order
	edges      []Interaction
	collisions []Collision
}

// New returns an empty model.
func New() *Model {
	return &Model{components: make(map[string]Component)}
}

// UpsertComponent inserts or overwrites by identifier. No field merging:
// the last full insert wins. Overwrites of a distinct source entity are
// recorded as collisions but never rejected.
func (m *Model) UpsertComponent(c Component) {
	if prev, ok := m.components[c.ID]; ok {
		if prev.SourcePath != c.SourcePath || prev.Kind != c.Kind {
			m.collisions = append(m.collisions, Collision{
				ID:           c.ID,
				PreviousPath: prev.SourcePath,
				NewPath:      c.SourcePath,
			})
		}
	} else {
		m.order = append(m.order, c.ID)
	}
	m.components[c.ID] = c
}

// AppendInteraction always appends. Duplicate and dangling edges accumulate
// here and are filtered only when rendering.
func (m *Model) AppendInteraction(i Interaction) {
	m.edges = append(m.edges, i)
}

// Component returns the component with the given identifier.
func (m *Model) Component(id string) (Component, bool) {
	c, ok := m.components[id]
	return c, ok
}

// Has reports whether a component with the given identifier exists.
func (m *Model) Has(id string) bool {
	_, ok := m.components[id]
	return ok
}

// Components returns all components in insertion order. Overwrites keep the
// original position so output stays stable across reruns.
func (m *Model) Components() []Component {
	out := make([]Component, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.components[id])
	}
	return out
}

// Interactions returns the interaction log in append order.
func (m *Model) Interactions() []Interaction {
	return m.edges
}

// Collisions returns the identifier collisions observed so far.
func (m *Model) Collisions() []Collision {
	return m.collisions
}

// ControllerByRoute returns the first controller (in insertion order) whose
// label embeds the given /api/<fragment> route.
func (m *Model) ControllerByRoute(fragment string) (Component, bool) {
	needle := "/api/" + fragment
	for _, id := range m.order {
		c := m.components[id]
		if c.Kind == KindController && strings.Contains(c.Label, needle) {
			return c, true
		}
	}
	return Component{}, false
}

// FirstGateway returns the first gateway component in insertion order.
func (m *Model) FirstGateway() (Component, bool) {
	for _, id := range m.order {
		if c := m.components[id]; c.Kind == KindGateway {
			return c, true
		}
	}
	return Component{}, false
}

// SynthesizeExternalActors adds the two components no single file can
// prove: the human user and the abstract database. If any of the given
// persistence service identifiers is present, one "queries" edge from it to
// the database is appended. Must run after all file extraction so the
// presence check is accurate.
func (m *Model) SynthesizeExternalActors(persistenceIDs ...string) {
	m.UpsertComponent(Component{ID: UserID, Kind: KindUser, Label: "User"})
	m.UpsertComponent(Component{ID: DatabaseID, Kind: KindDatabase, Label: "Database"})

	for _, id := range persistenceIDs {
		if m.Has(id) {
			m.AppendInteraction(Interaction{SourceID: id, TargetID: DatabaseID, Label: "queries"})
		}
	}
}
