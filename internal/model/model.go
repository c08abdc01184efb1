// Package model holds the architecture graph assembled by extraction:
// typed components keyed by identifier plus an ordered interaction log.
package model

// Kind classifies a component. The set is closed; adding a kind means
// adding a recognizer in the extract package.
type Kind string

const (
	// KindClientPage is a file-routed client page
	KindClientPage Kind = "clientPage"
	// KindController is a route-annotated server controller
	KindController Kind = "controller"
	// KindService is an injectable server service
	KindService Kind = "service"
	// KindGateway is a websocket gateway
	KindGateway Kind = "gateway"
	// KindDatabase is the synthesized external database actor
	KindDatabase Kind = "database"
	// KindUser is the synthesized human actor
	KindUser Kind = "user"
)

// Cluster is the visual grouping bucket used for layout and styling.
type Cluster string

const (
	ClusterUser     Cluster = "User"
	ClusterClient   Cluster = "Client"
	ClusterServer   Cluster = "Server"
	ClusterDatabase Cluster = "Database"
)

// ClusterOrder is the fixed declaration order for rendered cluster blocks.
var ClusterOrder = []Cluster{ClusterUser, ClusterClient, ClusterServer, ClusterDatabase}

// ClusterOf maps a kind to its cluster. Every kind maps to exactly one
// cluster; a component can never carry a cluster inconsistent with its kind.
func ClusterOf(k Kind) Cluster {
	switch k {
	case KindUser:
		return ClusterUser
	case KindClientPage:
		return ClusterClient
	case KindDatabase:
		return ClusterDatabase
	default:
		return ClusterServer
	}
}

// Identifiers of the two synthesized external actors.
const (
	UserID     = "User"
	DatabaseID = "Database"
)

// Component is a node in the architecture graph.
type Component struct {
	ID         string `json:"id"`
	Kind       Kind   `json:"kind"`
	Label      string `json:"label"`
	SourcePath string `json:"sourcePath,omitempty"` // empty for synthesized components
}

// Cluster returns the visual cluster the component belongs to.
func (c Component) Cluster() Cluster {
	return ClusterOf(c.Kind)
}

// Interaction is a directed, labeled edge between two component
// identifiers. Endpoints may reference components that never materialize;
// such edges are dropped at render time, never errored.
type Interaction struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
	Label    string `json:"label"`
	Async    bool   `json:"async,omitempty"` // dashed edge when rendered
}

// Collision records an identifier that was overwritten by a later upsert.
// Last-write-wins semantics are kept; collisions are surfaced as a
// non-fatal diagnostic instead of silently merging two entities.
type Collision struct {
	ID           string `json:"id"`
	PreviousPath string `json:"previousPath,omitempty"`
	NewPath      string `json:"newPath,omitempty"`
}
