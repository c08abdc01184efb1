// Package render turns a finished architecture model into Mermaid flowchart
// text. Rendering is a pure function of the model: same model in, same
// bytes out.
package render

import (
	"strconv"
	"strings"

	"archview/internal/model"
)

// clusterStyles are the fixed style classes, one per cluster, emitted in
// cluster declaration order.
var clusterStyles = []struct {
	cluster model.Cluster
	class   string
	def     string
}{
	{model.ClusterUser, "user", "fill:#fff3bf,stroke:#b08900,color:#000"},
	{model.ClusterClient, "client", "fill:#d0ebff,stroke:#1c7ed6,color:#000"},
	{model.ClusterServer, "server", "fill:#d3f9d8,stroke:#2f9e44,color:#000"},
	{model.ClusterDatabase, "database", "fill:#ffe3e3,stroke:#e03131,color:#000"},
}

// Mermaid renders the model as a flowchart LR document. Components appear
// grouped in cluster subgraphs, then explicit edges in log order (dropping
// any edge with a missing endpoint), then one implicit user navigation edge
// per page, then style definitions and per-cluster class assignments.
func Mermaid(m *model.Model) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	components := m.Components()
	buckets := make(map[model.Cluster][]model.Component)
	for _, c := range components {
		buckets[c.Cluster()] = append(buckets[c.Cluster()], c)
	}

	// Sanitization is many-to-one, so two distinct identifiers can collapse
	// to the same node id. Later components get a numeric suffix.
	ids := make(map[string]string, len(components))
	used := make(map[string]bool, len(components))
	for _, c := range components {
		id := NodeID(c.ID)
		for n := 2; used[id]; n++ {
			id = NodeID(c.ID) + "_" + strconv.Itoa(n)
		}
		ids[c.ID] = id
		used[id] = true
	}

	for _, cluster := range model.ClusterOrder {
		members := buckets[cluster]
		if len(members) == 0 {
			continue
		}
		// The subgraph id must differ from every node id; the synthesized
		// User and Database nodes would otherwise collide with their own
		// cluster block.
		b.WriteString("  subgraph " + clusterClass(cluster) + "Side[\"" + string(cluster) + "\"]\n")
		for _, c := range members {
			b.WriteString("    " + ids[c.ID] + "[\"" + escapeLabel(c.Label) + "\"]\n")
		}
		b.WriteString("  end\n")
	}

	for _, e := range m.Interactions() {
		if !m.Has(e.SourceID) || !m.Has(e.TargetID) {
			continue
		}
		b.WriteString("  " + edgeLine(ids[e.SourceID], ids[e.TargetID], e.Label, e.Async) + "\n")
	}

	// Every page is reachable by a human regardless of any explicit edge;
	// duplicates with the explicit log are expected.
	userNode := ids[model.UserID]
	if userNode == "" {
		userNode = NodeID(model.UserID)
	}
	for _, c := range components {
		if c.Kind == model.KindClientPage {
			b.WriteString("  " + edgeLine(userNode, ids[c.ID], "navigates to", false) + "\n")
		}
	}

	for _, s := range clusterStyles {
		b.WriteString("  classDef " + s.class + " " + s.def + "\n")
	}
	for _, s := range clusterStyles {
		members := buckets[s.cluster]
		if len(members) == 0 {
			// Mermaid rejects a class statement with no members.
			continue
		}
		names := make([]string, 0, len(members))
		for _, c := range members {
			names = append(names, ids[c.ID])
		}
		b.WriteString("  class " + strings.Join(names, ",") + " " + s.class + "\n")
	}

	return b.String()
}

// clusterClass returns the style-class name of a cluster.
func clusterClass(cluster model.Cluster) string {
	for _, s := range clusterStyles {
		if s.cluster == cluster {
			return s.class
		}
	}
	return "server"
}

// NodeID maps a component identifier to a Mermaid-safe node id. Identifiers
// carry arbitrary text (routes, parentheses); Mermaid ids may not.
func NodeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// escapeLabel makes arbitrary label text safe inside Mermaid's quoting
// syntax. Embedded newlines become explicit line breaks.
func escapeLabel(label string) string {
	s := strings.ReplaceAll(label, `"`, "#quot;")
	return strings.ReplaceAll(s, "\n", "<br/>")
}

// escapeEdgeLabel keeps edge labels inside the |...| delimiters valid.
func escapeEdgeLabel(label string) string {
	s := strings.ReplaceAll(label, "|", "/")
	return strings.ReplaceAll(s, "\n", " ")
}

func edgeLine(src, dst, label string, async bool) string {
	arrow := "-->"
	if async {
		arrow = "-.->"
	}
	return src + " " + arrow + "|" + escapeEdgeLabel(label) + "| " + dst
}
