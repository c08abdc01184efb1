package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archview/internal/model"
)

func TestMermaidEmptyModel(t *testing.T) {
	m := model.New()
	m.SynthesizeExternalActors("PrismaService")

	want := `flowchart LR
  subgraph userSide["User"]
    User["User"]
  end
  subgraph databaseSide["Database"]
    Database["Database"]
  end
  classDef user fill:#fff3bf,stroke:#b08900,color:#000
  classDef client fill:#d0ebff,stroke:#1c7ed6,color:#000
  classDef server fill:#d3f9d8,stroke:#2f9e44,color:#000
  classDef database fill:#ffe3e3,stroke:#e03131,color:#000
  class User user
  class Database database
`
	assert.Equal(t, want, Mermaid(m))
}

func TestMermaid(t *testing.T) {
	build := func() *model.Model {
		m := model.New()
		m.UpsertComponent(model.Component{ID: "OrdersController", Kind: model.KindController, Label: "OrdersController\n/api/orders", SourcePath: "orders.controller.ts"})
		m.UpsertComponent(model.Component{ID: "OrdersService", Kind: model.KindService, Label: "OrdersService", SourcePath: "orders.service.ts"})
		m.UpsertComponent(model.Component{ID: "Page(dashboard)", Kind: model.KindClientPage, Label: "/dashboard", SourcePath: "dashboard/page.tsx"})
		m.AppendInteraction(model.Interaction{SourceID: "OrdersController", TargetID: "OrdersService", Label: "injects"})
		m.AppendInteraction(model.Interaction{SourceID: "Page(dashboard)", TargetID: "OrdersController", Label: "GET /api/orders"})
		m.SynthesizeExternalActors("PrismaService")
		return m
	}

	t.Run("cluster blocks appear in fixed order", func(t *testing.T) {
		out := Mermaid(build())

		user := strings.Index(out, `subgraph userSide["User"]`)
		client := strings.Index(out, `subgraph clientSide["Client"]`)
		server := strings.Index(out, `subgraph serverSide["Server"]`)
		db := strings.Index(out, `subgraph databaseSide["Database"]`)
		require.True(t, user >= 0 && client >= 0 && server >= 0 && db >= 0)
		assert.True(t, user < client && client < server && server < db)
	})

	t.Run("labels embed secondary lines as breaks", func(t *testing.T) {
		out := Mermaid(build())
		assert.Contains(t, out, `OrdersController["OrdersController<br/>/api/orders"]`)
	})

	t.Run("identifiers are sanitized consistently", func(t *testing.T) {
		out := Mermaid(build())
		assert.Contains(t, out, `Page_dashboard_["/dashboard"]`)
		assert.Contains(t, out, "Page_dashboard_ -->|GET /api/orders| OrdersController")
		assert.NotContains(t, out, "Page(dashboard)")
	})

	t.Run("implicit navigation edge per page", func(t *testing.T) {
		out := Mermaid(build())
		assert.Contains(t, out, "User -->|navigates to| Page_dashboard_")
	})

	t.Run("class assignment lists cluster members", func(t *testing.T) {
		out := Mermaid(build())
		assert.Contains(t, out, "class User user\n")
		assert.Contains(t, out, "class Page_dashboard_ client\n")
		assert.Contains(t, out, "class OrdersController,OrdersService server\n")
		assert.Contains(t, out, "class Database database\n")
	})

	t.Run("each component appears in exactly one cluster block and one class line", func(t *testing.T) {
		out := Mermaid(build())
		assert.Equal(t, 1, strings.Count(out, `OrdersService["OrdersService"]`))

		classLines := 0
		for _, line := range strings.Split(out, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "class ") && strings.Contains(trimmed, "OrdersService") {
				classLines++
			}
		}
		assert.Equal(t, 1, classLines)
	})

	t.Run("rendering is deterministic", func(t *testing.T) {
		assert.Equal(t, Mermaid(build()), Mermaid(build()))
	})
}

func TestMermaidEdges(t *testing.T) {
	t.Run("dangling edges are dropped silently", func(t *testing.T) {
		m := model.New()
		m.UpsertComponent(model.Component{ID: "A", Kind: model.KindService, Label: "A"})
		m.AppendInteraction(model.Interaction{SourceID: "A", TargetID: "Ghost", Label: "injects"})
		m.AppendInteraction(model.Interaction{SourceID: "Phantom", TargetID: "A", Label: "uses"})

		out := Mermaid(m)
		assert.NotContains(t, out, "Ghost")
		assert.NotContains(t, out, "Phantom")
		assert.NotContains(t, out, "-->")
	})

	t.Run("asynchronous edges render dashed", func(t *testing.T) {
		m := model.New()
		m.UpsertComponent(model.Component{ID: "Page(live)", Kind: model.KindClientPage, Label: "/live"})
		m.UpsertComponent(model.Component{ID: "EventsGateway", Kind: model.KindGateway, Label: "EventsGateway\nWebSocket"})
		m.AppendInteraction(model.Interaction{SourceID: "Page(live)", TargetID: "EventsGateway", Label: "connects to", Async: true})

		out := Mermaid(m)
		assert.Contains(t, out, "Page_live_ -.->|connects to| EventsGateway")
	})

	t.Run("identifiers that sanitize alike stay distinct nodes", func(t *testing.T) {
		m := model.New()
		m.UpsertComponent(model.Component{ID: "Page(a/b)", Kind: model.KindClientPage, Label: "/a/b"})
		m.UpsertComponent(model.Component{ID: "Page(a.b)", Kind: model.KindClientPage, Label: "/a.b"})
		m.UpsertComponent(model.Component{ID: "OrdersController", Kind: model.KindController, Label: "OrdersController\n/api/orders"})
		m.AppendInteraction(model.Interaction{SourceID: "Page(a.b)", TargetID: "OrdersController", Label: "GET /api/orders"})

		out := Mermaid(m)
		assert.Contains(t, out, `Page_a_b_["/a/b"]`)
		assert.Contains(t, out, `Page_a_b__2["/a.b"]`)
		assert.Contains(t, out, "Page_a_b__2 -->|GET /api/orders| OrdersController")
		assert.Contains(t, out, "class Page_a_b_,Page_a_b__2 client\n")
	})

	t.Run("duplicate edges all render", func(t *testing.T) {
		m := model.New()
		m.UpsertComponent(model.Component{ID: "A", Kind: model.KindService, Label: "A"})
		m.UpsertComponent(model.Component{ID: "B", Kind: model.KindService, Label: "B"})
		m.AppendInteraction(model.Interaction{SourceID: "A", TargetID: "B", Label: "uses"})
		m.AppendInteraction(model.Interaction{SourceID: "A", TargetID: "B", Label: "uses"})

		out := Mermaid(m)
		assert.Equal(t, 2, strings.Count(out, "A -->|uses| B"))
	})
}

func TestNodeID(t *testing.T) {
	assert.Equal(t, "OrdersController", NodeID("OrdersController"))
	assert.Equal(t, "Page_dashboard_", NodeID("Page(dashboard)"))
	assert.Equal(t, "Page_orders_detail_", NodeID("Page(orders/detail)"))
	assert.Equal(t, "Page___", NodeID("Page(/)"))
}

func TestEscapeLabel(t *testing.T) {
	assert.Equal(t, "a#quot;b", escapeLabel(`a"b`))
	assert.Equal(t, "a<br/>b", escapeLabel("a\nb"))
}
