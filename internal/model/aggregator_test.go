package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertComponent(t *testing.T) {
	t.Run("insert then lookup", func(t *testing.T) {
		m := New()
		m.UpsertComponent(Component{ID: "OrdersController", Kind: KindController, Label: "OrdersController\n/api/orders", SourcePath: "orders.controller.ts"})

		c, ok := m.Component("OrdersController")
		require.True(t, ok)
		assert.Equal(t, KindController, c.Kind)
		assert.Equal(t, ClusterServer, c.Cluster())
	})

	t.Run("last write wins and collision is recorded", func(t *testing.T) {
		m := New()
		m.UpsertComponent(Component{ID: "Orders", Kind: KindService, SourcePath: "a.ts"})
		m.UpsertComponent(Component{ID: "Orders", Kind: KindController, SourcePath: "b.ts"})

		c, _ := m.Component("Orders")
		assert.Equal(t, KindController, c.Kind)
		assert.Equal(t, "b.ts", c.SourcePath)

		require.Len(t, m.Collisions(), 1)
		assert.Equal(t, "a.ts", m.Collisions()[0].PreviousPath)
		assert.Equal(t, "b.ts", m.Collisions()[0].NewPath)
	})

	t.Run("re-upserting the same entity is not a collision", func(t *testing.T) {
		m := New()
		m.UpsertComponent(Component{ID: "Orders", Kind: KindService, SourcePath: "a.ts"})
		m.UpsertComponent(Component{ID: "Orders", Kind: KindService, SourcePath: "a.ts"})

		assert.Empty(t, m.Collisions())
		assert.Len(t, m.Components(), 1)
	})

	t.Run("insertion order is preserved across overwrites", func(t *testing.T) {
		m := New()
		m.UpsertComponent(Component{ID: "A", Kind: KindService})
		m.UpsertComponent(Component{ID: "B", Kind: KindService})
		m.UpsertComponent(Component{ID: "A", Kind: KindController, SourcePath: "x.ts"})

		components := m.Components()
		require.Len(t, components, 2)
		assert.Equal(t, "A", components[0].ID)
		assert.Equal(t, "B", components[1].ID)
		assert.Equal(t, KindController, components[0].Kind)
	})
}

func TestAppendInteraction(t *testing.T) {
	t.Run("duplicates and dangling references accumulate", func(t *testing.T) {
		m := New()
		edge := Interaction{SourceID: "A", TargetID: "B", Label: "injects"}
		m.AppendInteraction(edge)
		m.AppendInteraction(edge)
		m.AppendInteraction(Interaction{SourceID: "A", TargetID: "Missing", Label: "uses"})

		assert.Len(t, m.Interactions(), 3)
	})
}

func TestSynthesizeExternalActors(t *testing.T) {
	t.Run("user and database are always added", func(t *testing.T) {
		m := New()
		m.SynthesizeExternalActors("PrismaService")

		assert.True(t, m.Has(UserID))
		assert.True(t, m.Has(DatabaseID))
		assert.Empty(t, m.Interactions())
	})

	t.Run("queries edge appears when the persistence service exists", func(t *testing.T) {
		m := New()
		m.UpsertComponent(Component{ID: "PrismaService", Kind: KindService, Label: "PrismaService"})
		m.SynthesizeExternalActors("PrismaService")

		require.Len(t, m.Interactions(), 1)
		edge := m.Interactions()[0]
		assert.Equal(t, "PrismaService", edge.SourceID)
		assert.Equal(t, DatabaseID, edge.TargetID)
		assert.Equal(t, "queries", edge.Label)
	})
}

func TestQueries(t *testing.T) {
	t.Run("controller lookup by route fragment", func(t *testing.T) {
		m := New()
		m.UpsertComponent(Component{ID: "UsersController", Kind: KindController, Label: "UsersController\n/api/users"})
		m.UpsertComponent(Component{ID: "OrdersController", Kind: KindController, Label: "OrdersController\n/api/orders"})

		c, ok := m.ControllerByRoute("orders")
		require.True(t, ok)
		assert.Equal(t, "OrdersController", c.ID)

		_, ok = m.ControllerByRoute("payments")
		assert.False(t, ok)
	})

	t.Run("first gateway in insertion order", func(t *testing.T) {
		m := New()
		_, ok := m.FirstGateway()
		assert.False(t, ok)

		m.UpsertComponent(Component{ID: "EventsGateway", Kind: KindGateway, Label: "EventsGateway\nWebSocket"})
		m.UpsertComponent(Component{ID: "ChatGateway", Kind: KindGateway, Label: "ChatGateway\nWebSocket"})

		gw, ok := m.FirstGateway()
		require.True(t, ok)
		assert.Equal(t, "EventsGateway", gw.ID)
	})
}

func TestClusterOf(t *testing.T) {
	assert.Equal(t, ClusterUser, ClusterOf(KindUser))
	assert.Equal(t, ClusterClient, ClusterOf(KindClientPage))
	assert.Equal(t, ClusterDatabase, ClusterOf(KindDatabase))
	assert.Equal(t, ClusterServer, ClusterOf(KindController))
	assert.Equal(t, ClusterServer, ClusterOf(KindService))
	assert.Equal(t, ClusterServer, ClusterOf(KindGateway))
}
