package writer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	diagram := "flowchart LR\n  A[\"A\"]\n"

	t.Run("title and fenced block", func(t *testing.T) {
		out, err := Markdown(Document{Title: "Architecture", Diagram: diagram})
		require.NoError(t, err)

		assert.Equal(t, "# Architecture\n\n```mermaid\nflowchart LR\n  A[\"A\"]\n```\n", out)
	})

	t.Run("no title", func(t *testing.T) {
		out, err := Markdown(Document{Diagram: diagram})
		require.NoError(t, err)

		assert.Equal(t, "```mermaid\nflowchart LR\n  A[\"A\"]\n```\n", out)
	})

	t.Run("missing trailing newline is repaired", func(t *testing.T) {
		out, err := Markdown(Document{Diagram: "flowchart LR"})
		require.NoError(t, err)

		assert.Contains(t, out, "flowchart LR\n```\n")
	})

	t.Run("front matter", func(t *testing.T) {
		at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
		out, err := Markdown(Document{Title: "Arch", Diagram: diagram, GeneratedAt: at, FrontMatter: true})
		require.NoError(t, err)

		assert.Contains(t, out, "---\ntitle: Arch\ngeneratedAt: \"2026-03-14T09:30:00Z\"\n---\n")
		assert.Contains(t, out, "# Arch\n")
	})
}

func TestWrite(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "docs", "ARCHITECTURE.md")

		err := Write(path, Document{Title: "Arch", Diagram: "flowchart LR\n"})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "```mermaid")
	})
}
