// Package writer emits the final architecture document: the rendered
// diagram inside a fenced mermaid block, optionally under a title heading
// and YAML front matter.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is the assembled output before serialization.
type Document struct {
	Title       string
	Diagram     string
	GeneratedAt time.Time
	FrontMatter bool
}

type frontMatter struct {
	Title       string `yaml:"title"`
	GeneratedAt string `yaml:"generatedAt"`
}

// Markdown serializes the document. Pure; writing is separate so the
// serialization stays testable byte for byte.
func Markdown(doc Document) (string, error) {
	var b strings.Builder

	if doc.FrontMatter {
		fm, err := yaml.Marshal(frontMatter{
			Title:       doc.Title,
			GeneratedAt: doc.GeneratedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			return "", fmt.Errorf("marshaling front matter: %w", err)
		}
		b.WriteString("---\n")
		b.Write(fm)
		b.WriteString("---\n\n")
	}

	if doc.Title != "" {
		b.WriteString("# " + doc.Title + "\n\n")
	}

	b.WriteString("```mermaid\n")
	b.WriteString(doc.Diagram)
	if !strings.HasSuffix(doc.Diagram, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")

	return b.String(), nil
}

// Write serializes the document and writes it to path, creating parent
// directories as needed.
func Write(path string, doc Document) error {
	text, err := Markdown(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
