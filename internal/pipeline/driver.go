// Package pipeline sequences the extraction, synthesis, and rendering
// stages over collaborator-supplied file lists.
package pipeline

import (
	"log/slog"

	"archview/internal/extract"
	"archview/internal/model"
	"archview/internal/render"
	"archview/internal/scan"
)

// Driver owns the model for one run and enforces the stage ordering the
// extractors rely on: the whole server tree is extracted before any client
// file, so every controller and gateway a page can reference already exists
// when pages are scanned. Synthesis runs after all extraction.
type Driver struct {
	server *extract.ServerProfile
	client *extract.ClientProfile
	logger *slog.Logger
}

// NewDriver creates a pipeline driver.
func NewDriver(server *extract.ServerProfile, client *extract.ClientProfile, logger *slog.Logger) *Driver {
	return &Driver{server: server, client: client, logger: logger}
}

// Result is the outcome of one completed run.
type Result struct {
	Model   *model.Model
	Diagram string
}

// Run executes one batch pass and always yields a complete document; with
// no input it degenerates to the two synthesized actors and no edges.
func (d *Driver) Run(serverFiles, clientFiles []scan.SourceFile) *Result {
	m := model.New()

	for _, f := range serverFiles {
		d.server.Extract(f.Path, f.Content, m)
	}
	d.logger.Debug("server tree extracted",
		"files", len(serverFiles),
		"components", len(m.Components()),
		"interactions", len(m.Interactions()),
	)

	for _, f := range clientFiles {
		d.client.Extract(f.RelPath, f.Content, m)
	}
	d.logger.Debug("client tree extracted",
		"files", len(clientFiles),
		"components", len(m.Components()),
		"interactions", len(m.Interactions()),
	)

	m.SynthesizeExternalActors(d.server.PersistenceServices()...)

	for _, c := range m.Collisions() {
		d.logger.Warn("identifier collision, later definition wins",
			"id", c.ID,
			"previous", c.PreviousPath,
			"replacement", c.NewPath,
		)
	}

	return &Result{Model: m, Diagram: render.Mermaid(m)}
}
