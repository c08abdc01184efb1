package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"archview/internal/config"
	archerrors "archview/internal/errors"
	"archview/internal/extract"
	"archview/internal/history"
	"archview/internal/model"
	"archview/internal/pipeline"
	"archview/internal/scan"
	"archview/internal/writer"
)

var (
	genServer      string
	genClient      string
	genOutput      string
	genTitle       string
	genFormat      string
	genFrontMatter bool
	genNoHistory   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the architecture diagram",
	Long: `Scan the server and client trees, infer the architecture, and write the
Mermaid diagram document.

The server tree is always processed before the client tree: pages can only
link to controllers and gateways that already exist in the model.

Examples:
  archview generate
  archview generate --server api/src --client web/app -o docs/ARCHITECTURE.md
  archview generate --format json --no-history`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genServer, "server", "", "Server source tree (default from config)")
	generateCmd.Flags().StringVar(&genClient, "client", "", "Client source tree (default from config)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file (default from config)")
	generateCmd.Flags().StringVar(&genTitle, "title", "", "Document title (default from config)")
	generateCmd.Flags().StringVar(&genFormat, "format", "human", "Summary format (json, human)")
	generateCmd.Flags().BoolVar(&genFrontMatter, "front-matter", false, "Prepend YAML front matter to the document")
	generateCmd.Flags().BoolVar(&genNoHistory, "no-history", false, "Do not record this run in the history store")
	rootCmd.AddCommand(generateCmd)
}

// GenerateResponseCLI is the run summary printed after a generate.
type GenerateResponseCLI struct {
	RunID        string            `json:"runId,omitempty"`
	Output       string            `json:"output"`
	ServerFiles  int               `json:"serverFiles"`
	ClientFiles  int               `json:"clientFiles"`
	Components   int               `json:"components"`
	Interactions int               `json:"interactions"`
	Collisions   []model.Collision `json:"collisions,omitempty"`
	DurationMs   int64             `json:"durationMs"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	root := mustGetProjectRoot()
	dir := stateDir(root)

	cfg, err := config.LoadConfigFrom(dir)
	if err != nil {
		return archerrors.New(archerrors.ConfigInvalid, "loading config", err)
	}
	logger := newLoggerFor(cfg)
	if genServer != "" {
		cfg.ServerDir = genServer
	}
	if genClient != "" {
		cfg.ClientDir = genClient
	}
	if genOutput != "" {
		cfg.Output = genOutput
	}
	if genTitle != "" {
		cfg.Title = genTitle
	}

	patterns, err := config.LoadPatternsFrom(dir)
	if err != nil {
		return archerrors.New(archerrors.ConfigInvalid, "loading patterns", err)
	}

	opts := scan.Options{
		Extensions:     cfg.Scan.Extensions,
		IgnoreDirs:     cfg.Scan.IgnoreDirs,
		IgnoreSuffixes: cfg.Scan.IgnoreSuffixes,
	}
	serverFiles, err := scan.Walk(resolvePath(root, cfg.ServerDir), opts)
	if err != nil {
		return archerrors.New(archerrors.TreeUnreadable, "scanning server tree", err)
	}

	// Only route files carry page facts in a file-routed client tree.
	clientOpts := opts
	clientOpts.OnlyNames = []string{"page.ts", "page.tsx", "page.js", "page.jsx"}
	clientFiles, err := scan.Walk(resolvePath(root, cfg.ClientDir), clientOpts)
	if err != nil {
		return archerrors.New(archerrors.TreeUnreadable, "scanning client tree", err)
	}

	driver := pipeline.NewDriver(
		extract.NewServerProfile(patterns.ServiceMarkers, patterns.GatewayMarkers, patterns.PersistenceServices),
		extract.NewClientProfile(),
		logger,
	)
	result := driver.Run(serverFiles, clientFiles)

	outputPath := resolvePath(root, cfg.Output)
	doc := writer.Document{
		Title:       cfg.Title,
		Diagram:     result.Diagram,
		GeneratedAt: start,
		FrontMatter: genFrontMatter,
	}
	if err := writer.Write(outputPath, doc); err != nil {
		return archerrors.New(archerrors.OutputWriteFailed, "writing diagram document", err)
	}

	resp := &GenerateResponseCLI{
		Output:       cfg.Output,
		ServerFiles:  len(serverFiles),
		ClientFiles:  len(clientFiles),
		Components:   len(result.Model.Components()),
		Interactions: len(result.Model.Interactions()),
		Collisions:   result.Model.Collisions(),
		DurationMs:   time.Since(start).Milliseconds(),
	}

	if cfg.History.Enabled && !genNoHistory {
		store, err := history.Open(dir, logger)
		if err != nil {
			// History is auxiliary; a broken store must not fail the run.
			logger.Warn("history store unavailable", "error", err)
		} else {
			defer store.Close()
			run := history.Run{
				CreatedAt:    start.UTC(),
				ServerFiles:  resp.ServerFiles,
				ClientFiles:  resp.ClientFiles,
				Components:   resp.Components,
				Interactions: resp.Interactions,
				Collisions:   len(resp.Collisions),
				OutputPath:   cfg.Output,
			}
			id, err := store.Record(run, result.Diagram)
			if err != nil {
				logger.Warn("recording run failed", "error", err)
			} else {
				resp.RunID = id
			}
		}
	}

	output, err := FormatResponse(resp, OutputFormat(genFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)

	logger.Debug("generate completed",
		"components", resp.Components,
		"interactions", resp.Interactions,
		"duration", resp.DurationMs,
	)
	return nil
}
