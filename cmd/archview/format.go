package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *GenerateResponseCLI:
		return formatGenerateHuman(v), nil
	case *HistoryResponseCLI:
		return formatHistoryHuman(v), nil
	default:
		return formatJSON(resp)
	}
}

func formatGenerateHuman(resp *GenerateResponseCLI) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Wrote %s\n", resp.Output))
	b.WriteString(fmt.Sprintf("  Components:   %d\n", resp.Components))
	b.WriteString(fmt.Sprintf("  Interactions: %d\n", resp.Interactions))
	b.WriteString(fmt.Sprintf("  Files:        %d server, %d client\n", resp.ServerFiles, resp.ClientFiles))

	if len(resp.Collisions) > 0 {
		b.WriteString(fmt.Sprintf("  Collisions:   %d (later definition wins)\n", len(resp.Collisions)))
		for _, c := range resp.Collisions {
			b.WriteString(fmt.Sprintf("    %s: %s replaced %s\n", c.ID, c.NewPath, c.PreviousPath))
		}
	}
	if resp.RunID != "" {
		b.WriteString(fmt.Sprintf("  Run:          %s\n", resp.RunID))
	}
	b.WriteString(fmt.Sprintf("  Duration:     %dms", resp.DurationMs))

	return b.String()
}

func formatHistoryHuman(resp *HistoryResponseCLI) string {
	if len(resp.Runs) == 0 {
		return "No recorded runs."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-36s  %-20s  %10s  %12s  %s\n", "RUN", "CREATED", "COMPONENTS", "INTERACTIONS", "OUTPUT"))
	for _, r := range resp.Runs {
		b.WriteString(fmt.Sprintf("%-36s  %-20s  %10d  %12d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Components, r.Interactions, r.OutputPath))
	}
	return strings.TrimRight(b.String(), "\n")
}
