// Package graph renders nets as Mermaid flowcharts and Graphviz documents.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/strumyk/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of net.
// Places are drawn as ((circles)) and transitions as [boxes]; a guard is
// written on each input arc of its transition. Overlay classes (fired,
// marked, offpath) are appended when overlay is not nil.
func GenerateMermaid(net *domain.Net, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, p := range net.Places() {
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", sanitizeMermaidID(p.ID), escape(display(p.ID, p.Label))))
	}

	transitions := net.Transitions()
	for _, t := range transitions {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeMermaidID(t.ID), escape(display(t.ID, t.Label))))
	}

	for _, t := range transitions {
		safeT := sanitizeMermaidID(t.ID)
		arrow := "-->"
		if t.Guarded() {
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(t.Condition))
		}
		for _, p := range t.Input {
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(p), arrow, safeT))
		}
		for _, p := range t.Output {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeT, sanitizeMermaidID(p)))
		}
	}

	if overlay != nil {
		fired, marked, offPath := overlay.sets()
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps labels readable on both light and dark themes.
		sb.WriteString("    classDef fired fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef marked fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef offpath fill:#ffebee,stroke:#c62828,stroke-dasharray:5 5,color:#000;\n")

		for _, id := range net.TransitionIDs() {
			if fired[id] {
				sb.WriteString(fmt.Sprintf("    class %s fired;\n", sanitizeMermaidID(id)))
			}
		}
		for _, id := range net.PlaceIDs() {
			if marked[id] {
				sb.WriteString(fmt.Sprintf("    class %s marked;\n", sanitizeMermaidID(id)))
			}
		}
		for _, id := range overlay.OffPath {
			if offPath[id] && (net.HasPlace(id) || net.HasTransition(id)) {
				sb.WriteString(fmt.Sprintf("    class %s offpath;\n", sanitizeMermaidID(id)))
			}
		}
	}

	return sb.String()
}

func display(id, label string) string {
	if label == "" {
		return id
	}
	return label
}

// escape swaps double quotes for single quotes so labels stay inside Mermaid strings.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
