package graph

import (
	"fmt"
	"strings"

	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
	"github.com/cgspeck/gen-systemd-svcs/pkg/resolver"
)

// GenerateMermaid produces a Mermaid flowchart of the resolved ordering
// dependencies of every instance. It applies semantic styling:
// - Generated unit: [Rectangle]
// - Unit referenced but not generated here: ((Circle))
// - Requires: solid arrow; After and Wants: dotted arrows.
func GenerateMermaid(def *model.DefinitionFile) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	generated := make(map[string]bool)
	for _, inst := range def.Instances() {
		generated[inst.FileName()] = true
	}

	var external []string
	seenExternal := make(map[string]bool)
	var edges []string

	addEdge := func(from, to, kind string) {
		if !generated[to] && !seenExternal[to] {
			seenExternal[to] = true
			external = append(external, to)
		}
		arrow := fmt.Sprintf("-. \"%s\" .->", kind)
		if kind == "requires" {
			arrow = fmt.Sprintf("-- \"%s\" -->", kind)
		}
		edges = append(edges, fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(from), arrow, sanitizeMermaidID(to)))
	}

	for _, group := range def.Groups {
		for _, inst := range group.Instances {
			from := inst.FileName()
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeMermaidID(from), from))

			d := resolver.Merge(inst, group.Template)
			for _, to := range d.Requires {
				addEdge(from, to, "requires")
			}
			for _, to := range d.After {
				addEdge(from, to, "after")
			}
			for _, to := range d.Wants {
				addEdge(from, to, "wants")
			}
		}
	}

	for _, name := range external {
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", sanitizeMermaidID(name), name))
	}
	for _, e := range edges {
		sb.WriteString(e)
	}

	if len(external) > 0 {
		sb.WriteString("\n    %% External units\n")
		sb.WriteString("    classDef external fill:#eeeeee,stroke:#9e9e9e,color:#000;\n")
		for _, name := range external {
			sb.WriteString(fmt.Sprintf("    class %s external;\n", sanitizeMermaidID(name)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		"@", "_",
		":", "_",
	).Replace(id)
}
