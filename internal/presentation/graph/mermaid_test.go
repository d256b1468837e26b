package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgspeck/gen-systemd-svcs/internal/presentation/graph"
	"github.com/cgspeck/gen-systemd-svcs/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	b := dsl.New()
	b.Template().
		Requires("network-online.target").
		Instance("db", "Database").
		Instance("web", "Web").
		After("db.service").
		Wants("cache@1.service")

	def, err := b.Build()
	require.NoError(t, err)

	out := graph.GenerateMermaid(def)

	tests := []struct {
		name     string
		contains []string
	}{
		{
			name:     "Header",
			contains: []string{"graph TD\n"},
		},
		{
			name:     "Generated Units Are Rectangles",
			contains: []string{`db_service["db.service"]`, `web_service["web.service"]`},
		},
		{
			name:     "External Units Are Circles",
			contains: []string{`network_online_target(("network-online.target"))`, `cache_1_service(("cache@1.service"))`},
		},
		{
			name: "Edge Kinds",
			contains: []string{
				`web_service -- "requires" --> network_online_target`,
				`web_service -. "after" .-> db_service`,
				`web_service -. "wants" .-> cache_1_service`,
			},
		},
		{
			name:     "External Styling",
			contains: []string{"class network_online_target external;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}

	assert.NotContains(t, out, `db_service(("db.service"))`, "generated units are not external")
	assert.Equal(t, 1, strings.Count(out, `network_online_target((`), "external nodes declared once")
}
