package cli

import (
	"fmt"
	"os"

	gensvc "github.com/cgspeck/gen-systemd-svcs"
	"github.com/cgspeck/gen-systemd-svcs/internal/presentation/graph"
	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
)

// Validate decodes the definition and checks names without writing anything.
func Validate(opts CommonOptions) (*model.DefinitionFile, error) {
	opts = withDefaults(opts, os.Stdout, os.Stderr)
	logger, err := createLogger(opts)
	if err != nil {
		return nil, err
	}
	return loadDefinition(opts, logger)
}

// Render prints the descriptor of a single instance to Stdout.
func Render(opts CommonOptions, name string) error {
	opts = withDefaults(opts, os.Stdout, os.Stderr)
	def, err := Validate(opts)
	if err != nil {
		return err
	}
	out, err := gensvc.Render(def, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(opts.Stdout, out)
	return err
}

// Graph prints the resolved dependency graph as Mermaid to Stdout.
func Graph(opts CommonOptions) error {
	opts = withDefaults(opts, os.Stdout, os.Stderr)
	def, err := Validate(opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(opts.Stdout, graph.GenerateMermaid(def))
	return err
}
