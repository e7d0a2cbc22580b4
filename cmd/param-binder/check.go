package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"param-binder/internal/resolve"
	"param-binder/typegraph"
)

var errInvalidSchema = errors.New("schema has errors")

func (c *cli) checkCommand() *cobra.Command {
	var concrete string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a schema",
		Long: "Validate a schema file and report problems. With --resolve, print every\n" +
			"property of a class with its type parameters substituted.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.OutOrStdout(), concrete)
		},
	}

	cmd.Flags().StringVar(&concrete, "resolve", "", "class type to resolve, e.g. GenericsBindingTests2 or Box[int]")

	return cmd
}

func (c *cli) runCheck(out io.Writer, concrete string) error {
	if c.cfg.Schema == "" {
		return errors.New("no schema given")
	}

	sf, err := typegraph.LoadFile(c.cfg.Schema)
	if err != nil {
		return err
	}

	graph, diags := typegraph.Build(sf)

	for _, w := range diags.Warnings {
		fmt.Fprintln(out, "warning:", w)
	}

	for _, e := range diags.Errors {
		fmt.Fprintln(out, "error:", e)
	}

	if diags.HasErrors() {
		return fmt.Errorf("%s: %w (%d)", c.cfg.Schema, errInvalidSchema, len(diags.Errors))
	}

	c.logger.Debug("schema loaded", zap.String("schema", c.cfg.Schema), zap.Int("classes", len(graph.Classes())))
	fmt.Fprintf(out, "%s: %d classes OK\n", c.cfg.Schema, len(graph.Classes()))

	if concrete == "" {
		return nil
	}

	return printResolved(out, graph, concrete)
}

func printResolved(out io.Writer, graph *typegraph.Graph, concrete string) error {
	t, err := typegraph.ParseType(concrete)
	if err != nil {
		return err
	}

	if t.Kind != typegraph.KindClass || graph.Class(t.Name) == nil {
		return fmt.Errorf("%s is not a class of the schema", concrete)
	}

	r := resolve.NewResolver(graph)

	chain, err := r.Chain(t)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(chain))
	for _, l := range chain {
		names = append(names, l.Class.Name)
	}

	fmt.Fprintf(out, "%s\n", strings.Join(names, " -> "))

	for _, name := range graph.PropertyNames(t.Name) {
		p, owner, _ := graph.FindProperty(t.Name, name)

		resolved, err := r.Resolve(t, owner.Name, p.Type)
		if err != nil {
			fmt.Fprintf(out, "  %s: %s (%v)\n", name, p.Type, err)
			continue
		}

		fmt.Fprintf(out, "  %s: %s\n", name, resolved)
	}

	return nil
}
