package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"param-binder/bean"
	"param-binder/binding"
	"param-binder/diagnostic"
	"param-binder/typegraph"
)

var errBindFailed = errors.New("some parameters were not bound")

type bindOptions struct {
	root   string
	format string
	dump   bool
	strict bool
}

type bindOutput struct {
	Root    string                  `json:"root" yaml:"root"`
	Values  any                     `json:"values" yaml:"values"`
	Skipped []string                `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Errors  []diagnostic.Diagnostic `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (c *cli) bindCommand() *cobra.Command {
	opts := bindOptions{}

	cmd := &cobra.Command{
		Use:   "bind QUERY...",
		Short: "Bind query strings onto a new root bean",
		Example: `  param-binder bind -s examples/generics.yaml --root GenericsBindingTests2 \
    'list[0]=true&list[1]=yes&map[10]=1/1/2010'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBind(cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "root class, overrides the config")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "dump the bean graph with go-spew")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error when any parameter failed")

	return cmd
}

func (c *cli) runBind(out io.Writer, opts bindOptions, queries []string) error {
	root := opts.root
	if root == "" {
		root = c.cfg.Root
	}

	if root == "" {
		return errors.New("no root class given")
	}

	values := url.Values{}

	for _, q := range queries {
		parsed, err := url.ParseQuery(strings.TrimPrefix(q, "?"))
		if err != nil {
			return fmt.Errorf("invalid query %q: %w", q, err)
		}

		for k, vs := range parsed {
			values[k] = append(values[k], vs...)
		}
	}

	graph, err := typegraph.Load(c.cfg.Schema)
	if err != nil {
		return err
	}

	bcfg, err := c.cfg.Binding.BinderConfig(c.logger)
	if err != nil {
		return err
	}

	binder, err := binding.New(graph, bcfg)
	if err != nil {
		return err
	}

	res, err := binder.BindNew(root, values)
	if err != nil {
		return err
	}

	if opts.dump {
		spew.Fdump(out, res.Root)
	}

	if err := render(out, opts.format, bindOutput{
		Root:    res.Root.Type().String(),
		Values:  bean.Export(res.Root),
		Skipped: res.Skipped,
		Errors:  res.Diagnostics.Errors,
	}); err != nil {
		return err
	}

	if opts.strict && !res.OK() {
		return fmt.Errorf("%w: %w", errBindFailed, res.Err())
	}

	return nil
}

func render(out io.Writer, format string, v any) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return err
		}

		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
