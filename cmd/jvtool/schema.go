package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go.jvlang.dev/jv/jvschema"
)

var errWriteOutput = errors.New("write output")

func newSchemaCmd() *cobra.Command {
	cfg := jvschema.NewConfig()

	cmd := &cobra.Command{
		Use:   "schema [flags] <file.yaml|file.json> [file2 ...]",
		Short: "Infer JSON Schema (draft-07) from JSON or YAML documents",
		Long: `schema decodes one or more JSON or YAML documents and infers a JSON Schema
(draft-07) describing their structure. When multiple documents are given,
their schemas are merged with union/widen semantics.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSchema(cfg, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	if err := cfg.RegisterCompletions(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	return cmd
}

func runSchema(cfg *jvschema.Config, args []string) error {
	gen, err := cfg.NewGenerator()
	if err != nil {
		return err
	}

	var inputs [][]byte

	for _, arg := range args {
		var data []byte

		if arg == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", jvschema.ErrInvalidInput, err)
		}

		inputs = append(inputs, data)
	}

	schema, err := gen.Generate(inputs...)
	if err != nil {
		return err
	}

	indent := strings.Repeat(" ", max(cfg.Indent, 0))

	out, err := json.MarshalIndent(schema, "", indent)
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}
	out = append(out, '\n')

	if cfg.Output == "" || cfg.Output == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = os.WriteFile(cfg.Output, out, 0o644)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteOutput, err)
	}

	return nil
}
