package jvschema

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for schema generation configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type Flags struct {
	Output      string
	Indent      string
	Title       string
	Description string
	ID          string
	Strict      string
}

// Config holds CLI flag values for schema generation configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewGenerator] to create a [Generator].
type Config struct {
	Flags       Flags
	Output      string
	Title       string
	Description string
	ID          string
	Indent      int
	Strict      bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output:      "output",
		Indent:      "indent",
		Title:       "title",
		Description: "description",
		ID:          "id",
		Strict:      "strict",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds schema generation flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.IntVar(&c.Indent, c.Flags.Indent, 2,
		"JSON indentation spaces")
	flags.StringVar(&c.Title, c.Flags.Title, "",
		"schema title field")
	flags.StringVar(&c.Description, c.Flags.Description, "",
		"schema description field")
	flags.StringVar(&c.ID, c.Flags.ID, "",
		"schema $id field")
	flags.BoolVar(&c.Strict, c.Flags.Strict, false,
		"set additionalProperties: false on objects")
}

// RegisterCompletions registers shell completions for schema generation flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Indent, c.Flags.Title, c.Flags.Description, c.Flags.ID} {
		if err := cmd.RegisterFlagCompletionFunc(flag, noFileComp); err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// NewGenerator creates a [Generator] using this [Config].
func (c *Config) NewGenerator() (*Generator, error) {
	var opts []Option

	if c.Title != "" {
		opts = append(opts, WithTitle(c.Title))
	}
	if c.Description != "" {
		opts = append(opts, WithDescription(c.Description))
	}
	if c.ID != "" {
		opts = append(opts, WithID(c.ID))
	}
	if c.Strict {
		opts = append(opts, WithStrict(true))
	}

	return NewGenerator(opts...), nil
}
