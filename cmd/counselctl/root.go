package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"studyabroad-workers/internal/catalog"
	"studyabroad-workers/internal/models"
)

type options struct {
	profileFile string
	catalogFile string
	output      string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "counselctl",
		Short:         "Analyze study-abroad profiles and match universities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&opts.profileFile, "file", "f", "", "profile file (YAML or JSON)")
	root.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "university catalog file (YAML or JSON); built-in catalog when empty")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newRecommendCmd(opts),
		newExplainCmd(opts),
		newCategorizeCmd(opts),
		newFilterCmd(opts),
		newActivitiesCmd(opts),
	)
	return root
}

// loadProfile reads the profile named by --file. yaml.v3 also accepts JSON.
func (o *options) loadProfile() (models.UserProfile, error) {
	var p models.UserProfile
	if o.profileFile == "" {
		return p, fmt.Errorf("--file is required")
	}
	raw, err := os.ReadFile(o.profileFile)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", o.profileFile, err)
	}
	return p, nil
}

func (o *options) source() (catalog.Source, error) {
	if o.catalogFile == "" {
		return catalog.NewStatic(catalog.Default()), nil
	}
	unis, err := catalog.LoadFile(o.catalogFile)
	if err != nil {
		return nil, err
	}
	return catalog.NewStatic(unis), nil
}

func (o *options) print(cmd *cobra.Command, v interface{}) error {
	w := cmd.OutOrStdout()
	switch o.output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}
