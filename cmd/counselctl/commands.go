package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studyabroad-workers/internal/catalog"
	"studyabroad-workers/internal/counsellor"
	"studyabroad-workers/internal/models"
	"studyabroad-workers/internal/scoring"
	"studyabroad-workers/pkg/registry"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Score a profile and list its strengths and gaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.loadProfile()
			if err != nil {
				return err
			}
			analysis := scoring.AnalyzeProfile(p)
			return opts.print(cmd, map[string]interface{}{
				"analysis":        analysis,
				"profileStrength": scoring.ProfileStrength(p),
				"gapReport":       counsellor.GapReport(analysis),
			})
		},
	}
}

func newRecommendCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Recommend Dream, Target and Safe universities for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.loadProfile()
			if err != nil {
				return err
			}
			unis, err := opts.universities(cmd)
			if err != nil {
				return err
			}
			return opts.print(cmd, scoring.RecommendDetailed(unis, p))
		},
	}
}

func newExplainCmd(opts *options) *cobra.Command {
	var universityID string
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain how one university fits a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.loadProfile()
			if err != nil {
				return err
			}
			unis, err := opts.universities(cmd)
			if err != nil {
				return err
			}
			u, err := catalog.Find(unis, universityID)
			if err != nil {
				return err
			}
			return opts.print(cmd, map[string]interface{}{
				"university": scoring.Rank(u, p),
				"affordable": scoring.TuitionFloor(u.TuitionFee) <= scoring.BudgetCeiling(p.BudgetRange),
			})
		},
	}
	cmd.Flags().StringVar(&universityID, "university", "", "university id")
	_ = cmd.MarkFlagRequired("university")
	return cmd
}

type categorized struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Category models.Category `json:"category" yaml:"category"`
}

func newCategorizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize",
		Short: "Label every catalog university as Dream, Target or Safe for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.loadProfile()
			if err != nil {
				return err
			}
			unis, err := opts.universities(cmd)
			if err != nil {
				return err
			}
			out := make([]categorized, 0, len(unis))
			for _, u := range unis {
				out = append(out, categorized{ID: u.ID, Name: u.Name, Category: scoring.CategorizeForProfile(u, p)})
			}
			return opts.print(cmd, out)
		},
	}
}

func newFilterCmd(opts *options) *cobra.Command {
	var (
		f         scoring.FilterOptions
		countries string
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the catalog by budget, country and field",
		RunE: func(cmd *cobra.Command, args []string) error {
			if countries != "" {
				f.PreferredCountries = strings.Split(countries, ",")
			}
			if opts.profileFile != "" {
				p, err := opts.loadProfile()
				if err != nil {
					return err
				}
				f.Profile = &p
			}
			unis, err := opts.universities(cmd)
			if err != nil {
				return err
			}
			return opts.print(cmd, scoring.FilterUniversities(unis, f))
		},
	}
	cmd.Flags().StringVar(&f.BudgetRange, "budget", "", `budget range, e.g. "$30,000 - $50,000"`)
	cmd.Flags().StringVar(&countries, "countries", "", "comma-separated country list")
	cmd.Flags().StringVar(&f.FieldOfStudy, "field", "", "field of study")
	cmd.Flags().BoolVar(&f.OnlyAffordable, "affordable", false, "drop universities whose tuition starts above the budget")
	cmd.Flags().BoolVar(&f.CheckIELTS, "check-ielts", false, "drop universities the profile's IELTS score is too low for")
	return cmd
}

func (o *options) universities(cmd *cobra.Command) ([]models.University, error) {
	src, err := o.source()
	if err != nil {
		return nil, err
	}
	return src.List(cmd.Context())
}

func newActivitiesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "activities [task-type]",
		Short: "List the BPMN service tasks the worker manager serves",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a, ok := registry.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown task type %q", args[0])
				}
				return opts.print(cmd, a)
			}
			return opts.print(cmd, registry.Activities())
		},
	}
}
