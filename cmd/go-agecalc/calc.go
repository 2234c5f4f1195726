package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-agecalc/internal/config"
	"github.com/tartampluch/go-agecalc/internal/engine"
	"github.com/tartampluch/go-agecalc/internal/insight"
)

// fixedClock pins "today" for --today.
type fixedClock struct {
	day engine.Date
}

func (c fixedClock) Now() time.Time {
	return c.day.Time(time.Local).Add(12 * time.Hour)
}

// calcReport is the --json output of the calc command.
type calcReport struct {
	BirthDate string `json:"birthDate"`
	Today     string `json:"today"`
	engine.AgeResult

	Insights     *insight.Insights `json:"insights,omitempty"`
	InsightError string            `json:"insightError,omitempty"`
}

func newCalcCmd(c *cli) *cobra.Command {
	var (
		today        string
		asJSON       bool
		withInsights bool
	)

	cmd := &cobra.Command{
		Use:   config.CmdUseCalc,
		Short: config.CmdShortCalc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := engine.NewCalculator()
			if today != "" {
				d, err := engine.ParseDate(today)
				if err != nil {
					return fmt.Errorf("%s: %w", config.ErrInvalidInput, err)
				}
				calc.Clock = fixedClock{day: d}
			}

			birth, err := engine.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrInvalidInput, err)
			}
			now := calc.Today()
			res, ok := engine.Age(birth, now)
			if !ok {
				return fmt.Errorf("%s: %s", config.ErrInvalidInput, config.ErrFutureBirth)
			}

			report := calcReport{
				BirthDate: birth.String(),
				Today:     now.String(),
				AgeResult: res,
			}

			if withInsights {
				ins, err := c.fetchInsights(cmd, birth.Year, res.Years)
				if err != nil {
					// Insights are optional; the age is still printed.
					fmt.Fprintf(cmd.ErrOrStderr(), config.MsgInsightWarning, err)
					report.InsightError = err.Error()
				} else {
					report.Insights = &ins
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			_, err = fmt.Fprintln(out, renderReport(report))
			return err
		},
	}

	cmd.Flags().StringVar(&today, config.FlagToday, "", config.FlagDescToday)
	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	cmd.Flags().BoolVar(&withInsights, config.FlagInsights, false, config.FlagDescInsights)
	return cmd
}

// fetchInsights runs a single bounded request against the configured provider.
func (c *cli) fetchInsights(cmd *cobra.Command, year, age int) (insight.Insights, error) {
	f := c.buildFetcher(cmd)
	if f == nil {
		return insight.Insights{}, insight.ErrMissingCredential
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), c.env.InsightTimeout)
	defer cancel()
	return f.FetchInsights(ctx, year, age)
}
