package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
	"github.com/CatcatWinter/calendar-planner/internal/database"
	"github.com/CatcatWinter/calendar-planner/internal/logger"
	"github.com/CatcatWinter/calendar-planner/internal/planner"
)

type planFlags struct {
	title       string
	description string
	start       string
	end         string
	hours       float64
	intensity   int
	format      string
	output      string
	dbPath      string
}

func planCmd(opts *options) *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a phased plan between two dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request(calendar.NewSolarDate(opts.now()))
			if err != nil {
				return err
			}
			format, err := planner.ParseFormat(f.format)
			if err != nil {
				return err
			}

			plan, err := planner.Generate(req)
			if err != nil {
				return err
			}
			logger.Debug(cmd.Context(), "plan generated",
				"id", plan.ID,
				"category", string(plan.Category),
				"tasks", plan.TotalTasks(),
			)

			if f.dbPath != "" {
				if err := savePlan(cmd.Context(), f.dbPath, plan, opts); err != nil {
					return err
				}
			}

			out, err := render(plan, format)
			if err != nil {
				return err
			}
			if f.output != "" {
				if err := os.WriteFile(f.output, out, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", f.output, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", f.output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&f.title, "title", "t", "", "goal title (required)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "goal description")
	cmd.Flags().StringVar(&f.start, "start", "", "start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date YYYY-MM-DD (required)")
	cmd.Flags().Float64Var(&f.hours, "hours", planner.DefaultHoursPerDay, "hours per day")
	cmd.Flags().IntVar(&f.intensity, "intensity", planner.DefaultIntensity, "intensity 1-5")
	cmd.Flags().StringVarP(&f.format, "format", "f", "markdown", "output format: markdown, yaml, json")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "also save the plan to this SQLite database")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// request builds the planner request; an empty --start means today.
func (f planFlags) request(today calendar.SolarDate) (planner.Request, error) {
	start := today
	if f.start != "" {
		d, err := calendar.ParseDate(f.start)
		if err != nil {
			return planner.Request{}, fmt.Errorf("invalid --start %q, use YYYY-MM-DD", f.start)
		}
		start = d
	}
	end, err := calendar.ParseDate(f.end)
	if err != nil {
		return planner.Request{}, fmt.Errorf("invalid --end %q, use YYYY-MM-DD", f.end)
	}
	return planner.Request{
		Title:       f.title,
		Description: f.description,
		Start:       start,
		End:         end,
		HoursPerDay: f.hours,
		Intensity:   f.intensity,
	}, nil
}

func render(plan *planner.Plan, format planner.Format) ([]byte, error) {
	switch format {
	case planner.FormatMarkdown:
		return []byte(planner.ExportMarkdown(plan)), nil
	case planner.FormatYAML:
		return planner.ExportYAML(plan)
	case planner.FormatJSON:
		var buf bytes.Buffer
		if err := printJSON(&buf, plan); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New("unsupported format")
}

func savePlan(ctx context.Context, path string, plan *planner.Plan, opts *options) error {
	db, err := database.Open(database.DefaultConfig(path), opts.log)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := db.SavePlan(ctx, plan); err != nil {
		return err
	}
	logger.Info(ctx, "plan saved", "id", plan.ID, "db", path)
	return nil
}
