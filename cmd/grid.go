package cmd

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity-grid/internal/config"
	"github.com/naka-gawa/github-activity-grid/internal/domain"
	"github.com/naka-gawa/github-activity-grid/internal/render"
	"github.com/naka-gawa/github-activity-grid/internal/usecase"
)

func newGridCmd() *cobra.Command {
	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "Aggregates GitHub activity into a category x day grid",
		Long: `Fetches activity for each --user and --org, counts it per category and day of
the target month, and prints one grid per subject as JSON, or a single SVG block
graph with --format svg. Subjects whose fetch fails are reported with an empty grid.`,
		RunE: runGrid,
	}

	flags := gridCmd.Flags()
	flags.StringArrayP("user", "u", nil, "GitHub user name (repeatable)")
	flags.StringArrayP("org", "o", nil, "GitHub organization name (repeatable)")
	flags.String("source", string(usecase.SourceEvents), "Data source: events or contributions (contributions needs GITHUB_TOKEN)")
	flags.Int("month", 0, "Target month 1-12 (default: current month)")
	flags.Int("year", 0, "Target year (default: current year)")
	flags.Int("period", 0, "Number of day buckets (default: days in the month)")
	flags.String("ranking", "", "YAML file with the category ranking (default: push > issue comment > review > other)")
	flags.String("fallback", "", "Policy for unmatched event types: drop or lowest (overrides the ranking file)")
	flags.String("tz", "", "Time zone used to assign events to days (default: ACTIVITY_GRID_TZ or UTC)")
	flags.String("format", "json", "Output format: json or svg")
	flags.Int("width", render.DefaultLayout().Width, "SVG width in pixels")
	flags.Bool("shade", false, "Shade SVG blocks by the quantile of their count")
	return gridCmd
}

func runGrid(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	users, _ := flags.GetStringArray("user")
	orgs, _ := flags.GetStringArray("org")
	var subjects []usecase.Subject
	for _, u := range users {
		subjects = append(subjects, usecase.Subject{Kind: usecase.SubjectUser, Name: u})
	}
	for _, o := range orgs {
		subjects = append(subjects, usecase.Subject{Kind: usecase.SubjectOrg, Name: o})
	}

	sourceStr, _ := flags.GetString("source")
	source, err := usecase.ParseSource(sourceStr)
	if err != nil {
		return err
	}

	tz, _ := flags.GetString("tz")
	if tz == "" {
		tz = rt.env.TimeZone
	}
	loc, err := loadLocation(tz)
	if err != nil {
		return err
	}

	now := time.Now().In(loc)
	month, _ := flags.GetInt("month")
	if !flags.Changed("month") {
		month = int(now.Month())
	} else if month < 1 || month > 12 {
		return goerr.Wrap(domain.ErrInvalidArgument, "month must be between 1 and 12", goerr.V("month", month))
	}
	year, _ := flags.GetInt("year")
	if !flags.Changed("year") {
		year = now.Year()
	} else if year <= 0 {
		return goerr.Wrap(domain.ErrInvalidArgument, "year must be positive", goerr.V("year", year))
	}
	periodLength, _ := flags.GetInt("period")
	if flags.Changed("period") && periodLength <= 0 {
		return goerr.Wrap(domain.ErrInvalidArgument, "period must be positive", goerr.V("period", periodLength))
	}
	period := usecase.Period{Year: year, Month: time.Month(month), Length: periodLength, Location: loc}

	ranking := domain.DefaultRanking()
	if path, _ := flags.GetString("ranking"); path != "" {
		if ranking, err = config.LoadRankingFromFile(path); err != nil {
			return err
		}
	}
	if fallback, _ := flags.GetString("fallback"); fallback != "" {
		if ranking.Fallback, err = domain.ParseFallback(fallback); err != nil {
			return err
		}
	}

	format, _ := flags.GetString("format")
	if format != "json" && format != "svg" {
		return goerr.Wrap(domain.ErrInvalidArgument, "unknown output format", goerr.V("format", format))
	}
	if format == "svg" && len(subjects) != 1 {
		return goerr.Wrap(domain.ErrInvalidArgument, "svg output needs exactly one user or organization")
	}

	results, err := rt.service.Grids(cmd.Context(), subjects, source, period, ranking)
	if err != nil {
		return goerr.Wrap(err, "failed to aggregate activity")
	}

	out := cmd.OutOrStdout()
	if format == "svg" {
		layout := render.DefaultLayout()
		layout.Width, _ = flags.GetInt("width")
		layout.Shade, _ = flags.GetBool("shade")
		svg, err := render.BlockGraph(results[0].Grid, layout)
		if err != nil {
			return err
		}
		_, err = out.Write(append(svg, '\n'))
		return err
	}

	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal results to JSON")
	}
	_, err = out.Write(append(jsonData, '\n'))
	return err
}
