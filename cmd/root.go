// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity-grid/internal/config"
	"github.com/naka-gawa/github-activity-grid/internal/gateway"
	"github.com/naka-gawa/github-activity-grid/internal/usecase"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "activity-grid",
		Short: "A CLI tool to chart GitHub activity as day-by-category grids.",
		Long: `activity-grid fetches public GitHub activity for users and organizations,
buckets it into a category x day-of-month grid, and prints the grid as JSON
or renders it as an SVG block graph. The repos command lays repositories out
on a hexagon grid colored by stargazers.`,
		SilenceUsage: true,
	}
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (auto, console, json); overrides ACTIVITY_GRID_LOG_FORMAT")

	rootCmd.AddCommand(newGridCmd(), newReposCmd())
	return rootCmd
}

// Execute builds the command tree and runs it.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles what every subcommand needs.
type app struct {
	env     *config.Env
	logger  *slog.Logger
	service *usecase.Service
}

// setup reads the environment, builds the logger, and injects dependencies.
func setup(cmd *cobra.Command) (*app, error) {
	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("log-format")
	if format == "" {
		format = env.LogFormat
	}
	logger, err := config.NewLogger(verbose, format, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		Token:      env.GitHubToken,
		APIURL:     env.APIURL,
		GraphQLURL: env.GraphQLURL,
	}, logger)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub gateway")
	}

	return &app{
		env:     env,
		logger:  logger,
		service: usecase.NewService(githubGateway, logger),
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, goerr.Wrap(err, "unknown time zone", goerr.V("tz", name))
	}
	return loc, nil
}
