package cmd

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
	"github.com/naka-gawa/github-activity-grid/internal/render"
	"github.com/naka-gawa/github-activity-grid/internal/scale"
)

func newReposCmd() *cobra.Command {
	reposCmd := &cobra.Command{
		Use:   "repos",
		Short: "Lays a user's repositories out on a hexagon grid",
		Long:  `Fetches a user's public repositories, places them on an axial hexagon grid in rows of ten, and classifies each by stargazer count.`,
		RunE:  runRepos,
	}
	reposCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	_ = reposCmd.MarkFlagRequired("user")
	reposCmd.Flags().String("scale", "fixed", "Star scale: fixed (uses --thresholds) or quantile (derived from the repositories' stars)")
	reposCmd.Flags().String("thresholds", "0,10,30,50", "Comma separated star cut points, ascending")
	reposCmd.Flags().String("format", "json", "Output format: json or svg")
	reposCmd.Flags().Int("width", render.DefaultLayout().Width, "SVG width in pixels")
	reposCmd.Flags().Int("height", 600, "SVG height in pixels")
	return reposCmd
}

func parseThresholds(s string) (scale.Threshold, error) {
	var cuts []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, goerr.Wrap(domain.ErrInvalidArgument, "invalid threshold", goerr.V("value", part))
		}
		cuts = append(cuts, v)
	}
	return scale.NewThreshold(cuts...)
}

func runRepos(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()

	user, _ := flags.GetString("user")
	scaleName, _ := flags.GetString("scale")
	format, _ := flags.GetString("format")
	if format != "json" && format != "svg" {
		return goerr.Wrap(domain.ErrInvalidArgument, "unknown output format", goerr.V("format", format))
	}

	var cells []domain.HexCell
	switch scaleName {
	case "fixed":
		thresholdStr, _ := flags.GetString("thresholds")
		threshold, err := parseThresholds(thresholdStr)
		if err != nil {
			return err
		}
		if threshold.Levels() > len(render.StarPalette) {
			return goerr.Wrap(domain.ErrInvalidArgument, "too many thresholds for the star palette",
				goerr.V("levels", threshold.Levels()), goerr.V("colors", len(render.StarPalette)))
		}
		if cells, err = rt.service.HexGrid(cmd.Context(), user, threshold); err != nil {
			return err
		}
	case "quantile":
		if cells, err = rt.service.QuantileHexGrid(cmd.Context(), user, len(render.StarPalette)); err != nil {
			return err
		}
	default:
		return goerr.Wrap(domain.ErrInvalidArgument, "unknown scale", goerr.V("scale", scaleName))
	}

	out := cmd.OutOrStdout()
	if format == "svg" {
		layout := render.DefaultLayout()
		layout.Width, _ = flags.GetInt("width")
		height, _ := flags.GetInt("height")
		svg, err := render.HexGrid(cells, render.StarPalette, layout, height)
		if err != nil {
			return err
		}
		_, err = out.Write(append(svg, '\n'))
		return err
	}

	jsonData, err := json.MarshalIndent(cells, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal results to JSON")
	}
	_, err = out.Write(append(jsonData, '\n'))
	return err
}
