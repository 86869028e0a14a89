package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"centrum/internal/compose"
	"centrum/internal/config"
	"centrum/internal/meta"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the template and metadata configuration",
	Long: `Check that the HTML template contains each placeholder marker exactly
once and that the static-page metadata table has a complete entry for every
page. These are configuration errors and should fail deploys, not requests.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var problems []string

	tpl, err := compose.Load(cfg.Render.TemplatePath)
	if err != nil {
		problems = append(problems, err.Error())
	} else {
		for _, m := range tpl.MissingMarkers() {
			problems = append(problems, fmt.Sprintf("template %s: marker %s is missing", cfg.Render.TemplatePath, m))
		}
		for _, m := range []string{compose.MarkerBody, compose.MarkerMeta, compose.MarkerState} {
			if n := strings.Count(tpl.HTML(), m); n > 1 {
				problems = append(problems, fmt.Sprintf("template %s: marker %s occurs %d times, want exactly once", cfg.Render.TemplatePath, m, n))
			}
		}
	}

	table, err := meta.LoadTable(cfg.Render.MetaTablePath)
	if err != nil {
		problems = append(problems, err.Error())
	} else if err := table.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println("FAIL:", p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	}

	fmt.Println("OK: template markers and metadata table are valid")
	return nil
}
