package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"opforge/internal/diagfmt"
	"opforge/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <opforge.toml>",
	Short: "Check a manifest's declarations against the rule tables",
	Long:  `Check loads a manifest and verifies that every attached family or group is satisfied by the declared primitives, reporting definition-time diagnostics`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	outcome, err := driver.Run(context.Background(), args[0], driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	})
	if err != nil {
		return err
	}
	bag := outcome.Merged(maxDiagnostics)

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		diagfmt.Pretty(out, bag, diagfmt.PrettyOpts{
			Color:     useColor(cmd),
			ShowNotes: withNotes,
		})
		if !quiet {
			fmt.Fprintln(out, bag.Summary())
		}
	case "json":
		if err := diagfmt.JSON(out, bag, diagfmt.JSONOpts{IncludeNotes: withNotes}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	failed := bag.HasErrors()
	if warningsAsErrors && bag.HasWarnings() {
		failed = true
	}
	if noWarnings {
		failed = bag.HasErrors()
	}
	if failed {
		cmd.SilenceUsage = true
		return fmt.Errorf("check failed: %s", bag.Summary())
	}
	return nil
}
