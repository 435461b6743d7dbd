package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-evo/internal/telemetry"
)

var flagReportOut string

var reportCmd = &cobra.Command{
	Use:   "report <history.csv>",
	Short: "Analyze a training history CSV",
	Long: `Read the per-generation CSV written by "dino train --csv" and print the
learning report: final fitness, per-generation improvement of the best
fitness, and whether the population still shows diversity.`,
	Args: cobra.ExactArgs(1),
	Run:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Write the report to a file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) {
	history, err := telemetry.ReadHistory(args[0])
	if err != nil {
		exitErr("reading %s: %v", args[0], err)
	}
	if len(history) == 0 {
		exitErr("%s has no generations", args[0])
	}

	report := telemetry.BuildReport(history)
	if flagReportOut != "" {
		if err := writeReport(flagReportOut, report); err != nil {
			exitErr("writing report: %v", err)
		}
		return
	}
	if _, err := report.WriteTo(cmd.OutOrStdout()); err != nil {
		exitErr("writing report: %v", err)
	}
}
