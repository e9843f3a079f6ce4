package main

import (
	"github.com/spf13/cobra"

	"frtypo/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.md|directory]...",
	Short: "Report typographic issues without modifying documents",
	Long: `Run every enabled rule in report mode: categories configured as fix are
reported as warnings and no document is written. Exits with status 1 when
anything was reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDocuments(cmd, args, runCheck, config.Config.ReportOnly)
	},
}

func init() {
	addRunFlags(checkCmd)
}
