package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"frtypo/internal/config"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.md|directory]...",
	Short: "Apply typographic corrections in place",
	Long: `Apply the configured rules and rewrite documents that received fixes.
File mode, BOM and CRLF line endings are preserved. Exits with status 1 only
when warnings remain.`,
	RunE: runFixCommand,
}

func init() {
	addRunFlags(fixCmd)
	fixCmd.Flags().Bool("promote", false, "apply rules configured as warn as well")
}

func runFixCommand(cmd *cobra.Command, args []string) error {
	promote, err := cmd.Flags().GetBool("promote")
	if err != nil {
		return fmt.Errorf("failed to get promote flag: %w", err)
	}
	adjust := func(cfg config.Config) config.Config {
		if promote {
			return cfg.Promote()
		}
		return cfg
	}
	return runDocuments(cmd, args, runFix, adjust)
}
