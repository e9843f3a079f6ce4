package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"frtypo/internal/site"
)

var cssCmd = &cobra.Command{
	Use:   "css [--out DIR] [--extra-css LIST]",
	Short: "Generate the dash bullet and justification stylesheets",
	Long: `Print the stylesheets enabled by the configuration, or write them under
--out. With --extra-css, print the site's extra_css list with the generated
references merged in.`,
	Args: cobra.NoArgs,
	RunE: runCSS,
}

func init() {
	cssCmd.Flags().String("out", "", "site directory to write css/*.css into")
	cssCmd.Flags().String("extra-css", "", "comma-separated extra_css list to merge into")
}

func runCSS(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	extra, err := cmd.Flags().GetString("extra-css")
	if err != nil {
		return fmt.Errorf("failed to get extra-css flag: %w", err)
	}
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cmd.Flags().Changed("extra-css") {
		var existing []string
		for _, item := range strings.Split(extra, ",") {
			if item = strings.TrimSpace(item); item != "" {
				existing = append(existing, item)
			}
		}
		for _, item := range site.MergeExtraCSS(existing, cfg) {
			fmt.Fprintln(out, item)
		}
	}

	if outDir == "" {
		if !cmd.Flags().Changed("extra-css") {
			fmt.Fprint(out, site.Stylesheet(cfg))
		}
		return nil
	}
	written, err := site.WriteStylesheet(outDir, cfg)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		for _, path := range written {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
		}
	}
	return nil
}
