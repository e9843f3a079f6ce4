package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"frtypo/internal/lexicon"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Build and query the diacritics lexicon",
}

var lexiconBuildCmd = &cobra.Command{
	Use:   "build --words FILE -o FILE",
	Short: "Build a compressed lexicon artifact from a word list",
	Long: `Read one accented word per line ('#' starts a comment) and write the
xz-compressed msgpack artifact used for diacritics restoration.`,
	Args: cobra.NoArgs,
	RunE: runLexiconBuild,
}

var lexiconLookupCmd = &cobra.Command{
	Use:   "lookup WORD...",
	Short: "Show how words would be restored",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLexiconLookup,
}

func init() {
	lexiconBuildCmd.Flags().String("words", "", "word list, one word per line")
	lexiconBuildCmd.Flags().StringP("output", "o", "", "artifact path")
	_ = lexiconBuildCmd.MarkFlagRequired("words")
	_ = lexiconBuildCmd.MarkFlagRequired("output")

	lexiconLookupCmd.Flags().String("lexicon", "", "artifact path (default: configured lexicon or built-in list)")

	lexiconCmd.AddCommand(lexiconBuildCmd)
	lexiconCmd.AddCommand(lexiconLookupCmd)
}

func runLexiconBuild(cmd *cobra.Command, args []string) error {
	wordsPath, err := cmd.Flags().GetString("words")
	if err != nil {
		return fmt.Errorf("failed to get words flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	lex, err := lexicon.BuildFile(wordsPath)
	if err != nil {
		return err
	}
	if err := lex.Save(outPath); err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d keys, %d words\n", outPath, lex.Len(), lex.Words())
	}
	return nil
}

func runLexiconLookup(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("lexicon")
	if err != nil {
		return fmt.Errorf("failed to get lexicon flag: %w", err)
	}
	if path == "" {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path = cfg.LexiconPath()
	}
	lex, err := lexicon.Open(path)
	if err != nil {
		return fmt.Errorf("lexicon: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, word := range args {
		res := lex.Resolve(word)
		switch {
		case res.Changed():
			fmt.Fprintf(out, "%s → %s\n", word, res.Replacement)
		case res.Ambiguous:
			fmt.Fprintf(out, "%s: ambiguous (%s)\n", word, strings.Join(res.Candidates, ", "))
		case len(res.Candidates) > 0:
			fmt.Fprintf(out, "%s: unchanged\n", word)
		default:
			if entry, ok := lex.Lookup(word); ok {
				fmt.Fprintf(out, "%s: not restored, known forms %s\n", word, strings.Join(entry.Forms, ", "))
			} else {
				fmt.Fprintf(out, "%s: unknown\n", word)
			}
		}
	}
	return nil
}
