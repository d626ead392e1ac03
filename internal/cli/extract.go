package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SaschaOnTour/rlm/internal/extract"
	"github.com/SaschaOnTour/rlm/internal/report"
)

var extractLanguage string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract the structure of a single source file",
	Long: `Parse one source file and print its structure as JSON:
declarations with parameters, return annotations and visibility, plus
module-level call expressions and in-body references.

Reads from stdin when no file is given; --language is then required.

Examples:
  rlm extract app/main.py
  cat main.py | rlm extract --language python`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractLanguage, "language", "l", "", "source language when reading from stdin (python, go, java, rust)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	registry := extract.NewRegistry()

	var (
		extractor extract.LanguageExtractor
		source    []byte
		path      string
		err       error
	)

	if len(args) == 1 {
		path = args[0]
		if extractLanguage != "" {
			extractor, err = registry.ForLanguage(extractLanguage)
		} else {
			extractor, err = registry.ForPath(path)
		}
		if err != nil {
			return err
		}
		source, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if extractLanguage == "" {
			return fmt.Errorf("--language is required when reading from stdin (one of: %v)", registry.Languages())
		}
		extractor, err = registry.ForLanguage(extractLanguage)
		if err != nil {
			return err
		}
		source, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	mod, err := extractor.Extract(source)
	if err != nil {
		return err
	}
	refs, err := extractor.References(source)
	if err != nil {
		return err
	}

	out, err := report.Render(report.NewFileReport(path, source, mod, refs))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
