package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmmoran/patternweave/pkg/action/generate"
	"github.com/cmmoran/patternweave/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewDiffCommand())
}

func NewGenerateCommand() *cobra.Command {
	options := generator.NewOptions()

	// generateCmd represents the patternweave generate command
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate patterns",
		Long:  "Expand the pattern requests in the manifest and write the output file",
		Run: func(c *cobra.Command, args []string) {
			out, err := generate.Run(options)
			if err != nil {
				slog.Default().With("error", err).Error("generation failed")
				os.Exit(1)
			}
			fmt.Println(out)
		},
	}
	generateCmd.PersistentFlags().StringVarP(&options.ManifestPath, "manifest", "m", "patterns.yaml", "pattern manifest to read")
	generateCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "gen", "directory to write generated source")
	generateCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "", "output file where generated source will be written")
	generateCmd.PersistentFlags().StringVarP(&options.Package, "package", "p", "patterns", "package name stamped on Go output")
	generateCmd.PersistentFlags().StringVarP(&options.Backend, "backend", "b", generator.BackendSource, "output backend (source, go)")
	generateCmd.PersistentFlags().StringVar(&options.SupportPath, "support-path", "", "import path of the runtime helpers linked by Go output")
	generateCmd.PersistentFlags().BoolVarP(&options.Documented, "documented", "d", false, "synthesize structured documentation on every member")

	return generateCmd
}

func NewDiffCommand() *cobra.Command {
	options := generator.NewOptions()
	var kind, name string

	var diffCmd = &cobra.Command{
		Use:   "diff",
		Short: "diff recorded output",
		Long:  "Regenerate the manifest's requests in memory and diff against the recorded output file",
		Run: func(c *cobra.Command, args []string) {
			d, err := generate.Diff(options, kind, name)
			if err != nil {
				slog.Default().With("error", err).Error("diff failed")
				os.Exit(1)
			}
			if d == "" {
				fmt.Println("recorded output is current")
				return
			}
			fmt.Print(d)
		},
	}
	diffCmd.PersistentFlags().StringVarP(&options.ManifestPath, "manifest", "m", "patterns.yaml", "pattern manifest to read")
	diffCmd.PersistentFlags().StringVarP(&options.Backend, "backend", "b", generator.BackendSource, "output backend (source, go)")
	diffCmd.PersistentFlags().StringVarP(&kind, "kind", "k", "", "request kind recorded in the manifest")
	diffCmd.PersistentFlags().StringVarP(&name, "name", "n", "", "request name recorded in the manifest")

	return diffCmd
}
