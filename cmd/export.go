package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/export"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write the widget tree as YAML or JSON",
	Long: `Write the widget tree as YAML (default) or JSON. Keys keep a fixed order:
type first, then the widget's own fields, then layout and children.

Examples:
  wdl export form.wdl
  wdl export --format json form.wdl | jq '.children[].type'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		res, err := compileArg(cmd, newCompiler(compiler.Options{}), args[0])
		if err != nil {
			return err
		}
		return export.Write(cmd.OutOrStdout(), res.Window, format)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.YAML), "output format: yaml or json")
	rootCmd.AddCommand(exportCmd)
}
