package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/styles"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Parse files and report the first error",
	Long: `Parse each FILE in order. Checking stops at the first file that fails,
printing the error with the offending line and a caret under the column.

Examples:
  wdl check calculator.wdl
  wdl check layouts/*.wdl
  cat form.wdl | wdl check -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	c := newCompiler(compiler.Options{})
	for _, arg := range args {
		res, err := compileArg(cmd, c, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
			styles.SuccessStyle.Render("ok"),
			res.Name,
			styles.MutedStyle.Render(fmt.Sprintf("(%d widgets)", res.Stats.Widgets())))
	}
	return nil
}
