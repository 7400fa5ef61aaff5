package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/log"
	"github.com/zjrosen/wdl/internal/styles"
	"github.com/zjrosen/wdl/internal/wdl"
)

var (
	fmtWrite bool
	fmtDiff  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Print a file in canonical form",
	Long: `Print FILE in canonical form: two-space indentation, one widget per line,
"grid(r, c)" when both gaps are zero. Formatting never changes the parsed tree.

Examples:
  wdl fmt form.wdl            # print the formatted source
  wdl fmt --diff form.wdl     # show what would change
  wdl fmt --write form.wdl    # rewrite the file in place`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to FILE")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "print a line diff instead of the formatted source")
	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	if fmtWrite && args[0] == "-" {
		return errors.New("--write needs a file, not standard input")
	}

	res, err := compileArg(cmd, newCompiler(compiler.Options{}), args[0])
	if err != nil {
		return err
	}
	formatted, err := wdl.Format(res.Window)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if fmtDiff {
		if formatted != res.Source {
			fmt.Fprint(out, lineDiff(res.Name, res.Source, formatted))
		}
	} else if !fmtWrite {
		fmt.Fprint(out, formatted)
	}

	if fmtWrite && formatted != res.Source {
		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("stat %s: %w", args[0], err)
		}
		if err := os.WriteFile(args[0], []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", args[0], err)
		}
		log.Info(log.CatCompiler, "formatted", "path", args[0])
		fmt.Fprintln(cmd.ErrOrStderr(), args[0])
	}
	return nil
}

// lineDiff renders the line level changes from before to after with -/+
// markers.
func lineDiff(name, before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString(styles.DiffRemovedStyle.Render("--- "+name) + "\n")
	sb.WriteString(styles.DiffAddedStyle.Render("+++ "+name+" (formatted)") + "\n")
	for _, d := range diffs {
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(styles.DiffRemovedStyle.Render("-"+line) + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(styles.DiffAddedStyle.Render("+"+line) + "\n")
			default:
				sb.WriteString(" " + line + "\n")
			}
		}
	}
	return sb.String()
}
