package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/markdown"
)

var (
	describeWidth  int
	describeSource bool
	describeRaw    bool
)

var describeCmd = &cobra.Command{
	Use:   "describe FILE",
	Short: "Summarize a layout as a markdown report",
	Long: `Summarize FILE: title, size, layout, widget counts and structure. The
report is markdown styled for the terminal; --raw prints the markdown itself.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := compileArg(cmd, newCompiler(compiler.Options{}), args[0])
		if err != nil {
			return err
		}

		src := ""
		if describeSource {
			src = res.Source
		}
		md := markdown.Describe(res.Name, res.Window, src)
		if describeRaw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		style := cfg.MarkdownStyle
		if lipgloss.ColorProfile() == termenv.Ascii {
			style = markdown.StylePlain
		}
		r, err := markdown.New(describeWidth, style)
		if err != nil {
			return err
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	describeCmd.Flags().IntVarP(&describeWidth, "width", "w", 80, "word wrap width")
	describeCmd.Flags().BoolVar(&describeSource, "source", false, "append the source to the report")
	describeCmd.Flags().BoolVar(&describeRaw, "raw", false, "print markdown without terminal styling")
	rootCmd.AddCommand(describeCmd)
}
