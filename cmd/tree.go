package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/render"
)

var renderWidth int

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the widget tree as an outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := compileArg(cmd, newCompiler(compiler.Options{}), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Outline(res.Window))
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Draw the window once, without the live preview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := compileArg(cmd, newCompiler(compiler.Options{}), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Window(res.Window, render.Options{
			Width:   renderWidth,
			Focused: render.NoFocus,
		}))
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 0, "maximum width in cells (0 = natural width)")
	rootCmd.AddCommand(treeCmd, renderCmd)
}
