package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/wdl/internal/catalog"
	"github.com/zjrosen/wdl/internal/compiler"
	"github.com/zjrosen/wdl/internal/export"
	"github.com/zjrosen/wdl/internal/render"
	"github.com/zjrosen/wdl/internal/styles"
	"github.com/zjrosen/wdl/internal/wdl"
)

var (
	catalogSaveName   string
	catalogShowFormat string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Save and recall compiled layouts",
	Long: `The catalog is a sqlite database of layouts that compiled successfully
(catalog.path in the config). A layout is referred to by its id or by its
name; a name refers to the newest layout saved under it.`,
}

var catalogSaveCmd = &cobra.Command{
	Use:   "save FILE",
	Short: "Compile FILE and store it",
	Long: `Compile FILE and store it under --name (default: the file name without
extension). Saving unchanged source under the same name is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := compileArg(cmd, newCompiler(compiler.Options{}), args[0])
		if err != nil {
			return err
		}
		name := catalogSaveName
		if name == "" {
			name = layoutName(args[0])
		}
		if name == "" {
			return errors.New("--name is required when reading standard input")
		}

		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		l, created, err := store.Save(cmd.Context(), name, res.Source, res.Window)
		if err != nil {
			return err
		}
		status := styles.SuccessStyle.Render("saved")
		if !created {
			status = styles.MutedStyle.Render("unchanged")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", status, l.Name, l.ID)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		layouts, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(layouts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), styles.MutedStyle.Render("catalog is empty"))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), layoutTable(layouts))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show REF",
	Short: "Print a stored layout",
	Long: `Print a stored layout. --format picks the view: source (default), tree,
window, yaml or json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		l, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return showLayout(cmd, l, catalogShowFormat)
	},
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete REF",
	Short: "Delete a layout by id, or every layout with a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		n, err := store.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d layout(s)\n", n)
		return nil
	},
}

func init() {
	catalogSaveCmd.Flags().StringVarP(&catalogSaveName, "name", "n", "", "name to store the layout under")
	catalogShowCmd.Flags().StringVarP(&catalogShowFormat, "format", "f", "source", "source, tree, window, yaml or json")
	catalogCmd.AddCommand(catalogSaveCmd, catalogListCmd, catalogShowCmd, catalogDeleteCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	var opts []catalog.Option
	if tracer != nil {
		opts = append(opts, catalog.WithTracer(tracer.Tracer()))
	}
	return catalog.Open(cmd.Context(), cfg.CatalogPath(), opts...)
}

// layoutName derives a catalog name from a path: "forms/login.wdl" is
// "login". Standard input has no name.
func layoutName(arg string) string {
	if arg == "-" {
		return ""
	}
	base := filepath.Base(arg)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func layoutTable(layouts []catalog.Layout) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
		Headers("NAME", "TITLE", "SIZE", "WIDGETS", "CREATED", "ID").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, l := range layouts {
		t.Row(
			l.Name,
			l.Title,
			fmt.Sprintf("%d×%d", l.Width, l.Height),
			strconv.Itoa(l.Widgets),
			l.CreatedAt.Local().Format("2006-01-02 15:04"),
			l.ID.String(),
		)
	}
	return t.String()
}

func showLayout(cmd *cobra.Command, l catalog.Layout, format string) error {
	out := cmd.OutOrStdout()
	if format == "source" {
		fmt.Fprint(out, l.Source)
		return nil
	}

	w, err := wdl.Parse(l.Source)
	if err != nil {
		return fmt.Errorf("stored layout %s no longer parses: %w", l.ID, err)
	}
	switch format {
	case "tree":
		fmt.Fprintln(out, render.Outline(w))
	case "window":
		fmt.Fprintln(out, render.Window(w, render.Options{Focused: render.NoFocus}))
	default:
		f, err := export.ParseFormat(format)
		if err != nil {
			return fmt.Errorf("unknown show format %q (want source, tree, window, yaml or json)", format)
		}
		return export.Write(out, w, f)
	}
	return nil
}
