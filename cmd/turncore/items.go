package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nathoo/turncore/engine/catalog"
	"github.com/nathoo/turncore/engine/script"
	"github.com/nathoo/turncore/loader"
	"github.com/nathoo/turncore/logger"
)

var itemsCmd = &cobra.Command{
	Use:   "items [game-dir]",
	Short: "List item templates",
	Long:  "List the built-in item catalog, or the catalog of a game directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.MustNew(catalog.Builtin()...)
		if len(args) == 1 {
			content, err := loader.Load(args[0], script.Options{Logger: logger.Discard()})
			if err != nil {
				return fmt.Errorf("loading game: %w", err)
			}
			defer content.Close()
			cat = content.Catalog
		}
		printItems(cmd.OutOrStdout(), cat)
		return nil
	},
}

func printItems(w io.Writer, cat *catalog.Catalog) {
	head := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	fmt.Fprintln(w, head.Render(fmt.Sprintf("%5s  %-28s %4s %4s %6s  %s", "ID", "NAME", "CAT", "LV", "VALUE", "")))
	for _, t := range cat.All() {
		mark := ""
		if t.HasCallback() {
			mark = "lua"
		}
		fmt.Fprintf(w, "%5d  %-28s %4d %4d %6d  %s\n", t.ID, t.Name, t.Category, t.Level, t.Value, mark)
	}
}
