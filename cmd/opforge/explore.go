package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"opforge/internal/ui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Browse the rule tables interactively",
	Long:  `Explore opens an interactive browser over the capability families and composite groups, showing requirements, provisions, and overload variant tables`,
	RunE:  runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("explore needs an interactive terminal")
	}
	program := tea.NewProgram(ui.NewModel(), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
