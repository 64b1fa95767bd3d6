package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "relmap",
		Short: "Declarative relational schema compiler",
		Long: `relmap turns declaratively annotated data models into a relational schema:
validated table, constraint, and trigger definitions emitted as
dependency-ordered DDL, with optional seed data.`,
	}

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
