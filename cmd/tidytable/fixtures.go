package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/tidytable/internal/datasets"
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures <dir>",
	Short: "Write the bundled raw reference datasets to a directory",
	Long: `Writes the raw reference datasets (tropical storms CSV, Buffalo-style
seasonal snowfall CSV, and a scraped population HTML page) into the given
directory, so the example pipeline specs have inputs to run against.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		dir := args[0]
		if err := datasets.WriteFixtures(dir); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return err
		}
		fmt.Printf("fixtures written to %s\n", dir)
		return nil
	},
}
