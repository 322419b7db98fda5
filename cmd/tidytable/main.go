// Command tidytable runs declarative tidy-reshape pipelines: it reads a raw
// tabular source (inline literal, CSV file, or scraped HTML table), applies
// an ordered list of transformation rules, and writes the tidy result to a
// delimited file.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
