package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/tidytable/internal/observability"
	"github.com/couchcryptid/tidytable/internal/pipeline"
)

var runOutput string

var runCmd = &cobra.Command{
	Use:   "run <spec.yaml>",
	Short: "Execute a pipeline spec and write the tidy table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := pipeline.LoadSpec(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return err
		}
		if runOutput != "" {
			spec.Sink = &pipeline.SinkSpec{Kind: "csv", Path: runOutput}
		}

		p, err := spec.Build(pipeline.BuildOptions{
			Logger:       logger,
			Metrics:      observability.NewMetrics(),
			FetchTimeout: cfg.FetchTimeout,
			MissingToken: cfg.MissingToken,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return err
		}

		out, err := p.Run(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return err
		}

		fmt.Printf("%s: %d rows, %d columns\n", spec.Name, out.NumRows(), out.NumCols())
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output file (overrides the spec's sink)")
}
