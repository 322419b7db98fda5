package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/tidytable/internal/observability"
	"github.com/couchcryptid/tidytable/internal/pipeline"
)

var validateCmd = &cobra.Command{
	Use:   "validate <spec.yaml>...",
	Short: "Parse and validate pipeline specs without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if err := validateSpec(path); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("%s: ok\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d specs invalid", failed, len(args))
		}
		return nil
	},
}

func validateSpec(path string) error {
	spec, err := pipeline.LoadSpec(path)
	if err != nil {
		return err
	}

	// Building exercises the checks LoadSpec cannot do on its own: regex
	// compilation, deriver arg resolution, sink construction.
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = spec.Build(pipeline.BuildOptions{
		Logger:  discard,
		Metrics: observability.NewMetricsForTesting(),
	})
	return err
}
