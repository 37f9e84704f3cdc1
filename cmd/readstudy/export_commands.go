package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"readstudy/internal/config"
	"readstudy/internal/export"
	"readstudy/internal/results"
	"readstudy/internal/volume"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write result CSV exports",
	}

	exportCmd.AddCommand(newExportRunCommand(ctx, "matrix", "Export the patient x inspector result matrix",
		func(e *export.Exporter, cmd *cobra.Command) ([]string, error) {
			path, err := e.Matrix(cmd.Context())
			if err != nil {
				return nil, err
			}
			return []string{path}, nil
		}))
	exportCmd.AddCommand(newExportRunCommand(ctx, "timestamps", "Export per-read timestamps",
		func(e *export.Exporter, cmd *cobra.Command) ([]string, error) {
			path, err := e.Timestamps(cmd.Context())
			if err != nil {
				return nil, err
			}
			return []string{path}, nil
		}))
	exportCmd.AddCommand(newExportRunCommand(ctx, "stats", "Export per-inspector statistics",
		func(e *export.Exporter, cmd *cobra.Command) ([]string, error) {
			path, err := e.Statistics(cmd.Context())
			if err != nil {
				return nil, err
			}
			return []string{path}, nil
		}))
	exportCmd.AddCommand(newExportRunCommand(ctx, "all", "Write every export",
		func(e *export.Exporter, cmd *cobra.Command) ([]string, error) {
			var paths []string
			matrix, err := e.Matrix(cmd.Context())
			if err != nil {
				return nil, err
			}
			paths = append(paths, matrix)
			timestamps, err := e.Timestamps(cmd.Context())
			if err != nil {
				return nil, err
			}
			paths = append(paths, timestamps)
			stats, err := e.Statistics(cmd.Context())
			if err != nil {
				return nil, err
			}
			return append(paths, stats), nil
		}))

	return exportCmd
}

func newExportRunCommand(ctx *commandContext, use, short string, run func(*export.Exporter, *cobra.Command) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *results.Store) error {
				library := volume.NewStore(cfg.Paths.DataDir)
				exporter := export.New(store, library, cfg.Paths.ExportDir)
				paths, err := run(exporter, cmd)
				if err != nil {
					return err
				}
				for _, path := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				}
				return nil
			})
		},
	}
}
