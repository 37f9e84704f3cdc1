package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"readstudy/internal/config"
	"readstudy/internal/results"
	"readstudy/internal/volume"
)

func newCasesCommand(ctx *commandContext) *cobra.Command {
	casesCmd := &cobra.Command{
		Use:   "cases",
		Short: "Inspect the CT case library",
	}

	casesCmd.AddCommand(newCasesListCommand(ctx))
	casesCmd.AddCommand(newCasesInfoCommand(ctx))

	return casesCmd
}

func newCasesListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cases and how many reads each has",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *results.Store) error {
				library := volume.NewStore(cfg.Paths.DataDir)
				patients, err := library.List()
				if err != nil {
					return err
				}

				all, err := store.AllResults(cmd.Context())
				if err != nil {
					return err
				}
				reads := make(map[string]int, len(patients))
				for _, row := range all {
					reads[row.PatientID]++
				}

				if asJSON {
					type jsonCase struct {
						PatientID string `json:"patient_id"`
						Reads     int    `json:"reads"`
					}
					payload := make([]jsonCase, 0, len(patients))
					for _, id := range patients {
						payload = append(payload, jsonCase{PatientID: id, Reads: reads[id]})
					}
					return writeJSON(cmd, map[string]any{"cases": payload})
				}

				rows := make([][]string, 0, len(patients))
				for _, id := range patients {
					rows = append(rows, []string{id, strconv.Itoa(reads[id])})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Patient", "Reads"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newCasesInfoCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <patient-id>",
		Short: "Show volume geometry and intensity statistics for one case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			library, err := ctx.library()
			if err != nil {
				return err
			}
			vol, err := library.Load(args[0])
			if err != nil {
				return err
			}

			shape := vol.Shape()
			stats := vol.Stats()
			if asJSON {
				return writeJSON(cmd, map[string]any{
					"patient_id": vol.Identity(),
					"shape":      shape,
					"stats":      stats,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Patient:  %s\n", vol.Identity())
			fmt.Fprintf(out, "Shape:    %s\n", shape)
			fmt.Fprintf(out, "Min HU:   %.1f\n", stats.MinHU)
			fmt.Fprintf(out, "Max HU:   %.1f\n", stats.MaxHU)
			fmt.Fprintf(out, "Mean HU:  %.1f\n", stats.MeanHU)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}
