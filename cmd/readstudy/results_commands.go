package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"readstudy/internal/config"
	"readstudy/internal/results"
)

func newResultsCommand(ctx *commandContext) *cobra.Command {
	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "Inspect recorded classifications",
	}

	resultsCmd.AddCommand(newResultsListCommand(ctx))
	resultsCmd.AddCommand(newResultsPatientCommand(ctx))
	resultsCmd.AddCommand(newResultsInspectorsCommand(ctx))

	return resultsCmd
}

func newResultsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every recorded read",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *results.Store) error {
				rows, err := store.AllResults(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, map[string]any{"results": rows})
				}
				return printResultRows(cmd, rows)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newResultsPatientCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "patient <patient-id>",
		Short: "List every read of one case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *results.Store) error {
				rows, err := store.PatientResults(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, map[string]any{"patient_id": args[0], "results": rows})
				}
				return printResultRows(cmd, rows)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newResultsInspectorsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspectors",
		Short: "List registered inspectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *results.Store) error {
				inspectors, err := store.Inspectors(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, map[string]any{"inspectors": inspectors})
				}
				rows := make([][]string, 0, len(inspectors))
				for _, inspector := range inspectors {
					rows = append(rows, []string{
						fmt.Sprintf("%d", inspector.ID),
						inspector.Affiliation,
						inspector.Name,
						inspector.LastLogin.Format(time.RFC3339),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Affiliation", "Name", "Last Login"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func printResultRows(cmd *cobra.Command, rows []*results.InspectorResult) error {
	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, []string{
			row.PatientID,
			row.Affiliation + "_" + row.Name,
			string(row.Classification),
			row.UpdatedAt.Format(time.RFC3339),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Patient", "Inspector", "Result", "Updated"},
		tableRows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
	return nil
}
