package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"readstudy/internal/sampledata"
)

func newSampleCommand(ctx *commandContext) *cobra.Command {
	params := sampledata.DefaultParams()
	var count int

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate synthetic CT volumes into the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			identities, err := sampledata.WriteSamples(cfg.Paths.DataDir, count, params)
			if err != nil {
				return err
			}
			for _, identity := range identities {
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", identity)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d volume(s) to %s\n", len(identities), cfg.Paths.DataDir)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 5, "Number of volumes to generate")
	cmd.Flags().IntVar(&params.Depth, "depth", params.Depth, "Base slice count per volume")
	cmd.Flags().IntVar(&params.Height, "height", params.Height, "Slice height in voxels")
	cmd.Flags().IntVar(&params.Width, "width", params.Width, "Slice width in voxels")
	cmd.Flags().Uint64Var(&params.Seed, "seed", params.Seed, "Random seed")
	return cmd
}
