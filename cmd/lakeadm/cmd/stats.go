// Copyright © 2026 Lakeland Data

package cmd

import (
	"context"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report aggregate repository statistics",
	Long: `Report repository-wide counters: resources, binary payloads, payload
bytes, graph statements and the on-disk store footprint. Read-only.
`,
	Example: `% lakeadm stats --human`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, teardown, err := openRepository(ctx)
		if err != nil {
			wrapFatalln("open repository", err)
			return
		}
		defer teardown()

		stats, err := repo.Stats(ctx)
		if err != nil {
			wrapFatalln("stats", err)
			return
		}

		infoLogger.Printf("resources:          %d", stats.ResourceCount)
		infoLogger.Printf("binaries:           %d", stats.BinaryCount)
		infoLogger.Printf("graph triples:      %d", stats.GraphTripleCount)
		if lakeadmFlags.stats.human {
			infoLogger.Printf("binary bytes:       %s", units.HumanSize(float64(stats.TotalBinarySizeBytes)))
			infoLogger.Printf("store size:         %s", units.HumanSize(float64(stats.StoreSizeBytes)))
		} else {
			infoLogger.Printf("binary bytes:       %d", stats.TotalBinarySizeBytes)
			infoLogger.Printf("store size:         %d", stats.StoreSizeBytes)
		}
	},
}

func init() {
	statsCmd.Flags().BoolVar(&lakeadmFlags.stats.human, "human", false,
		"print sizes in human readable form")
	rootCmd.AddCommand(statsCmd)
}
