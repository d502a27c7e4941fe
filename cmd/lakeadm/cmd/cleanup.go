// Copyright © 2026 Lakeland Data

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove orphan binary payloads and graph nodes",
	Long: `Remove stored artifacts no live resource owns: binary payloads without
an owning record, and auxiliary graph nodes whose resource is gone.

Destructive, but scoped to orphans only: resources that are merely the
target of someone else's dangling reference are never touched. Every
removal is logged.
`,
	Example: `% lakeadm cleanup`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, teardown, err := openRepository(ctx)
		if err != nil {
			wrapFatalln("open repository", err)
			return
		}
		defer teardown()

		res, err := repo.Cleanup(ctx)
		if err != nil {
			wrapFatalln("cleanup", err)
			return
		}
		infoLogger.Printf("removed %d orphan payload(s), %d orphan graph node(s)",
			res.BinariesRemoved, res.GraphNodesRemoved)
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
