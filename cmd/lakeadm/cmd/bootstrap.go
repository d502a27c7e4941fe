// Copyright © 2026 Lakeland Data

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lakeland-data/lakeland/pkg/admin/status"
	"github.com/lakeland-data/lakeland/pkg/errors"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Wipe and reinitialize both stores",
	Long: `Destructively reinitialize the graph store and the binary store to an
empty but valid state: an empty graph holding only the root resource,
and a recreated binary store scaffold.

All existing data is lost. This command MUST NOT BE RUN while the
repository server is up.
`,
	Example: `% lakeadm bootstrap --force-yes`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, teardown, err := openRepository(ctx)
		if err != nil {
			wrapFatalln("open repository", err)
			return
		}
		defer teardown()

		err = repo.Bootstrap(ctx, confirmed("wipe and reinitialize both stores"))
		if errors.Is(err, status.ErrNotConfirmed) {
			wrapFatalWithCodef(exitCodeDeclined, "bootstrap declined: stores left untouched")
			return
		}
		if err != nil {
			wrapFatalln("bootstrap", err)
			return
		}
		infoLogger.Println("repository bootstrapped")
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
