// Copyright © 2026 Lakeland Data

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var checkRefintCmd = &cobra.Command{
	Use:   "check-refint",
	Short: "Report dangling internal references",
	Long: `Scan every graph statement whose object is an internal reference and
report each one that resolves to no existing resource. The scan runs in
a consistent snapshot and always completes, so the report is exhaustive.
Nothing is repaired. Read-only.
`,
	Example: `% lakeadm check-refint`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, teardown, err := openRepository(ctx)
		if err != nil {
			wrapFatalln("open repository", err)
			return
		}
		defer teardown()

		violations, err := repo.CheckIntegrity(ctx)
		if err != nil {
			wrapFatalln("check referential integrity", err)
			return
		}
		if len(violations) == 0 {
			infoLogger.Println("no dangling references")
			return
		}
		for _, v := range violations {
			infoLogger.Printf("dangling: <%s> <%s> -> <%s>", v.Subject, v.Predicate, v.Object)
		}
		wrapFatalWithCodef(exitCodeError, "%d dangling reference(s) found", len(violations))
	},
}

func init() {
	rootCmd.AddCommand(checkRefintCmd)
}
