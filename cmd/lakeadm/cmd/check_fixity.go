// Copyright © 2026 Lakeland Data

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lakeland-data/lakeland/pkg/model"
)

var checkFixityCmd = &cobra.Command{
	Use:   "check-fixity",
	Short: "Verify a resource's binary payload against its digest record",
	Long: `Recompute the digest of a resource's payload bytes with the algorithm
recorded at write time and compare with the stored value. A mismatch is
reported, never repaired. Read-only.
`,
	Example: `% lakeadm check-fixity --uid /images/scan-001`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, teardown, err := openRepository(ctx)
		if err != nil {
			wrapFatalln("open repository", err)
			return
		}
		defer teardown()

		res, err := repo.CheckFixity(ctx, model.UID(lakeadmFlags.fixity.uid))
		if err != nil {
			wrapFatalln("check fixity", err)
			return
		}
		if res.OK {
			infoLogger.Printf("ok: %s (%s %s, %d bytes)",
				res.UID, res.Algorithm, res.ExpectedDigest, res.SizeBytes)
			return
		}
		wrapFatalWithCodef(exitCodeError,
			"FIXITY MISMATCH for %s:\n  expected (%s): %s\n  actual:        %s",
			res.UID, res.Algorithm, res.ExpectedDigest, res.ActualDigest)
	},
}

func init() {
	checkFixityCmd.Flags().StringVar(&lakeadmFlags.fixity.uid, "uid", "",
		"UID of the resource to verify")
	_ = checkFixityCmd.MarkFlagRequired("uid")
	rootCmd.AddCommand(checkFixityCmd)
}
