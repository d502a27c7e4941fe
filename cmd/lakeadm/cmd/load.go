// Copyright © 2026 Lakeland Data

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lakeland-data/lakeland/pkg/admin"
	"github.com/lakeland-data/lakeland/pkg/admin/status"
	"github.com/lakeland-data/lakeland/pkg/errors"
	"github.com/lakeland-data/lakeland/pkg/model"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Reconstruct resources from a backup tree",
	Long: `Reconstruct resources under --dest from a dump tree at --src produced
by lakeadm or a protocol-compatible implementation. Payload bytes are
verified against the manifest's declared digests unless --no-verify.

Destructive at the destination: the existing subtree under --dest is
replaced.
`,
	Example: `% lakeadm load --src /backups/projects-2026-08 --dest /projects`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		repo, teardown, err := openRepository(ctx)
		if err != nil {
			wrapFatalln("open repository", err)
			return
		}
		defer teardown()

		if !confirmed("replace the subtree at " + lakeadmFlags.load.dest) {
			wrapFatalWithCodef(exitCodeDeclined, "load declined: repository left untouched")
			return
		}

		res, err := repo.Load(ctx,
			lakeadmFlags.load.src,
			model.UID(lakeadmFlags.load.dest),
			admin.WithLoadVerify(!lakeadmFlags.load.noVerify),
		)
		if errors.Is(err, status.ErrCorruptManifest) {
			wrapFatalln("load: manifest rejected", err)
			return
		}
		if err != nil {
			wrapFatalln("load", err)
			return
		}
		infoLogger.Printf("loaded %d resource(s), %d payload(s)", res.Resources, res.Binaries)
	},
}

func init() {
	loadCmd.Flags().StringVar(&lakeadmFlags.load.src, "src", "",
		"source directory holding the dump tree")
	loadCmd.Flags().StringVar(&lakeadmFlags.load.dest, "dest", "",
		"UID to reconstruct the subtree under")
	loadCmd.Flags().BoolVar(&lakeadmFlags.load.noVerify, "no-verify", false,
		"best-effort mode: skip payload digest verification")
	_ = loadCmd.MarkFlagRequired("src")
	_ = loadCmd.MarkFlagRequired("dest")
	rootCmd.AddCommand(loadCmd)
}
