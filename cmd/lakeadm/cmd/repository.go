// Copyright © 2026 Lakeland Data

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lakeland-data/lakeland/pkg/admin"
	badgerstore "github.com/lakeland-data/lakeland/pkg/store/badger"

	bloblocalfs "github.com/lakeland-data/lakeland/pkg/blob/localfs"
	"github.com/lakeland-data/lakeland/pkg/dlogger"
	"github.com/lakeland-data/lakeland/pkg/model"
)

// openRepository builds the administration facade from the CLI config.
// The returned close func tears down the store handles.
func openRepository(ctx context.Context) (*admin.Repository, func(), error) {
	logger, err := dlogger.GetLogger(lakeadmFlags.root.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("get logger: %w", err)
	}

	graph := badgerstore.New(config.GraphStore, badgerstore.WithLogger(logger))
	if err := graph.Initialize(ctx); err != nil {
		return nil, nil, fmt.Errorf("open graph store at %q: %w", config.GraphStore, err)
	}

	blobs := bloblocalfs.New(afero.NewBasePathFs(afero.NewOsFs(), config.BlobStore))
	if err := blobs.Initialize(); err != nil {
		_ = graph.Close()
		return nil, nil, fmt.Errorf("open binary store at %q: %w", config.BlobStore, err)
	}

	repo := admin.NewRepository(graph, blobs,
		admin.WithLogger(logger),
		admin.WithNamespace(model.Namespace(config.Namespace)),
		admin.WithDigestAlgorithm(config.Digest),
	)
	teardown := func() {
		if cerr := graph.Close(); cerr != nil {
			logger.Error("closing graph store", zap.Error(cerr))
		}
		_ = logger.Sync()
	}
	return repo, teardown, nil
}

// userConfirm prompts for the explicit confirmation every destructive
// command requires. The prompt is a CLI concern: the facade only ever
// sees the resulting boolean.
func userConfirm(action string) bool {
	infoLogger.Printf("This will %s. Type 'yes' to proceed:", action)
	var answer string
	_, _ = fmt.Scanln(&answer)
	yesno := strings.ToLower(strings.TrimSpace(answer))
	return yesno == "y" || yesno == "yes"
}

// confirmed resolves the confirmation for a destructive command,
// honoring --force-yes.
func confirmed(action string) bool {
	if lakeadmFlags.root.forceYes {
		return true
	}
	return userConfirm(action)
}
