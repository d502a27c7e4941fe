package admin

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/lakeland-data/lakeland/pkg/admin/status"
	"github.com/lakeland-data/lakeland/pkg/errors"
	"github.com/lakeland-data/lakeland/pkg/model"
	storestatus "github.com/lakeland-data/lakeland/pkg/store/status"
)

type (
	// DumpOption modifies the behavior of Dump.
	DumpOption func(*dumpOptions)

	dumpOptions struct {
		mode model.BinaryMode
	}
)

// WithBinaryMode selects the binary-inclusion policy. Default include.
func WithBinaryMode(mode model.BinaryMode) DumpOption {
	return func(o *dumpOptions) {
		if mode != "" {
			o.mode = mode
		}
	}
}

func defaultDumpOptions(opts []DumpOption) *dumpOptions {
	o := &dumpOptions{mode: model.BinaryModeInclude}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// DumpResult summarizes a completed dump.
type DumpResult struct {
	ManifestID string `json:"manifestId" yaml:"manifestId"`
	Resources  uint64 `json:"resources" yaml:"resources"`
	Binaries   uint64 `json:"binaries" yaml:"binaries"`
}

// Dump serializes the subtree rooted at src into a portable directory
// tree at destPath: one canonical N-Triples file per resource, payload
// files per the binary mode, a yaml manifest indexing all entries, and
// a completion marker written as the very last step. Until the marker
// exists the tree is not a valid manifest, so a cancelled or crashed
// dump can never be mistaken for a complete one.
//
// The source repository is only read, inside one read scope, so the
// dump is a consistent snapshot even under concurrent writers.
func (r *Repository) Dump(ctx context.Context, src model.UID, destPath string, opts ...DumpOption) (DumpResult, error) {
	var out DumpResult
	options := defaultDumpOptions(opts)
	if err := options.mode.Validate(); err != nil {
		return out, err
	}
	if err := src.Validate(); err != nil {
		return out, err
	}

	if err := r.archiveFs.MkdirAll(destPath, 0755); err != nil {
		return out, err
	}
	dest := afero.NewBasePathFs(r.archiveFs, destPath)

	txn, err := r.graph.Begin(false)
	if err != nil {
		return out, err
	}
	defer txn.Discard()

	if _, err = txn.GetResource(src); err != nil {
		if errors.Is(err, storestatus.ErrResourceNotFound) {
			return out, status.ErrResourceNotFound.Wrap(fmt.Errorf("dump source %q: %w", src, err))
		}
		return out, err
	}

	// subtree records, in UID order (store iteration order)
	var recs []*model.ResourceRecord
	seen := make(map[model.UID]struct{})
	err = txn.Resources(func(rec *model.ResourceRecord) error {
		if rec.UID != src && !rec.UID.IsDescendantOf(src) {
			return nil
		}
		if _, dup := seen[rec.UID]; dup {
			return nil
		}
		seen[rec.UID] = struct{}{}
		cp := *rec
		recs = append(recs, &cp)
		return nil
	})
	if err != nil {
		return out, err
	}

	// one triple scan groups statements by owning resource, auxiliary
	// fragment subjects included
	groups := make(map[model.UID][]model.Triple, len(recs))
	scanned := 0
	err = txn.Triples(func(t model.Triple) error {
		scanned++
		if scanned%cancelCheckInterval == 0 {
			if err := cancelled(ctx); err != nil {
				return err
			}
		}
		owner, ok := r.ns.OwnerOf(t.Subject)
		if !ok {
			return nil
		}
		if _, inSubtree := seen[owner]; !inSubtree {
			return nil
		}
		groups[owner] = append(groups[owner], t)
		return nil
	})
	if err != nil {
		return out, err
	}

	manifest := model.ManifestDescriptor{
		Version:    model.CurrentManifestVersion,
		ID:         ksuid.New().String(),
		SourceRoot: src,
		Namespace:  string(r.ns),
		BinaryMode: options.mode,
		CreatedAt:  time.Now().UTC(),
	}

	type binJob struct {
		uid  model.UID
		rec  model.DigestRecord
		path string
	}
	var jobs []binJob

	for _, rec := range recs {
		if err := cancelled(ctx); err != nil {
			return out, err
		}
		rel := dumpTreeUID(src, rec.UID)
		entry := model.ManifestEntry{
			UID:        rec.UID,
			GraphPath:  model.GetDumpPathToGraph(rel),
			BinaryMode: model.BinaryModeSkip,
		}

		var buf bytes.Buffer
		if err := model.EncodeGraph(&buf, groups[rec.UID]); err != nil {
			return out, err
		}
		if err := writeArchiveFile(dest, entry.GraphPath, buf.Bytes()); err != nil {
			return out, err
		}

		if rec.HasBinary() {
			digest := *rec.Binary
			entry.Digest = &digest
			if options.mode != model.BinaryModeSkip {
				entry.BinaryMode = options.mode
				entry.BinaryPath = model.GetDumpPathToBinary(rel)
				switch options.mode {
				case model.BinaryModeTruncate:
					if err := writeArchiveFile(dest, entry.BinaryPath, nil); err != nil {
						return out, err
					}
				case model.BinaryModeInclude:
					jobs = append(jobs, binJob{uid: rec.UID, rec: digest, path: entry.BinaryPath})
				}
			}
		}
		manifest.Entries = append(manifest.Entries, entry)
		out.Resources++
	}

	// payload copies parallelize; everything above ran serially against
	// the transaction scope, which is not goroutine safe
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxParallel)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			key := model.GetBlobPathToPayload(job.rec.Algorithm, job.rec.Digest)
			rd, err := r.blobs.Get(gctx, key)
			if err != nil {
				return fmt.Errorf("dump payload for %q (key %q): %w", job.uid, key, err)
			}
			defer func() {
				_ = rd.Close()
			}()
			if err := dest.MkdirAll(filepath.Dir(job.path), 0755); err != nil {
				return err
			}
			return afero.WriteReader(dest, job.path, rd)
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	out.Binaries = uint64(len(jobs))

	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return out, err
	}
	if err := writeArchiveFile(dest, model.GetDumpPathToManifest(), data); err != nil {
		return out, err
	}
	// marker goes last: its presence asserts the whole tree is complete
	if err := writeArchiveFile(dest, model.GetDumpPathToCompletionMarker(), []byte(manifest.ID+"\n")); err != nil {
		return out, err
	}
	out.ManifestID = manifest.ID

	r.l.Info("dump complete",
		zap.String("src", string(src)),
		zap.String("dest", destPath),
		zap.String("manifest_id", manifest.ID),
		zap.String("binary_mode", string(options.mode)),
		zap.Uint64("resources", out.Resources),
		zap.Uint64("binaries", out.Binaries),
	)
	return out, nil
}

// dumpTreeUID maps a source UID onto its position in the dump tree: the
// dump root itself lands at the tree root, descendants keep their path
// relative to it.
func dumpTreeUID(src, uid model.UID) model.UID {
	if uid == src {
		return model.RootUID
	}
	return model.RootUID.Join(uid.RelativeTo(src))
}

func writeArchiveFile(fs afero.Fs, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return afero.WriteFile(fs, path, data, 0644)
}
