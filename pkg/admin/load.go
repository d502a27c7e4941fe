package admin

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/lakeland-data/lakeland/pkg/admin/status"
	"github.com/lakeland-data/lakeland/pkg/fixity"
	"github.com/lakeland-data/lakeland/pkg/model"
	"github.com/lakeland-data/lakeland/pkg/store"
)

type (
	// LoadOption modifies the behavior of Load.
	LoadOption func(*loadOptions)

	loadOptions struct {
		verify bool
	}
)

// WithLoadVerify toggles payload digest verification during load.
// Enabled by default; disable for best-effort restores of archives
// known to be damaged.
func WithLoadVerify(enabled bool) LoadOption {
	return func(o *loadOptions) {
		o.verify = enabled
	}
}

func defaultLoadOptions(opts []LoadOption) *loadOptions {
	o := &loadOptions{verify: true}
	for _, apply := range opts {
		apply(o)
	}
	return o
}

// LoadResult summarizes a completed load.
type LoadResult struct {
	Resources uint64 `json:"resources" yaml:"resources"`
	Binaries  uint64 `json:"binaries" yaml:"binaries"`
}

// Load reconstructs resources under dest from a dump tree at srcPath,
// produced by this implementation or a protocol-compatible one. The
// tree must carry the completion marker; each payload's bytes are
// verified against the manifest's declared digest unless verification
// is disabled. Loading is destructive at the destination: any existing
// subtree under dest is replaced inside the same write scope, so a
// failed load rolls back to the pre-load graph (payload bytes already
// staged into the content-addressed store are unreferenced and fall to
// the next cleanup).
func (r *Repository) Load(ctx context.Context, srcPath string, dest model.UID, opts ...LoadOption) (LoadResult, error) {
	var out LoadResult
	options := defaultLoadOptions(opts)
	if err := dest.Validate(); err != nil {
		return out, err
	}
	src := afero.NewBasePathFs(r.archiveFs, srcPath)

	marker, err := afero.Exists(src, model.GetDumpPathToCompletionMarker())
	if err != nil {
		return out, err
	}
	if !marker {
		return out, status.ErrCorruptManifest.Wrap(
			fmt.Errorf("dump tree %q has no completion marker", srcPath))
	}

	data, err := afero.ReadFile(src, model.GetDumpPathToManifest())
	if err != nil {
		return out, status.ErrCorruptManifest.Wrap(err)
	}
	var manifest model.ManifestDescriptor
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return out, status.ErrCorruptManifest.Wrap(err)
	}
	if err := manifest.Validate(); err != nil {
		return out, status.ErrCorruptManifest.Wrap(err)
	}
	srcNs := model.Namespace(manifest.Namespace)

	err = r.retryWrite(func(txn store.Txn) error {
		// replace whatever lives under dest
		var doomed []model.UID
		err := txn.Resources(func(rec *model.ResourceRecord) error {
			if rec.UID == dest || rec.UID.IsDescendantOf(dest) {
				doomed = append(doomed, rec.UID)
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, uid := range doomed {
			if err := r.deleteResourceGraph(txn, uid); err != nil {
				return err
			}
		}

		out = LoadResult{}
		loaded := make(map[model.UID]struct{}, len(manifest.Entries))
		for i := range manifest.Entries {
			if err := cancelled(ctx); err != nil {
				return err
			}
			entry := &manifest.Entries[i]
			if _, dup := loaded[entry.UID]; dup {
				continue
			}
			loaded[entry.UID] = struct{}{}

			newUID := rebaseUID(manifest.SourceRoot, dest, entry.UID)
			triples, err := r.loadEntryGraph(src, srcNs, manifest.SourceRoot, dest, entry)
			if err != nil {
				return err
			}
			rec := r.buildRecord(newUID, entry, triples)
			restored, err := r.restorePayload(ctx, src, entry, options.verify)
			if err != nil {
				return err
			}
			if restored {
				out.Binaries++
			}
			if err := putResource(txn, rec, triples); err != nil {
				return err
			}
			out.Resources++
		}
		return nil
	})
	if err != nil {
		return LoadResult{}, err
	}

	r.l.Info("load complete",
		zap.String("src", srcPath),
		zap.String("dest", string(dest)),
		zap.String("manifest_id", manifest.ID),
		zap.Uint64("resources", out.Resources),
		zap.Uint64("binaries", out.Binaries),
	)
	return out, nil
}

// loadEntryGraph reads and rebases one entry's statements.
func (r *Repository) loadEntryGraph(src afero.Fs, srcNs model.Namespace, srcRoot, dest model.UID, entry *model.ManifestEntry) ([]model.Triple, error) {
	data, err := afero.ReadFile(src, entry.GraphPath)
	if err != nil {
		return nil, status.ErrCorruptManifest.Wrap(
			fmt.Errorf("entry %q: graph file %q: %w", entry.UID, entry.GraphPath, err))
	}
	triples, err := model.DecodeGraph(bytes.NewReader(data))
	if err != nil {
		return nil, status.ErrCorruptManifest.Wrap(
			fmt.Errorf("entry %q: %w", entry.UID, err))
	}
	for i := range triples {
		triples[i].Subject = rebaseURI(srcNs, srcRoot, r.ns, dest, triples[i].Subject)
		if triples[i].Object.Kind == model.TermIRI {
			triples[i].Object.Value = rebaseURI(srcNs, srcRoot, r.ns, dest, triples[i].Object.Value)
		}
	}
	return triples, nil
}

// buildRecord derives the administrative record from an entry and its
// rebased statements.
func (r *Repository) buildRecord(uid model.UID, entry *model.ManifestEntry, triples []model.Triple) *model.ResourceRecord {
	now := time.Now().UTC()
	rec := &model.ResourceRecord{
		UID:      uid,
		Created:  now,
		Modified: now,
	}
	if entry.Digest != nil {
		digest := *entry.Digest
		rec.Binary = &digest
	}
	subject := r.ns.URIFor(uid)
	for _, t := range triples {
		if t.Subject != subject {
			continue
		}
		switch t.Predicate {
		case model.PredType:
			if t.Object.Kind == model.TermIRI {
				rec.Types = append(rec.Types, t.Object.Value)
			}
		case model.PredCreated:
			if ts, ok := parseDateTime(t.Object.Value); ok {
				rec.Created = ts
			}
		case model.PredModified:
			if ts, ok := parseDateTime(t.Object.Value); ok {
				rec.Modified = ts
			}
		}
	}
	return rec
}

// restorePayload writes an entry's payload bytes into the binary store,
// verifying them against the declared digest first. Only include-mode
// entries carry restorable bytes; truncate placeholders restore
// metadata only.
func (r *Repository) restorePayload(ctx context.Context, src afero.Fs, entry *model.ManifestEntry, verify bool) (bool, error) {
	if entry.BinaryMode != model.BinaryModeInclude || entry.BinaryPath == "" || entry.Digest == nil {
		return false, nil
	}
	data, err := afero.ReadFile(src, entry.BinaryPath)
	if err != nil {
		return false, status.ErrCorruptManifest.Wrap(
			fmt.Errorf("entry %q: payload file %q: %w", entry.UID, entry.BinaryPath, err))
	}
	if verify {
		ok, actual, err := fixity.Verify(*entry.Digest, bytes.NewReader(data))
		if err != nil {
			return false, status.ErrCorruptManifest.Wrap(
				fmt.Errorf("entry %q: %w", entry.UID, err))
		}
		if !ok {
			return false, status.ErrCorruptManifest.Wrap(status.ErrDigestMismatch.Wrap(
				fmt.Errorf("entry %q: declared %s, recomputed %s", entry.UID, entry.Digest.Digest, actual)))
		}
	}
	key := model.GetBlobPathToPayload(entry.Digest.Algorithm, entry.Digest.Digest)
	if err := r.blobs.Put(ctx, key, bytes.NewReader(data)); err != nil {
		return false, err
	}
	return true, nil
}

// rebaseUID maps a UID from the dumped subtree into the destination.
func rebaseUID(srcRoot, dest, uid model.UID) model.UID {
	switch {
	case uid == srcRoot:
		return dest
	case uid.IsDescendantOf(srcRoot):
		return dest.Join(uid.RelativeTo(srcRoot))
	default:
		// outside the dumped subtree (e.g. a containment backlink):
		// keep its own UID
		return uid
	}
}

// rebaseURI maps an internal URI from the manifest's namespace into
// this repository's namespace, relocating subjects of the dumped
// subtree under dest. External URIs pass through untouched.
func rebaseURI(srcNs model.Namespace, srcRoot model.UID, ns model.Namespace, dest model.UID, uri string) string {
	if !srcNs.IsInternal(uri) {
		return uri
	}
	base, frag := splitFragment(uri)
	uid, ok := srcNs.UIDFor(base)
	if !ok {
		return uri
	}
	rebased := ns.URIFor(rebaseUID(srcRoot, dest, uid))
	if frag != "" {
		rebased += "#" + frag
	}
	return rebased
}

func splitFragment(uri string) (string, string) {
	for i := 0; i < len(uri); i++ {
		if uri[i] == '#' {
			return uri[:i], uri[i+1:]
		}
	}
	return uri, ""
}

func parseDateTime(v string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
