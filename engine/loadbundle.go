package engine

import (
	"context"
	"io"
	"os"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// hashKey is an arbitrary fixed 32-byte key (highwayhash requires
// exactly that length); it only needs to be stable across a process
// lifetime so the same bytes always hash the same, the way
// inspector/graph.Hash fixes its own key.
var hashKey = []byte("a11yscan-content-hash-key-000000")

// LoadBundle walks root with fs, classifying every JavaScript/
// TypeScript file that passes cfg's include/exclude globs into a
// SourceBundle. HTML fragments and CSS models are not produced here:
// concrete markup/stylesheet parsing is an external collaborator's
// job (the CLI layer supplies them), matching how the teacher's
// AnalyzeDir/analyzePackages only ever walk and classify, leaving
// actual language-specific parsing to AnalyzeSourceCode per file.
func LoadBundle(ctx context.Context, fs afs.Service, root string, cfg RunConfig) (*SourceBundle, error) {
	bundle := NewSourceBundle()

	visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return ScriptFiles(info), nil
		}
		if !ScriptFiles(info) {
			return true, nil
		}
		fileURL := url.Join(baseURL, parent, info.Name())
		rel := relPath(root, fileURL)
		if !matchesGlobs(rel, cfg.IncludePatterns, cfg.ExcludePatterns) {
			return true, nil
		}

		data, err := fs.DownloadWithURL(ctx, fileURL)
		if err != nil {
			return false, err
		}
		hash, err := highwayhash.New64(hashKey)
		if err != nil {
			return false, err
		}
		_, _ = hash.Write(data)

		bundle.AddScript(ScriptSource{
			File:        fileURL,
			Src:         data,
			ContentHash: hash.Sum64(),
		})
		return true, nil
	}

	if err := fs.Walk(ctx, root, storage.OnVisit(visitor)); err != nil {
		return nil, err
	}
	return bundle, nil
}

// NewFileSystem returns the default afs.Service used by cmd/a11yscan,
// exposed here so callers needn't import viant/afs directly just to
// invoke LoadBundle.
func NewFileSystem() afs.Service {
	return afs.New()
}
