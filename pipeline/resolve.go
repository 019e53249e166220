package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// ResolveFiles walks every root with afs.Service, the way
// analyzer/package.go walks a directory tree, collecting file URLs whose
// extension matches one of extensions (e.g. ".java", ".go"); with no
// extensions given, every file matches. Every root is passed to fs.Walk and
// filtered the same way: a root naming a single file gets no separate
// handling and is not included unless it passes the extension filter.
func ResolveFiles(ctx context.Context, fs afs.Service, roots []string, extensions ...string) ([]string, error) {
	if fs == nil {
		fs = afs.New()
	}
	var out []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !hasExtension(info.Name(), extensions) {
			return true, nil
		}
		out = append(out, url.Join(baseURL, parent, info.Name()))
		return true, nil
	}
	for _, root := range roots {
		if err := fs.Walk(ctx, root, visitor); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func hasExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
