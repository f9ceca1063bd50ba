// Package store abstracts where entity snapshot files come from: a local
// directory or a (read-only) remote git repository.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dnswlt/metaview/internal/catalog"
	"github.com/dnswlt/metaview/internal/gitclient"
)

var ErrNoSuchRef = errors.New("no such ref")

// Source is the abstraction over different types of storage layers,
// in particular local disk (non-versioned) and a git repo.
type Source interface {
	// Refresh updates the internal state of the source (e.g., via git fetch).
	// For a disk store, this is a no-op.
	Refresh() error
	// Store returns a handle to a store at the given ref.
	// For non-versioned disk-based stores, ref must be "".
	Store(ref string) (Store, error)
}

// Store is a minimal read-only abstraction to list and read files.
type Store interface {
	// ListFiles lists all files in dir (recursively).
	// The resulting paths are relative to the store's root directory,
	// so they can be passed to ReadFile unmodified.
	ListFiles(dir string) ([]string, error)
	// ReadFile reads the contents of the given relative path.
	ReadFile(path string) ([]byte, error)
}

// DiskStore reads files from a directory on the local file system.
type DiskStore struct {
	rootDir string
}

var _ Source = (*DiskStore)(nil)
var _ Store = (*DiskStore)(nil)

func NewDiskStore(rootDir string) *DiskStore {
	return &DiskStore{
		rootDir: rootDir,
	}
}

func (d *DiskStore) Refresh() error {
	return nil
}

func (d *DiskStore) Store(ref string) (Store, error) {
	if ref != "" {
		return nil, fmt.Errorf("invalid ref %q: %w", ref, ErrNoSuchRef)
	}
	return d, nil
}

func (d *DiskStore) ListFiles(dir string) ([]string, error) {
	return listFilesRecursively(d.rootDir, dir)
}

func resolveRelPath(root, subpath string) (string, error) {
	fullPath := filepath.Join(root, subpath)

	// Verify ancestry by calculating the relative path from the root.
	rel, err := filepath.Rel(root, fullPath)
	if err != nil {
		return "", fmt.Errorf("not a relative path: %v", err)
	}
	// A relative path escaping the root starts with ".."
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q escapes root directory", subpath)
	}

	return fullPath, nil
}

func (d *DiskStore) ReadFile(path string) ([]byte, error) {
	fullPath, err := resolveRelPath(d.rootDir, path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(fullPath)
}

// GitSource reads snapshot files from a remote git repository.
type GitSource struct {
	client     *gitclient.Client
	defaultRef string   // ref to use if the empty ref ("") is requested
	refs       []string // cached list of available references
}

// gitStore is a view over a single revision in a GitSource.
type gitStore struct {
	client *gitclient.Client
	ref    string
}

var _ Source = (*GitSource)(nil)
var _ Store = (*gitStore)(nil)

func NewGitSource(client *gitclient.Client, defaultRef string) *GitSource {
	return &GitSource{
		client:     client,
		defaultRef: defaultRef,
	}
}

func (g *GitSource) DefaultRef() string {
	return g.defaultRef
}

func (g *GitSource) Refresh() error {
	g.refs = nil
	return g.client.Update()
}

func (g *GitSource) Store(ref string) (Store, error) {
	if ref == "" {
		ref = g.defaultRef
	}
	refs, err := g.ListReferences()
	if err != nil {
		return nil, fmt.Errorf("cannot list references: %v", err)
	}
	if !slices.Contains(refs, ref) {
		return nil, ErrNoSuchRef
	}
	return &gitStore{
		client: g.client,
		ref:    ref,
	}, nil
}

func (g *GitSource) ListReferences() ([]string, error) {
	if g.refs != nil {
		return g.refs, nil
	}
	refs, err := g.client.ListReferences()
	if err != nil {
		return nil, err
	}
	slices.Sort(refs)
	g.refs = refs
	return refs, nil
}

func (g *gitStore) ListFiles(dir string) ([]string, error) {
	files, err := g.client.ListFilesRecursive(g.ref, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %v", err)
	}
	// Make relative to gitStore root.
	result := make([]string, len(files))
	for i, f := range files {
		// Avoid using filepath here, as gitStore needs "/" on any OS.
		result[i] = path.Join(dir, f)
	}
	return result, nil
}

func (g *gitStore) ReadFile(path string) ([]byte, error) {
	return g.client.ReadFile(g.ref, path)
}

// ReadEntities reads all entity snapshot documents from the YAML file at path.
func ReadEntities(st Store, path string) ([]*catalog.Entity, error) {
	bs, err := st.ReadFile(path)
	if err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true) // be strict and error out on any unknown field

	var entities []*catalog.Entity

	for {
		var e catalog.Entity
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML document in %q: %w", path, err)
		}
		// Blank documents (e.g. just "---") decode to the zero value.
		if e.URN == "" && e.Type == "" {
			continue
		}
		entities = append(entities, &e)
	}

	return entities, nil
}

// listFilesRecursively lists all files in subDir, which must be a relative
// path specifying a sub-directory of rootDir. The resulting paths are
// relative to rootDir.
func listFilesRecursively(rootDir, subDir string) ([]string, error) {
	var files []string

	startDir := filepath.Join(rootDir, subDir)
	err := filepath.WalkDir(startDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		files = append(files, relPath)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// SnapshotFiles lists all *.yml and *.yaml files under snapshotRoot, which
// must be a relative path (relative to the store's root).
func SnapshotFiles(st Store, snapshotRoot string) ([]string, error) {
	allFiles, err := st.ListFiles(snapshotRoot)
	if err != nil {
		return nil, err
	}
	var result []string
	for _, f := range allFiles {
		lower := strings.ToLower(f)
		if strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".yaml") {
			result = append(result, f)
		}
	}

	return result, nil
}
