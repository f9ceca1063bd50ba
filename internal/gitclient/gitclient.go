// Package gitclient reads snapshot files from a remote git repository
// without a working tree: the repository is cloned into memory and files are
// looked up directly in the object database, addressed by ref and path.
package gitclient

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Auth holds Basic Auth credentials.
// For Bitbucket Cloud access tokens, use "x-token-auth" as Username
// and the token as Password.
type Auth struct {
	Username string
	Password string // or Token
}

// Client holds the cloned repository in memory.
type Client struct {
	repo *git.Repository
	auth *http.BasicAuth
}

// New clones the repository at url into memory. No worktree is created;
// only the object database is fetched.
func New(url string, auth *Auth) (*Client, error) {
	storer := memory.NewStorage()

	cloneOpts := &git.CloneOptions{
		URL:        url,
		NoCheckout: true,
		Progress:   nil,
		Depth:      0, // full history, so arbitrary refs can be resolved
	}

	var basicAuth *http.BasicAuth
	if auth != nil {
		basicAuth = &http.BasicAuth{
			Username: auth.Username,
			Password: auth.Password,
		}
		cloneOpts.Auth = basicAuth
	}

	repo, err := git.Clone(storer, nil, cloneOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to clone %q: %w", url, err)
	}

	return &Client{repo: repo, auth: basicAuth}, nil
}

// Update fetches new objects and refs from the remote.
func (c *Client) Update() error {
	fetchOpts := &git.FetchOptions{
		Tags:  git.AllTags,
		Force: true,
	}
	if c.auth != nil {
		fetchOpts.Auth = c.auth
	}
	err := c.repo.Fetch(fetchOpts)
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("fetch failed: %w", err)
	}
	return nil
}

// DefaultBranch returns the branch the remote HEAD points at, falling back
// to "main" or "master" if HEAD cannot be resolved symbolically.
func (c *Client) DefaultBranch() (string, error) {
	if ref, err := c.repo.Reference(plumbing.HEAD, false); err == nil && ref.Type() == plumbing.SymbolicReference {
		return ref.Target().Short(), nil
	}
	refs, err := c.ListReferences()
	if err != nil {
		return "", err
	}
	for _, candidate := range []string{"main", "master"} {
		for _, r := range refs {
			if r == candidate {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("no default branch found")
}

// ListReferences returns the short names of all branches and tags.
func (c *Client) ListReferences() ([]string, error) {
	refMap := make(map[string]bool)

	refs, err := c.repo.References()
	if err != nil {
		return nil, err
	}

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if name.IsTag() || name.IsBranch() {
			refMap[name.Short()] = true
		} else if name.IsRemote() {
			// e.g. refs/remotes/origin/main -> Short() is "origin/main";
			// strip the remote name.
			short := name.Short()
			if slashIdx := strings.Index(short, "/"); slashIdx != -1 {
				refMap[short[slashIdx+1:]] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var references []string
	for v := range refMap {
		references = append(references, v)
	}
	return references, nil
}

func (c *Client) resolveRevision(revision string) (*plumbing.Hash, error) {
	hash, err := c.repo.ResolveRevision(plumbing.Revision(revision))
	if err == nil {
		return hash, nil
	}

	// Try with origin/ prefix if not found (common for clones).
	if !strings.HasPrefix(revision, "refs/") {
		if hash, err := c.repo.ResolveRevision(plumbing.Revision("origin/" + revision)); err == nil {
			return hash, nil
		}
	}

	return nil, fmt.Errorf("revision not found: %w", err)
}

func (c *Client) treeAt(revision string) (*object.Tree, error) {
	hash, err := c.resolveRevision(revision)
	if err != nil {
		return nil, fmt.Errorf("revision resolution failed: %w", err)
	}
	commit, err := c.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("commit lookup failed: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get root tree: %w", err)
	}
	return tree, nil
}

// ReadFile reads the blob at filePath in the given revision (tag or branch).
func (c *Client) ReadFile(revision, filePath string) ([]byte, error) {
	tree, err := c.treeAt(revision)
	if err != nil {
		return nil, err
	}

	file, err := tree.File(filePath)
	if err != nil {
		return nil, err // object.ErrFileNotFound if missing
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// ListFilesRecursive lists all files under dirPath in the given revision,
// relative to dirPath.
func (c *Client) ListFilesRecursive(revision, dirPath string) ([]string, error) {
	rootTree, err := c.treeAt(revision)
	if err != nil {
		return nil, err
	}

	targetTree := rootTree
	if dirPath != "" && dirPath != "." && dirPath != "/" {
		targetTree, err = rootTree.Tree(dirPath)
		if err != nil {
			return nil, fmt.Errorf("directory %q not found or invalid: %w", dirPath, err)
		}
	}

	var filePaths []string
	filesIter := targetTree.Files()
	defer filesIter.Close()

	err = filesIter.ForEach(func(f *object.File) error {
		filePaths = append(filePaths, f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iteration failed: %w", err)
	}

	return filePaths, nil
}
