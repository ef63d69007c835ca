// Package git implements ports.VersionControl on top of the git command line.
package git

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/zerr"
)

const gitBinary = "git"

// Client mirrors repositories with git.
type Client struct {
	exec   ports.Executor
	remote string
	branch string
}

// NewClient creates a Client. remote is the clone URL template and branch the
// branch checked out before pulling; empty values fall back to the defaults.
func NewClient(exec ports.Executor, remote, branch string) *Client {
	if remote == "" {
		remote = domain.DefaultRemote
	}
	if branch == "" {
		branch = domain.DefaultBranch
	}
	return &Client{exec: exec, remote: remote, branch: branch}
}

// Sync clones repo below cloneDir, or updates the existing mirror.
// It returns the mirror path.
func (c *Client) Sync(ctx context.Context, repo domain.Repository, cloneDir string) (string, error) {
	path := domain.ClonePath(cloneDir, repo.PackageName())

	exists, err := isRepository(path)
	if err != nil {
		return "", c.syncError(err, repo, path)
	}

	if !exists {
		if err := os.MkdirAll(cloneDir, domain.DirPerm); err != nil {
			return "", c.syncError(err, repo, path)
		}
		err := c.git(ctx, "", "clone", repo.CloneURL(c.remote), path)
		if err != nil {
			return "", c.syncError(err, repo, path)
		}
		return path, nil
	}

	// Tags checked out by earlier builds leave a detached HEAD behind.
	for _, args := range [][]string{
		{"checkout", c.branch},
		{"pull"},
		{"checkout", c.branch},
	} {
		if err := c.git(ctx, path, args...); err != nil {
			return "", c.syncError(err, repo, path)
		}
	}
	return path, nil
}

// ListTags returns the tags of the mirror at repoPath in ascending version order.
func (c *Client) ListTags(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.exec.Output(ctx, ports.Command{
		Name: gitBinary,
		Args: []string{"tag", "--sort=v:refname"},
		Dir:  repoPath,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTagListFailed.Error()), "path", repoPath)
	}
	return parseTags(out), nil
}

// Checkout checks out ref in the mirror at repoPath.
func (c *Client) Checkout(ctx context.Context, repoPath, ref string) error {
	if err := c.git(ctx, repoPath, "checkout", ref); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrCheckoutFailed.Error()), "ref", ref)
		return zerr.With(err, "path", repoPath)
	}
	return nil
}

func (c *Client) git(ctx context.Context, dir string, args ...string) error {
	return c.exec.Run(ctx, ports.Command{Name: gitBinary, Args: args, Dir: dir})
}

func (c *Client) syncError(err error, repo domain.Repository, path string) error {
	wrapped := zerr.With(zerr.Wrap(err, domain.ErrRepositorySyncFailed.Error()), "repository", repo.String())
	return zerr.With(wrapped, "path", path)
}

func isRepository(path string) (bool, error) {
	_, err := os.Stat(filepath.Join(path, ".git"))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func parseTags(out string) []string {
	lines := strings.Split(out, "\n")
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

var _ ports.VersionControl = (*Client)(nil)
