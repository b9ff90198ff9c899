package gitstore

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// snapshotFile is the path, within each revision's commit tree, holding
// that revision's serialized text (internal/ebb.Serialize output).
const snapshotFile = "EBB_REVISION"

// Store is a git repository used as a revision store: commit N's tree is
// revision N's working files plus the snapshot text that describes them.
type Store struct {
	repo *gogit.Repository
	path string
}

// Open opens an existing git repository at path as a revision store.
func Open(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	repo, err := gogit.PlainOpen(absPath)
	if err != nil {
		return nil, fmt.Errorf("open revision store: %w", err)
	}
	return &Store{repo: repo, path: absPath}, nil
}

// Init creates a fresh git repository at path to serve as a revision
// store.
func Init(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o750); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	repo, err := gogit.PlainInit(absPath, false)
	if err != nil {
		return nil, fmt.Errorf("init revision store: %w", err)
	}
	return &Store{repo: repo, path: absPath}, nil
}

// Path returns the store's working directory.
func (s *Store) Path() string { return s.path }

// CommitRevision writes snapshotText as the EBB_REVISION file at the
// store root and commits the current working tree, producing the commit
// for revision rev. Callers are responsible for the working tree already
// holding the right file content for any "normal" elements added or
// changed in this revision.
func (s *Store) CommitRevision(rev int, snapshotText, message string) (plumbing.Hash, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("get worktree: %w", err)
	}

	snapshotPath := filepath.Join(s.path, snapshotFile)
	if err := os.WriteFile(snapshotPath, []byte(snapshotText), 0o644); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("write snapshot file: %w", err)
	}
	if _, err := wt.Add("."); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("stage revision %d: %w", rev, err)
	}

	if message == "" {
		message = fmt.Sprintf("revision %d", rev)
	}
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "ebb", Email: "ebb@localhost"},
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commit revision %d: %w", rev, err)
	}
	return hash, nil
}

// revisionCommits walks the HEAD history back to the root and returns
// commits ordered oldest-first, so that commits[rev] is revision rev's
// commit. This is the commit-number-to-revision mapping: the store never
// rewrites or reorders history, so a commit's distance from the root is
// stable once written.
func (s *Store) revisionCommits() ([]*object.Commit, error) {
	head, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}
	iter, err := s.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}
	var commits []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate log: %w", err)
	}
	// Log yields HEAD first; reverse so that index equals distance from
	// the root commit.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

// ReadRevisionText returns the EBB_REVISION snapshot text committed for
// revision rev (0-based, oldest commit first).
func (s *Store) ReadRevisionText(rev int) (string, error) {
	commits, err := s.revisionCommits()
	if err != nil {
		return "", err
	}
	if rev < 0 || rev >= len(commits) {
		return "", fmt.Errorf("no commit for revision %d (have %d)", rev, len(commits))
	}
	return s.blobAtPath(commits[rev], snapshotFile)
}

// ResolveRRPath reads the file content at rrpath within revision rev's
// committed tree. This is how a "normal" element's Reference{rev,
// relpath} content is turned into actual bytes.
func (s *Store) ResolveRRPath(rev int, rrpath string) (string, error) {
	commits, err := s.revisionCommits()
	if err != nil {
		return "", err
	}
	if rev < 0 || rev >= len(commits) {
		return "", fmt.Errorf("no commit for revision %d (have %d)", rev, len(commits))
	}
	return s.blobAtPath(commits[rev], rrpath)
}

func (s *Store) blobAtPath(commit *object.Commit, path string) (string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return "", fmt.Errorf("get tree for commit %s: %w", commit.Hash, err)
	}
	if path == "" {
		return "", nil
	}
	file, err := tree.File(path)
	if err != nil {
		return "", fmt.Errorf("find %q in commit %s: %w", path, commit.Hash, err)
	}
	reader, err := file.Reader()
	if err != nil {
		return "", fmt.Errorf("open %q: %w", path, err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	return buf.String(), nil
}

// RevisionCount returns the number of commits recorded so far.
func (s *Store) RevisionCount() (int, error) {
	commits, err := s.revisionCommits()
	if err != nil {
		return 0, err
	}
	return len(commits), nil
}
