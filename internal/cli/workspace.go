package cli

import (
	"fmt"
	"path/filepath"

	"github.com/ebbvc/ebb/internal/config"
	"github.com/ebbvc/ebb/internal/ebb"
	"github.com/ebbvc/ebb/internal/gitstore"
)

// workspace bundles everything a subcommand needs to read the latest
// revision and, if it mutates, commit the next one.
type workspace struct {
	root      string
	store     *gitstore.Store
	repos     *ebb.Repository
	latestRev int // index of the most recently committed revision
}

func snapshotDirPath(root, snapshotDir string) string {
	if snapshotDir == "" {
		return root
	}
	return filepath.Join(root, snapshotDir)
}

// openWorkspace loads the workspace config, opens its git-backed
// revision store, and replays every committed revision through the text
// codec so that cross-revision lookups (FindElRevByPath) and
// BranchInstanceID stay consistent with history.
func openWorkspace(root string) (*workspace, error) {
	if !config.IsInitialized(root) {
		return nil, fmt.Errorf("workspace %q is not initialized; run \"ebb init\" first", root)
	}
	snapshotDir, err := config.GetSnapshotDir(root)
	if err != nil {
		return nil, err
	}
	store, err := gitstore.Open(snapshotDirPath(root, snapshotDir))
	if err != nil {
		return nil, err
	}

	count, err := store.RevisionCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("revision store at %q has no committed revisions", snapshotDir)
	}

	repos := ebb.NewRepository()
	for rev := 0; rev < count; rev++ {
		text, err := store.ReadRevisionText(rev)
		if err != nil {
			return nil, fmt.Errorf("read revision %d: %w", rev, err)
		}
		rr, err := ebb.Parse(repos, text)
		if err != nil {
			return nil, fmt.Errorf("parse revision %d: %w", rev, err)
		}
		repos.AppendRevisionRoot(rr)
	}

	return &workspace{root: root, store: store, repos: repos, latestRev: count - 1}, nil
}

// latest returns the most recently committed revision root.
func (w *workspace) latest() (*ebb.RevisionRoot, error) {
	return w.repos.RevisionRoot(w.latestRev)
}

// commitNext serializes rr as the next revision (auto-purging orphans
// first when the workspace is configured to) and appends it to the
// store. rr.Rev is updated in place to the new revision number.
func (w *workspace) commitNext(rr *ebb.RevisionRoot, message string) (int, error) {
	nextRev := w.latestRev + 1

	autoPurge, err := config.GetAutoPurgeOrphans(w.root)
	if err != nil {
		return 0, err
	}
	if autoPurge {
		ebb.PurgeRecursive(rr.RootBranch)
	}

	rr.Rev = nextRev
	text := ebb.Serialize(rr)
	if _, err := w.store.CommitRevision(nextRev, text, message); err != nil {
		return 0, err
	}
	w.latestRev = nextRev
	return nextRev, nil
}
