package repo

import (
	"fmt"

	"github.com/AlexanderThaller/tack/pkg/object"
)

// HistoryEntry pairs a commit with its hash during a history walk.
type HistoryEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// HistoryIter lazily walks the commit graph from a starting commit,
// producing commits in reverse-chronological topological order: a commit is
// never produced before any of the commits that reached it (its
// descendants on the walked paths). Parent links are followed depth-first,
// first parent first. The ordering guarantee relies on lineage being
// single-parent, which CreateCommit enforces; a hand-crafted multi-parent
// object would only be ordered along its first-parent chain.
//
// The walk carries cycle detection: a parent edge that points back into the
// chain currently being walked means the graph is malformed, and Next fails
// with object.ErrCorrupt instead of looping forever.
type HistoryIter struct {
	repo  *Repo
	stack []*historyFrame
	state map[object.Hash]walkState
}

type walkState byte

const (
	walkInProgress walkState = iota + 1
	walkDone
)

type historyFrame struct {
	hash       object.Hash
	commit     *object.CommitObj
	nextParent int
}

// History returns a fresh iterator over the commits reachable from start.
// Every call returns an independent iterator, so callers may run multiple
// walks over the same history.
func (r *Repo) History(start object.Hash) *HistoryIter {
	it := &HistoryIter{
		repo:  r,
		state: make(map[object.Hash]walkState),
	}
	it.push(start)
	return it
}

func (it *HistoryIter) push(h object.Hash) {
	it.stack = append(it.stack, &historyFrame{hash: h})
}

// Next returns the next commit in the walk. It returns (nil, nil) when the
// history is exhausted.
func (it *HistoryIter) Next() (*HistoryEntry, error) {
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]

		// First visit: load the commit, mark it in progress, emit it.
		if top.commit == nil {
			c, err := it.repo.Store.ReadCommit(top.hash)
			if err != nil {
				return nil, fmt.Errorf("history: read commit %s: %w", top.hash, err)
			}
			top.commit = c
			it.state[top.hash] = walkInProgress
			return &HistoryEntry{Hash: top.hash, Commit: c}, nil
		}

		// Descend into the next unvisited parent.
		if top.nextParent < len(top.commit.Parents) {
			p := top.commit.Parents[top.nextParent]
			top.nextParent++

			switch it.state[p] {
			case walkInProgress:
				// A parent that is also a descendant: the graph has a cycle.
				return nil, fmt.Errorf("history: commit %s lists ancestor-of-itself parent %s: %w",
					top.hash, p, object.ErrCorrupt)
			case walkDone:
				continue
			default:
				it.push(p)
			}
			continue
		}

		// All parents walked.
		it.state[top.hash] = walkDone
		it.stack = it.stack[:len(it.stack)-1]
	}
	return nil, nil
}

// Collect drains the iterator into a slice, up to limit entries
// (limit <= 0 means no limit).
func (it *HistoryIter) Collect(limit int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for limit <= 0 || len(entries) < limit {
		e, err := it.Next()
		if err != nil {
			return nil, err
		}
		if e == nil {
			break
		}
		entries = append(entries, *e)
	}
	return entries, nil
}
