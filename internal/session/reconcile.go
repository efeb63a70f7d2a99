package session

import (
	"math/rand"

	"github.com/bishwajeet-gh/bingo/internal/bingo"
	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

// Reconcile merges the local and remote snapshots of one player's board.
// Whole snapshots win or lose together: the strictly later LastSynced wins,
// equal timestamps keep local. A winner generated for a different board
// dimension than the one currently configured is discarded and replaced by
// a fresh shuffle, losing its selections and notes. Never fails: absent
// snapshots degrade to the other side or to a fresh board.
//
// The caller persists the result to the local store so the next load sees
// a consistent timestamp.
func Reconcile(local, remote *bingodto.BoardSnapshot, dimension int, taskPool []string, rng *rand.Rand) *bingodto.BoardSnapshot {
	chosen := pick(local, remote)
	if chosen == nil || chosen.BoardSize != dimension {
		return bingo.NewBoard(taskPool, dimension, rng).Snapshot()
	}
	return chosen.Clone()
}

func pick(local, remote *bingodto.BoardSnapshot) *bingodto.BoardSnapshot {
	switch {
	case local == nil:
		return remote
	case remote == nil:
		return local
	case remote.LastSynced.After(local.LastSynced):
		return remote
	default:
		return local
	}
}
