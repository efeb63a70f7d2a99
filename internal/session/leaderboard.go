package session

import (
	"sort"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

// MergeWinner folds one player's bingo count into the leaderboard and
// reports whether the document changed. A stored score only ever rises:
// merging a lower count leaves the entry alone. Absent players are
// appended.
func MergeWinner(doc *bingodto.WinnersDocument, name string, score int) bool {
	for i := range doc.Winners {
		if doc.Winners[i].Name == name {
			if score > doc.Winners[i].Score {
				doc.Winners[i].Score = score
				return true
			}
			return false
		}
	}
	doc.Winners = append(doc.Winners, bingodto.WinnerEntry{Name: name, Score: score})
	return true
}

// RemoveWinner drops a player's entry, reporting whether one existed.
func RemoveWinner(doc *bingodto.WinnersDocument, name string) bool {
	for i := range doc.Winners {
		if doc.Winners[i].Name == name {
			doc.Winners = append(doc.Winners[:i], doc.Winners[i+1:]...)
			return true
		}
	}
	return false
}

// SortWinners orders entries by score descending, name ascending on ties.
func SortWinners(winners []bingodto.WinnerEntry) {
	sort.Slice(winners, func(i, j int) bool {
		if winners[i].Score != winners[j].Score {
			return winners[i].Score > winners[j].Score
		}
		return winners[i].Name < winners[j].Name
	})
}
