package session

import (
	"testing"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

func TestMergeWinnerMonotonic(t *testing.T) {
	doc := &bingodto.WinnersDocument{Winners: []bingodto.WinnerEntry{{Name: "alice", Score: 5}}}

	if changed := MergeWinner(doc, "alice", 2); changed {
		t.Fatalf("lower count must not change the entry")
	}
	if doc.Winners[0].Score != 5 {
		t.Fatalf("score regressed to %d", doc.Winners[0].Score)
	}

	if changed := MergeWinner(doc, "alice", 7); !changed {
		t.Fatalf("higher count must raise the entry")
	}
	if doc.Winners[0].Score != 7 {
		t.Fatalf("score not raised: %d", doc.Winners[0].Score)
	}

	if changed := MergeWinner(doc, "bob", 1); !changed {
		t.Fatalf("new player must be appended")
	}
	if len(doc.Winners) != 2 || doc.Winners[1].Name != "bob" {
		t.Fatalf("unexpected winners: %+v", doc.Winners)
	}
}

func TestRemoveWinner(t *testing.T) {
	doc := &bingodto.WinnersDocument{Winners: []bingodto.WinnerEntry{
		{Name: "alice", Score: 2}, {Name: "bob", Score: 1},
	}}
	if !RemoveWinner(doc, "alice") {
		t.Fatalf("expected removal")
	}
	if len(doc.Winners) != 1 || doc.Winners[0].Name != "bob" {
		t.Fatalf("unexpected winners: %+v", doc.Winners)
	}
	if RemoveWinner(doc, "alice") {
		t.Fatalf("second removal must report false")
	}
}

func TestSortWinners(t *testing.T) {
	winners := []bingodto.WinnerEntry{
		{Name: "carol", Score: 1},
		{Name: "bob", Score: 3},
		{Name: "alice", Score: 1},
	}
	SortWinners(winners)
	if winners[0].Name != "bob" || winners[1].Name != "alice" || winners[2].Name != "carol" {
		t.Fatalf("unexpected order: %+v", winners)
	}
}
