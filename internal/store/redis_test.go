package store

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStoreFromClient(rdb)
}

func sampleSnapshot() *bingodto.BoardSnapshot {
	return &bingodto.BoardSnapshot{
		Tasks:         []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"},
		SelectedCells: []int{0, 4},
		BingoCount:    0,
		NotesByIndex:  map[int]string{4: "center done"},
		BoardSize:     3,
		LastSynced:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if snap, err := st.Load(ctx, "alice"); err != nil || snap != nil {
		t.Fatalf("expected (nil, nil) for absent player, got (%v, %v)", snap, err)
	}

	want := sampleSnapshot()
	if err := st.Save(ctx, "alice", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.BoardSize != 3 || got.NotesByIndex[4] != "center done" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.LastSynced.Equal(want.LastSynced) {
		t.Fatalf("timestamp mismatch: %v vs %v", got.LastSynced, want.LastSynced)
	}
}

func TestRedisStorePlayersAndDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"bob", "alice"} {
		if err := st.Save(ctx, name, sampleSnapshot()); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	players, err := st.Players(ctx)
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if len(players) != 2 || players[0] != "alice" || players[1] != "bob" {
		t.Fatalf("unexpected players: %v", players)
	}

	if err := st.Delete(ctx, "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snap, err := st.Load(ctx, "alice"); err != nil || snap != nil {
		t.Fatalf("expected deleted player to be absent, got (%v, %v)", snap, err)
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	snap := sampleSnapshot()
	if err := st.Save(ctx, "carol", snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	snap.NotesByIndex[4] = "mutated after save"

	got, err := st.Load(ctx, "carol")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.NotesByIndex[4] != "center done" {
		t.Fatalf("store aliased caller memory: %q", got.NotesByIndex[4])
	}
}
