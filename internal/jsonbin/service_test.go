package jsonbin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

func newMockService(t *testing.T) *Service {
	t.Helper()
	return NewService(nil, BinIDs{}, true, 5)
}

func TestMockModeSeededGameData(t *testing.T) {
	s := newMockService(t)
	ctx := context.Background()

	if !s.MockEnabled(ctx) {
		t.Fatalf("expected mock mode without a client")
	}
	game := s.GameData(ctx)
	if len(game.Tasks) == 0 || len(game.Users) == 0 {
		t.Fatalf("embedded defaults missing: %d tasks, %d users", len(game.Tasks), len(game.Users))
	}
}

func TestMockModeProgressRoundTrip(t *testing.T) {
	s := newMockService(t)
	ctx := context.Background()

	snap := &bingodto.BoardSnapshot{BoardSize: 5, BingoCount: 1, Tasks: []string{"A"}}
	if err := s.SavePlayerProgress(ctx, "alice", snap); err != nil {
		t.Fatalf("SavePlayerProgress: %v", err)
	}

	got := s.PlayerProgress(ctx, "alice")
	if got == nil || got.BingoCount != 1 {
		t.Fatalf("unexpected progress: %+v", got)
	}
	if got.LastUpdated.IsZero() {
		t.Fatalf("save must stamp lastUpdated")
	}

	if err := s.DeletePlayerProgress(ctx, "alice"); err != nil {
		t.Fatalf("DeletePlayerProgress: %v", err)
	}
	if s.PlayerProgress(ctx, "alice") != nil {
		t.Fatalf("progress not deleted")
	}
}

func TestMockModeSettingsDefault(t *testing.T) {
	s := newMockService(t)
	ctx := context.Background()

	if got := s.Settings(ctx).BoardSize; got != 5 {
		t.Fatalf("expected default board size 5, got %d", got)
	}
	if err := s.UpdateSettings(ctx, &bingodto.SettingsDocument{BoardSize: 3}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if got := s.Settings(ctx).BoardSize; got != 3 {
		t.Fatalf("expected board size 3, got %d", got)
	}
}

func TestDegradeToDefaultsOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, WithRetry(1), WithRetryDelay(time.Millisecond))
	s := NewService(client, BinIDs{
		GameData: "g", Progress: "p", Winners: "w", Settings: "s",
	}, false, 5)
	ctx := context.Background()

	if game := s.GameData(ctx); len(game.Tasks) != 0 || len(game.Users) != 0 {
		t.Fatalf("expected empty game data, got %+v", game)
	}
	if winners := s.Winners(ctx); len(winners.Winners) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", winners)
	}
	if all := s.AllProgress(ctx); len(all) != 0 {
		t.Fatalf("expected empty progress, got %+v", all)
	}
	if got := s.Settings(ctx).BoardSize; got != 5 {
		t.Fatalf("expected default board size, got %d", got)
	}
}

func TestTogglesFallbackWhenUnset(t *testing.T) {
	s := NewService(NewClient("http://127.0.0.1:0"), BinIDs{}, true, 5)
	if !s.MockEnabled(context.Background()) {
		t.Fatalf("empty toggles bin must fall back to config default")
	}
}
