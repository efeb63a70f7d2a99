package jsonbin

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bishwajeet-gh/bingo/internal/obslog"
	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

// BinIDs names the logical documents in the hosted store.
type BinIDs struct {
	GameData string
	Progress string
	Winners  string
	Toggles  string
	Settings string
}

// Service exposes the typed document API on top of Client, degrading
// missing or malformed documents to safe empty defaults so the game stays
// usable offline. When mock mode is on (feature toggle or config fallback)
// all reads and writes hit an in-process backend seeded from embedded data.
//
// Progress and winners writes are whole-document read-modify-write with no
// optimistic concurrency: two sessions syncing at once can silently drop
// one side's update. That matches the backing store's API and is accepted.
type Service struct {
	client           *Client
	bins             BinIDs
	useMockDefault   bool
	defaultBoardSize int

	mu      sync.Mutex
	toggles *bingodto.TogglesDocument
	mock    *mockBackend
}

func NewService(client *Client, bins BinIDs, useMockDefault bool, defaultBoardSize int) *Service {
	return &Service{
		client:           client,
		bins:             bins,
		useMockDefault:   useMockDefault,
		defaultBoardSize: defaultBoardSize,
		mock:             newMockBackend(),
	}
}

// MockEnabled resolves the USE_MOCK feature toggle. The remote toggles
// document wins when reachable; the first successful fetch is cached for
// the session. Fetch failure falls back to the configured default.
func (s *Service) MockEnabled(ctx context.Context) bool {
	if s.client == nil || s.bins.Toggles == "" {
		return s.useMockDefault
	}
	s.mu.Lock()
	cached := s.toggles
	s.mu.Unlock()
	if cached != nil {
		return cached.UseMock
	}
	var doc bingodto.TogglesDocument
	if err := s.client.GetDocument(ctx, s.bins.Toggles, &doc); err != nil {
		obslog.L().Warn("toggles fetch failed, using config fallback", zap.Error(err))
		return s.useMockDefault
	}
	s.mu.Lock()
	s.toggles = &doc
	s.mu.Unlock()
	return doc.UseMock
}

// GameData returns the authoritative task pool and roster, or an empty
// document if the remote copy is missing or malformed.
func (s *Service) GameData(ctx context.Context) *bingodto.GameDataDocument {
	if s.MockEnabled(ctx) {
		return s.mock.gameData()
	}
	var doc bingodto.GameDataDocument
	if err := s.client.GetDocument(ctx, s.bins.GameData, &doc); err != nil {
		obslog.L().Warn("game data fetch failed, using empty defaults", zap.Error(err))
		return &bingodto.GameDataDocument{}
	}
	return &doc
}

// UpdateGameData replaces the task pool and roster (admin surface).
func (s *Service) UpdateGameData(ctx context.Context, doc *bingodto.GameDataDocument) error {
	if s.MockEnabled(ctx) {
		s.mock.setGameData(doc)
		return nil
	}
	return s.client.PutDocument(ctx, s.bins.GameData, doc)
}

// Settings returns the shared game settings. A missing document, fetch
// failure or out-of-range size degrades to the configured default.
func (s *Service) Settings(ctx context.Context) *bingodto.SettingsDocument {
	doc := &bingodto.SettingsDocument{}
	if s.MockEnabled(ctx) {
		doc = s.mock.settingsDoc()
	} else if err := s.client.GetDocument(ctx, s.bins.Settings, doc); err != nil {
		obslog.L().Warn("settings fetch failed, using default board size", zap.Error(err))
		doc = &bingodto.SettingsDocument{}
	}
	if doc.BoardSize < 1 {
		doc.BoardSize = s.defaultBoardSize
	}
	return doc
}

func (s *Service) UpdateSettings(ctx context.Context, doc *bingodto.SettingsDocument) error {
	if s.MockEnabled(ctx) {
		s.mock.setSettings(doc)
		return nil
	}
	return s.client.PutDocument(ctx, s.bins.Settings, doc)
}

// Winners returns the shared leaderboard, empty on any fetch failure.
func (s *Service) Winners(ctx context.Context) *bingodto.WinnersDocument {
	if s.MockEnabled(ctx) {
		return s.mock.winnersDoc()
	}
	var doc bingodto.WinnersDocument
	if err := s.client.GetDocument(ctx, s.bins.Winners, &doc); err != nil {
		obslog.L().Warn("winners fetch failed, using empty leaderboard", zap.Error(err))
		return &bingodto.WinnersDocument{}
	}
	if doc.Winners == nil {
		doc.Winners = []bingodto.WinnerEntry{}
	}
	return &doc
}

func (s *Service) UpdateWinners(ctx context.Context, doc *bingodto.WinnersDocument) error {
	if s.MockEnabled(ctx) {
		s.mock.setWinners(doc)
		return nil
	}
	return s.client.PutDocument(ctx, s.bins.Winners, doc)
}

// AllProgress returns the shared progress document, empty on failure.
// Callers that write the document back after a degraded read will clobber
// whatever the read missed; the original system behaves the same way.
func (s *Service) AllProgress(ctx context.Context) bingodto.ProgressDocument {
	if s.MockEnabled(ctx) {
		return s.mock.allProgress()
	}
	var doc bingodto.ProgressDocument
	if err := s.client.GetDocument(ctx, s.bins.Progress, &doc); err != nil {
		obslog.L().Warn("progress fetch failed, using empty document", zap.Error(err))
		return bingodto.ProgressDocument{}
	}
	if doc == nil {
		doc = bingodto.ProgressDocument{}
	}
	return doc
}

// PlayerProgress returns one player's remote snapshot, nil when absent.
func (s *Service) PlayerProgress(ctx context.Context, player string) *bingodto.BoardSnapshot {
	return s.AllProgress(ctx)[strings.TrimSpace(player)]
}

// SavePlayerProgress merges one player's snapshot into the shared progress
// document: read the whole document, replace the single key, write the
// whole document back.
func (s *Service) SavePlayerProgress(ctx context.Context, player string, snap *bingodto.BoardSnapshot) error {
	stamped := snap.Clone()
	stamped.LastUpdated = time.Now().UTC()
	if s.MockEnabled(ctx) {
		s.mock.saveProgress(strings.TrimSpace(player), stamped)
		return nil
	}
	doc := s.AllProgress(ctx)
	doc[strings.TrimSpace(player)] = stamped
	return s.client.PutDocument(ctx, s.bins.Progress, doc)
}

// DeletePlayerProgress removes one player's key from the shared progress
// document, using the same read-modify-write cycle.
func (s *Service) DeletePlayerProgress(ctx context.Context, player string) error {
	name := strings.TrimSpace(player)
	if s.MockEnabled(ctx) {
		s.mock.deleteProgress(name)
		return nil
	}
	doc := s.AllProgress(ctx)
	if _, ok := doc[name]; !ok {
		return nil
	}
	delete(doc, name)
	return s.client.PutDocument(ctx, s.bins.Progress, doc)
}
