package jsonbin

import (
	"sync"

	"github.com/bishwajeet-gh/bingo/internal/jsonbin/mockdata"
	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

// mockBackend is the in-process stand-in for the hosted document store,
// seeded from the embedded default game data. It lets the whole game run
// offline with the same document semantics.
type mockBackend struct {
	mu       sync.Mutex
	game     *bingodto.GameDataDocument
	settings *bingodto.SettingsDocument
	winners  *bingodto.WinnersDocument
	progress bingodto.ProgressDocument
}

func newMockBackend() *mockBackend {
	game, err := mockdata.GameData()
	if err != nil {
		game = &bingodto.GameDataDocument{}
	}
	return &mockBackend{
		game:     game,
		settings: &bingodto.SettingsDocument{},
		winners:  &bingodto.WinnersDocument{Winners: []bingodto.WinnerEntry{}},
		progress: bingodto.ProgressDocument{},
	}
}

func (m *mockBackend) gameData() *bingodto.GameDataDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &bingodto.GameDataDocument{
		Tasks: append([]string(nil), m.game.Tasks...),
		Users: append([]string(nil), m.game.Users...),
	}
}

func (m *mockBackend) setGameData(doc *bingodto.GameDataDocument) {
	m.mu.Lock()
	m.game = &bingodto.GameDataDocument{
		Tasks: append([]string(nil), doc.Tasks...),
		Users: append([]string(nil), doc.Users...),
	}
	m.mu.Unlock()
}

func (m *mockBackend) settingsDoc() *bingodto.SettingsDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *m.settings
	return &out
}

func (m *mockBackend) setSettings(doc *bingodto.SettingsDocument) {
	m.mu.Lock()
	out := *doc
	m.settings = &out
	m.mu.Unlock()
}

func (m *mockBackend) winnersDoc() *bingodto.WinnersDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &bingodto.WinnersDocument{Winners: append([]bingodto.WinnerEntry{}, m.winners.Winners...)}
}

func (m *mockBackend) setWinners(doc *bingodto.WinnersDocument) {
	m.mu.Lock()
	m.winners = &bingodto.WinnersDocument{Winners: append([]bingodto.WinnerEntry{}, doc.Winners...)}
	m.mu.Unlock()
}

func (m *mockBackend) allProgress() bingodto.ProgressDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(bingodto.ProgressDocument, len(m.progress))
	for name, snap := range m.progress {
		out[name] = snap.Clone()
	}
	return out
}

func (m *mockBackend) saveProgress(player string, snap *bingodto.BoardSnapshot) {
	m.mu.Lock()
	m.progress[player] = snap.Clone()
	m.mu.Unlock()
}

func (m *mockBackend) deleteProgress(player string) {
	m.mu.Lock()
	delete(m.progress, player)
	m.mu.Unlock()
}
