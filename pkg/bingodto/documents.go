package bingodto

import "time"

// BoardSnapshot is one player's complete board state at a point in time.
// The same shape is persisted locally and stored in the shared progress
// document, so field names are part of the wire format.
type BoardSnapshot struct {
	Tasks         []string       `json:"tasks"`
	SelectedCells []int          `json:"selectedCells"`
	BingoCount    int            `json:"bingoCount"`
	NotesByIndex  map[int]string `json:"notesByIndex,omitempty"`
	BoardSize     int            `json:"boardSize"`
	LastSynced    time.Time      `json:"lastSynced"`
	LastUpdated   time.Time      `json:"lastUpdated,omitempty"`
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (s *BoardSnapshot) Clone() *BoardSnapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Tasks = append([]string(nil), s.Tasks...)
	out.SelectedCells = append([]int(nil), s.SelectedCells...)
	if s.NotesByIndex != nil {
		out.NotesByIndex = make(map[int]string, len(s.NotesByIndex))
		for k, v := range s.NotesByIndex {
			out.NotesByIndex[k] = v
		}
	}
	return &out
}

// ProgressDocument maps player name to that player's latest snapshot.
// Writers replace the whole document, never a single key.
type ProgressDocument map[string]*BoardSnapshot

type WinnerEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type WinnersDocument struct {
	Winners []WinnerEntry `json:"winners"`
}

// GameDataDocument is the authoritative task pool and player roster.
type GameDataDocument struct {
	Tasks []string `json:"tasks"`
	Users []string `json:"users"`
}

type TogglesDocument struct {
	UseMock bool `json:"USE_MOCK"`
}

type SettingsDocument struct {
	BoardSize int `json:"boardSize"`
}
