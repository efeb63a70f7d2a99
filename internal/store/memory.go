package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

// MemoryStore is the store used in mock mode and tests, when no Redis is
// configured. Values are deep-copied on the way in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*bingodto.BoardSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*bingodto.BoardSnapshot)}
}

func (m *MemoryStore) Load(ctx context.Context, player string) (*bingodto.BoardSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snaps[strings.TrimSpace(player)].Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, player string, snap *bingodto.BoardSnapshot) error {
	m.mu.Lock()
	m.snaps[strings.TrimSpace(player)] = snap.Clone()
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, player string) error {
	m.mu.Lock()
	delete(m.snaps, strings.TrimSpace(player))
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Players(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	players := make([]string, 0, len(m.snaps))
	for name := range m.snaps {
		players = append(players, name)
	}
	sort.Strings(players)
	return players, nil
}

func (m *MemoryStore) Close() error { return nil }
