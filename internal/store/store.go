package store

import (
	"context"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

// Store is the local persistent cache of board snapshots, one entry per
// player name. Load returns (nil, nil) when no snapshot exists.
type Store interface {
	Load(ctx context.Context, player string) (*bingodto.BoardSnapshot, error)
	Save(ctx context.Context, player string, snap *bingodto.BoardSnapshot) error
	Delete(ctx context.Context, player string) error
	Players(ctx context.Context) ([]string, error)
	Close() error
}
