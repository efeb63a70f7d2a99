package session

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bishwajeet-gh/bingo/internal/bingo"
	"github.com/bishwajeet-gh/bingo/internal/jsonbin"
	"github.com/bishwajeet-gh/bingo/internal/obslog"
	"github.com/bishwajeet-gh/bingo/internal/store"
	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

// Session owns one player's board for the lifetime of a login: it
// reconciles local and remote state on start, persists every mutation to
// the local store, and pushes state to the shared documents on demand.
// Methods are not goroutine safe; a session is driven by one input loop.
type Session struct {
	id     string
	player string
	st     store.Store
	docs   *jsonbin.Service

	board     *bingo.Board
	dimension int
	taskPool  []string

	rng *rand.Rand
	now func() time.Time
	log *zap.Logger

	Events Events
}

type Option func(*Session)

// WithRand fixes the shuffle source (tests).
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClock fixes the timestamp source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func New(st store.Store, docs *jsonbin.Service, opts ...Option) *Session {
	s := &Session{
		id:   uuid.NewString(),
		st:   st,
		docs: docs,
		now:  func() time.Time { return time.Now().UTC() },
		log:  obslog.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start logs the player in and loads the board: fetch game data and
// settings, validate the name against the roster, reconcile the local and
// remote snapshots and write the winner back to the local store. Remote
// fetch failures degrade to local-only operation; Start fails only on an
// invalid player name.
func (s *Session) Start(ctx context.Context, player string) error {
	name := strings.TrimSpace(player)
	if name == "" {
		return bingodto.ErrUnknownPlayer
	}

	game := s.docs.GameData(ctx)
	if !rosterAllows(game.Users, name) {
		return bingodto.ErrUnknownPlayer
	}
	s.player = name
	s.taskPool = game.Tasks
	s.dimension = s.docs.Settings(ctx).BoardSize
	s.log = obslog.L().With(zap.String("session", s.id), zap.String("player", name))

	local, err := s.st.Load(ctx, name)
	if err != nil {
		s.log.Warn("local state unavailable, continuing without it", zap.Error(err))
		local = nil
	}
	remote := s.docs.PlayerProgress(ctx, name)

	snap := Reconcile(local, remote, s.dimension, s.taskPool, s.rng)
	s.board = bingo.FromSnapshot(snap, s.rng)

	// Write-back keeps the chosen timestamp so a later sync comparison
	// still sees which side won.
	if err := s.st.Save(ctx, name, snap); err != nil {
		s.log.Warn("write-back of reconciled state failed", zap.Error(err))
	}

	s.log.Info("session started",
		zap.Int("boardSize", s.dimension),
		zap.Int("bingoCount", s.board.BingoCount()),
		zap.Int("completed", s.board.CompletedCells()))
	s.Events.bingoCountChanged(s.board.BingoCount())
	return nil
}

func rosterAllows(roster []string, name string) bool {
	if len(roster) == 0 {
		return true
	}
	for _, u := range roster {
		if strings.EqualFold(strings.TrimSpace(u), name) {
			return true
		}
	}
	return false
}

// Board exposes the live board to the rendering layer (read-only use).
func (s *Session) Board() *bingo.Board { return s.board }

func (s *Session) Player() string { return s.player }

// Toggle flips a cell. Deselection applies and persists immediately. A
// selection returns an AnnotationRequest and commits nothing until Commit.
func (s *Session) Toggle(ctx context.Context, index int) (*bingo.AnnotationRequest, error) {
	req, err := s.board.Toggle(index)
	if err != nil {
		return nil, err
	}
	if req != nil {
		return req, nil
	}
	s.persist(ctx)
	s.Events.bingoCountChanged(s.board.BingoCount())
	return nil, nil
}

// Commit finalizes or aborts a pending selection. Only an accepted commit
// mutates and persists state.
func (s *Session) Commit(ctx context.Context, index int, accepted bool, note string) error {
	if err := s.board.Commit(index, accepted, note); err != nil {
		return err
	}
	if accepted {
		s.persist(ctx)
		s.Events.bingoCountChanged(s.board.BingoCount())
	}
	return nil
}

// SetNote updates a cell's note and persists.
func (s *Session) SetNote(ctx context.Context, index int, text string) error {
	if err := s.board.SetNote(index, text); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

func (s *Session) persist(ctx context.Context) {
	snap := s.board.Snapshot()
	snap.LastSynced = s.now()
	if err := s.st.Save(ctx, s.player, snap); err != nil {
		s.log.Warn("local save failed", zap.Error(err))
	}
}

// Sync pushes the local snapshot into the shared progress document and, if
// the player has any bingos, merges the leaderboard. The progress push is
// the overall outcome; leaderboard failures are logged only. Both writes
// are whole-document read-modify-write: concurrent sessions can drop each
// other's updates, as the backing store offers no conditional writes.
func (s *Session) Sync(ctx context.Context) error {
	snap, err := s.st.Load(ctx, s.player)
	if err != nil {
		s.Events.stateSaved(false)
		return fmt.Errorf("load local state: %w", err)
	}
	if snap == nil {
		s.Events.stateSaved(false)
		return bingodto.ErrNoLocalState
	}

	snap.LastSynced = s.now()
	if err := s.docs.SavePlayerProgress(ctx, s.player, snap); err != nil {
		s.log.Warn("progress push failed", zap.Error(err))
		s.Events.stateSaved(false)
		return fmt.Errorf("push progress: %w", err)
	}
	if err := s.st.Save(ctx, s.player, snap); err != nil {
		s.log.Warn("local timestamp update failed", zap.Error(err))
	}

	if snap.BingoCount > 0 {
		winners := s.docs.Winners(ctx)
		if MergeWinner(winners, s.player, snap.BingoCount) {
			if err := s.docs.UpdateWinners(ctx, winners); err != nil {
				s.log.Warn("leaderboard merge failed", zap.Error(err))
			}
		}
		s.Events.winnersChanged()
	}

	s.log.Info("synced to cloud", zap.Int("bingoCount", snap.BingoCount))
	s.Events.stateSaved(true)
	return nil
}

// Reset redraws a fresh board at the current dimension and persists it,
// then best-effort removes the player from the shared progress and
// leaderboard documents. Reset is complete even if the remote cleanup
// fails.
func (s *Session) Reset(ctx context.Context) error {
	s.board.Reset(s.taskPool)
	s.persist(ctx)

	if err := s.docs.DeletePlayerProgress(ctx, s.player); err != nil {
		s.log.Warn("remote progress cleanup failed", zap.Error(err))
	}
	winners := s.docs.Winners(ctx)
	if RemoveWinner(winners, s.player) {
		if err := s.docs.UpdateWinners(ctx, winners); err != nil {
			s.log.Warn("leaderboard cleanup failed", zap.Error(err))
		}
	}

	s.log.Info("board reset", zap.Int("boardSize", s.dimension))
	s.Events.bingoCountChanged(0)
	s.Events.winnersChanged()
	return nil
}

// Leaderboard returns the shared winners sorted for display. In mock mode
// local store entries with bingos are merged in, so standings show up
// without any cloud writes.
func (s *Session) Leaderboard(ctx context.Context) []bingodto.WinnerEntry {
	doc := s.docs.Winners(ctx)
	if s.docs.MockEnabled(ctx) {
		players, err := s.st.Players(ctx)
		if err == nil {
			for _, name := range players {
				snap, err := s.st.Load(ctx, name)
				if err != nil || snap == nil || snap.BingoCount < 1 {
					continue
				}
				MergeWinner(doc, name, snap.BingoCount)
			}
		}
	}
	SortWinners(doc.Winners)
	return doc.Winners
}
