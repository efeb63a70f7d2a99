package bingo

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/bishwajeet-gh/bingo/pkg/bingodto"
)

const noPending = -1

// Board holds one player's board state: the shuffled task assignment, the
// selected-cell set, per-cell notes and the derived bingo count. Methods are
// not goroutine safe; a board is driven by a single session.
type Board struct {
	dimension  int
	tasks      []string
	selected   map[int]struct{}
	notes      map[int]string
	bingoCount int
	patterns   [][]int
	pending    int
	rng        *rand.Rand
}

// AnnotationRequest asks the caller to collect a note before a pending
// selection commits. Note carries any existing note for pre-filling.
type AnnotationRequest struct {
	Index int
	Task  string
	Note  string
}

// NewBoard draws a fresh shuffled board of dimension*dimension cells from
// taskPool. A short pool is padded by cycling; a long pool is truncated.
// rng may be nil, in which case a time-seeded source is used.
func NewBoard(taskPool []string, dimension int, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b := &Board{rng: rng}
	b.init(taskPool, dimension)
	return b
}

// FromSnapshot rebuilds a board from a persisted snapshot. The snapshot is
// trusted to be internally consistent (it was produced by Snapshot).
func FromSnapshot(s *bingodto.BoardSnapshot, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b := &Board{
		dimension: s.BoardSize,
		tasks:     append([]string(nil), s.Tasks...),
		selected:  make(map[int]struct{}, len(s.SelectedCells)),
		notes:     make(map[int]string, len(s.NotesByIndex)),
		patterns:  WinPatterns(s.BoardSize),
		pending:   noPending,
		rng:       rng,
	}
	for _, idx := range s.SelectedCells {
		if idx >= 0 && idx < b.TotalCells() {
			b.selected[idx] = struct{}{}
		}
	}
	for idx, note := range s.NotesByIndex {
		if idx >= 0 && idx < b.TotalCells() && strings.TrimSpace(note) != "" {
			b.notes[idx] = note
		}
	}
	b.RecomputeBingo()
	return b
}

func (b *Board) init(taskPool []string, dimension int) {
	b.dimension = dimension
	b.tasks = drawTasks(taskPool, dimension*dimension, b.rng)
	b.selected = make(map[int]struct{})
	b.notes = make(map[int]string)
	b.bingoCount = 0
	b.patterns = WinPatterns(dimension)
	b.pending = noPending
}

// drawTasks shuffles pool with Fisher-Yates and sizes the result to total
// cells, cycling the pool when it is too short.
func drawTasks(pool []string, total int, rng *rand.Rand) []string {
	shuffled := append([]string(nil), pool...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	tasks := make([]string, total)
	for i := range tasks {
		if len(shuffled) > 0 {
			tasks[i] = shuffled[i%len(shuffled)]
		}
	}
	return tasks
}

func (b *Board) Dimension() int      { return b.dimension }
func (b *Board) TotalCells() int     { return b.dimension * b.dimension }
func (b *Board) CompletedCells() int { return len(b.selected) }
func (b *Board) BingoCount() int     { return b.bingoCount }

func (b *Board) Task(index int) string {
	if index < 0 || index >= len(b.tasks) {
		return ""
	}
	return b.tasks[index]
}

func (b *Board) Tasks() []string {
	return append([]string(nil), b.tasks...)
}

func (b *Board) Selected(index int) bool {
	_, ok := b.selected[index]
	return ok
}

func (b *Board) Note(index int) string { return b.notes[index] }

// Pending reports the cell currently awaiting annotation, if any.
func (b *Board) Pending() (int, bool) {
	if b.pending == noPending {
		return 0, false
	}
	return b.pending, true
}

// Toggle flips cell selection. Deselecting is immediate. Selecting is
// two-phase: Toggle parks the cell in a pending slot and returns an
// AnnotationRequest; the selection only commits via Commit. Toggling the
// pending cell again cancels the pending selection. Only one cell may be
// pending at a time.
func (b *Board) Toggle(index int) (*AnnotationRequest, error) {
	if index < 0 || index >= b.TotalCells() {
		return nil, bingodto.ErrIndexOutOfRange
	}
	if b.pending == index {
		b.pending = noPending
		return nil, nil
	}
	if b.pending != noPending {
		return nil, bingodto.ErrSelectionPending
	}
	if _, ok := b.selected[index]; ok {
		delete(b.selected, index)
		b.RecomputeBingo()
		return nil, nil
	}
	b.pending = index
	return &AnnotationRequest{Index: index, Task: b.tasks[index], Note: b.notes[index]}, nil
}

// Commit finalizes or aborts the pending selection. On accept the trimmed
// note is stored (empty removes any existing note), the cell joins the
// selected set and the bingo count is recomputed. On abort nothing changes.
func (b *Board) Commit(index int, accepted bool, note string) error {
	if index < 0 || index >= b.TotalCells() {
		return bingodto.ErrIndexOutOfRange
	}
	if b.pending != index {
		return bingodto.ErrNoPendingSelection
	}
	b.pending = noPending
	if !accepted {
		return nil
	}
	b.storeNote(index, note)
	b.selected[index] = struct{}{}
	b.RecomputeBingo()
	return nil
}

// SetNote trims and stores a note for a cell; whitespace-only text removes
// any existing note.
func (b *Board) SetNote(index int, text string) error {
	if index < 0 || index >= b.TotalCells() {
		return bingodto.ErrIndexOutOfRange
	}
	b.storeNote(index, text)
	return nil
}

func (b *Board) storeNote(index int, text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		delete(b.notes, index)
		return
	}
	b.notes[index] = trimmed
}

// RecomputeBingo re-evaluates every win pattern against the selected set
// and replaces the cached count. This is the only way the count changes.
func (b *Board) RecomputeBingo() int {
	count := 0
	for _, pattern := range b.patterns {
		complete := true
		for _, idx := range pattern {
			if _, ok := b.selected[idx]; !ok {
				complete = false
				break
			}
		}
		if complete {
			count++
		}
	}
	b.bingoCount = count
	return count
}

// Reshape resets the board to a fresh shuffle at newDimension. Board
// content only makes sense for the dimension it was generated for, so a
// dimension change discards selections and notes. Same dimension is a no-op.
func (b *Board) Reshape(newDimension int, taskPool []string) {
	if newDimension == b.dimension {
		return
	}
	b.init(taskPool, newDimension)
}

// Reset redraws a fresh shuffled board at the current dimension.
func (b *Board) Reset(taskPool []string) {
	b.init(taskPool, b.dimension)
}

// Snapshot captures the board as a persistable value. LastSynced is left
// for the caller to stamp at write time.
func (b *Board) Snapshot() *bingodto.BoardSnapshot {
	cells := make([]int, 0, len(b.selected))
	for idx := range b.selected {
		cells = append(cells, idx)
	}
	sort.Ints(cells)
	var notes map[int]string
	if len(b.notes) > 0 {
		notes = make(map[int]string, len(b.notes))
		for k, v := range b.notes {
			notes[k] = v
		}
	}
	return &bingodto.BoardSnapshot{
		Tasks:         append([]string(nil), b.tasks...),
		SelectedCells: cells,
		BingoCount:    b.bingoCount,
		NotesByIndex:  notes,
		BoardSize:     b.dimension,
	}
}
