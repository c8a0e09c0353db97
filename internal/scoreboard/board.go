// Package scoreboard keeps the per-variant top-N high-score table.
// The table is a JSON array stored under a single key of a key-value backend.
package scoreboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultCapacity is the number of entries a board keeps.
const DefaultCapacity = 10

// DateLayout is the format of Entry.Date.
const DateLayout = "2006-01-02"

// AnonymousName replaces blank names on submission.
const AnonymousName = "Anonymous"

// Entry is one high-score row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// KV is the persistence backend. storage.Store implements it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	// Update replaces the value under key with fn's result atomically with
	// respect to every other writer of the backend. fn is not called when the
	// current value cannot be read.
	Update(ctx context.Context, key string, fn func(old string, ok bool) (string, error)) error
}

// Key returns the backend key holding a variant's board.
func Key(variant string) string {
	return variant + ".leaderboard"
}

// Board is the high-score table of one variant. Safe for concurrent use, so
// SSH sessions can share one board.
type Board struct {
	kv       KV
	key      string
	capacity int
	logger   *log.Logger
	now      func() time.Time

	mu sync.Mutex
}

// Option configures a Board.
type Option func(*Board)

// WithCapacity overrides DefaultCapacity.
func WithCapacity(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.capacity = n
		}
	}
}

// WithLogger sets the logger used for fail-soft warnings.
func WithLogger(logger *log.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock sets the clock used to date new entries.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// New creates a board for a variant over the given backend.
func New(kv KV, variant string, opts ...Option) *Board {
	b := &Board{
		kv:       kv,
		key:      Key(variant),
		capacity: DefaultCapacity,
		logger:   log.New(io.Discard),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Capacity returns the maximum number of entries kept.
func (b *Board) Capacity() int {
	return b.capacity
}

// Load returns the stored entries, best first.
// A missing key, an unreadable backend or malformed data all yield an empty
// list; the latter two are logged.
func (b *Board) Load(ctx context.Context) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(ctx)
}

func (b *Board) load(ctx context.Context) []Entry {
	if b.kv == nil {
		return []Entry{}
	}

	raw, ok, err := b.kv.Get(ctx, b.key)
	if err != nil {
		b.logger.Warn("leaderboard unreadable, starting empty", "key", b.key, "error", err)
		return []Entry{}
	}
	return b.decode(raw, ok)
}

func (b *Board) decode(raw string, ok bool) []Entry {
	if !ok || strings.TrimSpace(raw) == "" {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		b.logger.Warn("leaderboard malformed, starting empty", "key", b.key, "error", err)
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return normalize(entries, b.capacity)
}

// Submit inserts a dated entry, keeps the best entries up to capacity and
// persists the result. It returns the stored list and the new entry's index
// in it, or -1 when the entry did not place. Ties keep submission order, so
// a score equal to the cutoff on a full board does not place.
//
// An unreadable backend counts as an empty board; the returned list is then
// computed anyway and the write error is reported.
func (b *Board) Submit(ctx context.Context, name string, score int) ([]Entry, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = AnonymousName
	}
	entry := Entry{
		Name:  name,
		Score: score,
		Date:  b.now().Format(DateLayout),
	}

	if b.kv == nil {
		entries, rank := insert([]Entry{}, entry, b.capacity)
		return entries, rank, nil
	}

	var entries []Entry
	rank := -1
	applied := false
	err := b.kv.Update(ctx, b.key, func(raw string, ok bool) (string, error) {
		entries, rank = insert(b.decode(raw, ok), entry, b.capacity)
		applied = true
		data, err := json.Marshal(entries)
		if err != nil {
			return "", fmt.Errorf("encode: %w", err)
		}
		return string(data), nil
	})
	if !applied {
		b.logger.Warn("leaderboard unreadable, starting empty", "key", b.key, "error", err)
		entries, rank = insert([]Entry{}, entry, b.capacity)
	}
	if err != nil {
		return entries, rank, fmt.Errorf("scoreboard: save %s: %w", b.key, err)
	}

	b.logger.Debug("score submitted", "key", b.key, "name", name, "score", score, "rank", rank)
	return entries, rank, nil
}

// Reset empties the board.
func (b *Board) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.kv == nil {
		return nil
	}
	if err := b.kv.Put(ctx, b.key, "[]"); err != nil {
		return fmt.Errorf("scoreboard: reset %s: %w", b.key, err)
	}
	return nil
}

// Qualifies reports whether score would make it onto the board.
func (b *Board) Qualifies(ctx context.Context, score int) bool {
	entries := b.Load(ctx)
	if len(entries) < b.capacity {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// insert places e after every entry scoring at least as much and truncates
// to capacity. entries must already be normalized.
func insert(entries []Entry, e Entry, capacity int) ([]Entry, int) {
	rank := sort.Search(len(entries), func(i int) bool {
		return entries[i].Score < e.Score
	})
	if rank >= capacity {
		return entries, -1
	}
	entries = append(entries, Entry{})
	copy(entries[rank+1:], entries[rank:])
	entries[rank] = e
	if len(entries) > capacity {
		entries = entries[:capacity]
	}
	return entries, rank
}

// normalize sorts descending by score, keeping insertion order for ties,
// and truncates to capacity.
func normalize(entries []Entry, capacity int) []Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > capacity {
		entries = entries[:capacity]
	}
	return entries
}
