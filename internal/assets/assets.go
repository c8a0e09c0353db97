// Package assets loads the sprite art used by the renderer.
// Loading is a pre-flight phase: the platform runs it once, concurrently,
// and hands the finished Set to the game, which refuses to start until then.
package assets

import (
	"bufio"
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

//go:embed sprites/*.txt
var embedded embed.FS

// Sprite is rune art drawn cell by cell. Spaces are transparent.
type Sprite struct {
	Name string
	Rows [][]rune
}

// Width returns the widest row in cells.
func (s *Sprite) Width() int {
	w := 0
	for _, row := range s.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Height returns the number of rows.
func (s *Sprite) Height() int {
	return len(s.Rows)
}

// Set is an immutable collection of loaded sprites.
type Set struct {
	sprites map[string]*Sprite
	missing []string
}

// NewSet builds a set from already parsed sprites.
func NewSet(sprites ...*Sprite) *Set {
	set := &Set{sprites: make(map[string]*Sprite, len(sprites))}
	for _, s := range sprites {
		set.sprites[s.Name] = s
	}
	return set
}

// Get returns the named sprite. A nil set behaves as empty.
func (s *Set) Get(name string) (*Sprite, bool) {
	if s == nil {
		return nil, false
	}
	sp, ok := s.sprites[name]
	return sp, ok
}

// Len returns the number of loaded sprites.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sprites)
}

// Missing lists requested sprites that failed to load.
func (s *Set) Missing() []string {
	if s == nil {
		return nil
	}
	return s.missing
}

// Loader reads sprites from override filesystems first, then from the
// embedded defaults.
type Loader struct {
	sources []fs.FS
	logger  *log.Logger
}

// NewLoader creates a loader. Overrides are consulted in order before the
// embedded art.
func NewLoader(logger *log.Logger, overrides ...fs.FS) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sub, err := fs.Sub(embedded, "sprites")
	if err != nil {
		// Only possible if the embed directive is broken
		panic(fmt.Sprintf("assets: embedded sprites: %v", err))
	}
	sources := make([]fs.FS, 0, len(overrides)+1)
	for _, o := range overrides {
		if o != nil {
			sources = append(sources, o)
		}
	}
	sources = append(sources, sub)
	return &Loader{sources: sources, logger: logger}
}

// Load reads every named sprite concurrently.
// A sprite that cannot be read or parsed is logged and left out of the set;
// the renderer draws a placeholder for it. Only cancellation is an error.
func (l *Loader) Load(ctx context.Context, names ...string) (*Set, error) {
	results := make([]*Sprite, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sp, err := l.loadOne(name)
			if err != nil {
				l.logger.Warn("sprite unavailable, using placeholder", "sprite", name, "error", err)
				return nil
			}
			results[i] = sp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assets: load cancelled: %w", err)
	}

	loaded := make([]*Sprite, 0, len(names))
	var missing []string
	for i, sp := range results {
		if sp == nil {
			missing = append(missing, names[i])
			continue
		}
		loaded = append(loaded, sp)
	}
	set := NewSet(loaded...)
	set.missing = missing
	l.logger.Debug("sprites loaded", "loaded", set.Len(), "missing", len(set.missing))
	return set, nil
}

// loadOne returns the first source that has the sprite.
func (l *Loader) loadOne(name string) (*Sprite, error) {
	file := path.Clean(name) + ".txt"
	var lastErr error
	for _, src := range l.sources {
		data, err := fs.ReadFile(src, file)
		if err != nil {
			lastErr = err
			continue
		}
		return Parse(name, data)
	}
	return nil, fmt.Errorf("assets: %s: %w", file, lastErr)
}

// Parse converts text art into a sprite. Trailing blank lines are dropped.
func Parse(name string, data []byte) (*Sprite, error) {
	sp := &Sprite{Name: name}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		sp.Rows = append(sp.Rows, []rune(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", name, err)
	}
	for len(sp.Rows) > 0 && strings.TrimSpace(string(sp.Rows[len(sp.Rows)-1])) == "" {
		sp.Rows = sp.Rows[:len(sp.Rows)-1]
	}
	if len(sp.Rows) == 0 {
		return nil, fmt.Errorf("assets: sprite %s is empty", name)
	}
	return sp, nil
}
