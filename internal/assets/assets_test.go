package assets

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
)

func TestLoadEmbedded(t *testing.T) {
	l := NewLoader(nil)

	set, err := l.Load(context.Background(), "player", "kelp", "rock", "mine", "powerup")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if set.Len() != 5 {
		t.Errorf("expected 5 sprites, got %d (missing %v)", set.Len(), set.Missing())
	}

	player, ok := set.Get("player")
	if !ok {
		t.Fatal("player sprite missing")
	}
	if player.Height() != 3 || player.Width() != 6 {
		t.Errorf("player sprite = %dx%d, expected 6x3", player.Width(), player.Height())
	}
}

func TestLoadMissingIsSoft(t *testing.T) {
	l := NewLoader(nil)

	set, err := l.Load(context.Background(), "player", "does-not-exist")
	if err != nil {
		t.Fatalf("missing sprite should not fail the load: %v", err)
	}
	if _, ok := set.Get("does-not-exist"); ok {
		t.Error("missing sprite should not be in set")
	}
	if got := set.Missing(); len(got) != 1 || got[0] != "does-not-exist" {
		t.Errorf("Missing() = %v, expected [does-not-exist]", got)
	}
}

func TestLoadOverrideWins(t *testing.T) {
	override := fstest.MapFS{
		"player.txt": {Data: []byte("<>\n")},
		"empty.txt":  {Data: []byte("\n\n")},
	}
	l := NewLoader(nil, override)

	set, err := l.Load(context.Background(), "player", "kelp", "empty")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	player, _ := set.Get("player")
	if player == nil || string(player.Rows[0]) != "<>" {
		t.Errorf("override sprite should win, got %+v", player)
	}
	if _, ok := set.Get("kelp"); !ok {
		t.Error("kelp should fall back to embedded art")
	}
	if _, ok := set.Get("empty"); ok {
		t.Error("empty sprite should be rejected")
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).Load(ctx, "player")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParseTrimsTrailingBlankLines(t *testing.T) {
	sp, err := Parse("x", []byte("ab\r\n c\n\n  \n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if sp.Height() != 2 {
		t.Errorf("Height() = %d, expected 2", sp.Height())
	}
	if string(sp.Rows[0]) != "ab" {
		t.Errorf("row 0 = %q, expected %q", string(sp.Rows[0]), "ab")
	}
	if sp.Width() != 2 {
		t.Errorf("Width() = %d, expected 2", sp.Width())
	}
}

func TestNilSet(t *testing.T) {
	var s *Set
	if _, ok := s.Get("player"); ok {
		t.Error("nil set should be empty")
	}
	if s.Len() != 0 || s.Missing() != nil {
		t.Error("nil set should report nothing")
	}
}
