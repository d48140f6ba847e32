package sokoban

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
)

var testCfg = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}

func testSource(t *testing.T, files fstest.MapFS) level.Source {
	t.Helper()
	src, err := level.NewFSSource(files, "test")
	if err != nil {
		t.Fatalf("NewFSSource failed: %v", err)
	}
	return src
}

func twoLevels() fstest.MapFS {
	return fstest.MapFS{
		"level1.txt": {Data: []byte("pbg\n")},
		"level2.txt": {Data: []byte("p.bg\n")},
	}
}

func newTestGame(t *testing.T, files fstest.MapFS, opts Options) *Game {
	t.Helper()
	opts.Source = testSource(t, files)
	g := New(opts)
	if err := g.Reset(testCfg); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameClearingLoadsNextLevel(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{})

	res := g.Step(frame(core.ActionRight))

	if res.State.Level != 2 {
		t.Fatalf("Level = %d, want 2", res.State.Level)
	}
	if g.Status() != StatusPlaying {
		t.Errorf("Status = %v, want playing", g.Status())
	}
	if g.Player() != core.C(0, 0) {
		t.Errorf("player = %v, want spawn of level 2", g.Player())
	}

	var cleared *core.Event
	for i := range res.Events {
		if res.Events[i].Kind == core.EventLevelCleared {
			cleared = &res.Events[i]
		}
	}
	if cleared == nil {
		t.Fatalf("no LevelCleared event in %+v", res.Events)
	}
	if cleared.Level != 1 || cleared.Moves != 1 || cleared.Pushes != 1 {
		t.Errorf("cleared event = %+v, want level 1 with 1 move and 1 push", *cleared)
	}
	if cleared.Name != "Level 1" {
		t.Errorf("cleared name = %q", cleared.Name)
	}
}

func TestGameClampFinishes(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{Policy: level.PolicyClamp})

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight, core.ActionRight))

	if g.Status() != StatusFinished {
		t.Fatalf("Status = %v, want finished", g.Status())
	}
	if !g.State().Finished {
		t.Error("State().Finished should be true")
	}
	if g.Sequence().Index() != 1 {
		t.Errorf("index = %d, want to stay on the last level", g.Sequence().Index())
	}

	if err := g.NextLevel(); !errors.Is(err, level.ErrLevelOutOfRange) {
		t.Errorf("NextLevel error = %v, want ErrLevelOutOfRange", err)
	}

	// Moves are ignored once finished.
	if got, _ := g.Move(core.West); got != Blocked {
		t.Errorf("Move after finish = %v, want Blocked", got)
	}

	g.Restart()
	if g.Status() != StatusPlaying || g.Sequence().Index() != 0 {
		t.Errorf("Restart after finish: status %v index %d", g.Status(), g.Sequence().Index())
	}
}

func TestGameWrapLoops(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{Policy: level.PolicyWrap})

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight, core.ActionRight))

	if g.Status() != StatusPlaying {
		t.Fatalf("Status = %v, want playing", g.Status())
	}
	if g.Sequence().Index() != 0 {
		t.Errorf("index = %d, want wrap to 0", g.Sequence().Index())
	}

	if err := g.PrevLevel(); err != nil {
		t.Fatalf("PrevLevel failed: %v", err)
	}
	if g.Sequence().Index() != 1 {
		t.Errorf("index = %d, want wrap to 1", g.Sequence().Index())
	}
}

func TestGamePrevAtFirstLevel(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{})
	g.Step(frame(core.ActionPrevLevel))

	if g.Sequence().Index() != 0 {
		t.Errorf("index = %d, want 0", g.Sequence().Index())
	}
	if g.Notice() == "" {
		t.Error("expected a HUD notice at the first level")
	}
	if g.Status() != StatusPlaying {
		t.Errorf("Status = %v, want playing", g.Status())
	}
}

func TestGameFailedLoadBlocks(t *testing.T) {
	files := twoLevels()
	files["level2.txt"] = &fstest.MapFile{Data: []byte("..bg\n")}
	g := newTestGame(t, files, Options{})

	g.Step(frame(core.ActionRight))

	if g.Status() != StatusFailed {
		t.Fatalf("Status = %v, want failed", g.Status())
	}
	if !errors.Is(g.Err(), level.ErrMalformedLevel) {
		t.Errorf("Err = %v, want ErrMalformedLevel", g.Err())
	}
	if g.Board() != nil || g.Grid() != nil {
		t.Error("a failed level must not leave a board behind")
	}

	// Moves and undo do nothing while failed.
	g.Step(frame(core.ActionRight, core.ActionUndo))
	if g.Status() != StatusFailed {
		t.Errorf("Status = %v after move, want failed", g.Status())
	}

	g.Step(frame(core.ActionPrevLevel))
	if g.Status() != StatusPlaying || g.Sequence().Index() != 0 {
		t.Errorf("PrevLevel from failed: status %v index %d", g.Status(), g.Sequence().Index())
	}
	if g.Err() != nil {
		t.Errorf("Err = %v after recovery, want nil", g.Err())
	}
}

func TestGameMissingLevelFile(t *testing.T) {
	files := fstest.MapFS{
		level.ManifestFile: {Data: []byte("name: broken\nlevels:\n  - file: gone.txt\n")},
	}
	src := testSource(t, files)
	g := New(Options{Source: src})

	err := g.Reset(testCfg)
	if !errors.Is(err, level.ErrLevelNotFound) {
		t.Fatalf("Reset error = %v, want ErrLevelNotFound", err)
	}
	if g.Status() != StatusFailed || !g.State().Failed {
		t.Errorf("Status = %v, want failed", g.Status())
	}
}

func TestGameStartLevel(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{StartLevel: 2})
	if g.Level().Number() != 2 {
		t.Errorf("Level = %d, want 2", g.Level().Number())
	}

	g = New(Options{Source: testSource(t, twoLevels()), StartLevel: 5})
	if err := g.Reset(testCfg); !errors.Is(err, level.ErrLevelOutOfRange) {
		t.Errorf("Reset error = %v, want ErrLevelOutOfRange", err)
	}
}

func TestGameRestart(t *testing.T) {
	files := fstest.MapFS{
		"level1.txt": {Data: []byte("p.b.g\n")},
	}
	g := newTestGame(t, files, Options{})

	g.Step(frame(core.ActionRight, core.ActionRight))
	if g.State().Moves != 2 || g.State().Pushes != 1 {
		t.Fatalf("State = %+v, want 2 moves 1 push", g.State())
	}

	g.Step(frame(core.ActionRestart))
	if g.Player() != core.C(0, 0) {
		t.Errorf("player = %v after restart", g.Player())
	}
	if g.Boxes()[0].Pos != core.C(2, 0) {
		t.Errorf("box = %v after restart", g.Boxes()[0].Pos)
	}
	if g.State().Moves != 0 || g.State().Pushes != 0 {
		t.Errorf("counters not reset: %+v", g.State())
	}
}

func TestGameUndoAction(t *testing.T) {
	files := fstest.MapFS{
		"level1.txt": {Data: []byte("p.b.g\n")},
	}
	g := newTestGame(t, files, Options{})

	g.Step(frame(core.ActionUndo))
	if g.Notice() != "Nothing to undo" {
		t.Errorf("Notice = %q", g.Notice())
	}

	g.Step(frame(core.ActionRight, core.ActionRight, core.ActionUndo))
	if g.Player() != core.C(1, 0) || g.Boxes()[0].Pos != core.C(2, 0) {
		t.Errorf("after undo: player %v box %v", g.Player(), g.Boxes()[0].Pos)
	}
}

func TestGameToggleMusic(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{MusicOn: true})

	if !g.MusicOn() {
		t.Fatal("music should start on")
	}
	res := g.Step(frame(core.ActionToggleMusic))
	if g.MusicOn() || res.State.MusicOn {
		t.Error("music should be off after toggle")
	}
	g.Step(frame(core.ActionToggleMusic))
	if !g.MusicOn() {
		t.Error("music should be on after second toggle")
	}
}

func TestGameNoticeExpires(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{})
	g.Step(frame(core.ActionPrevLevel))
	if g.Notice() == "" {
		t.Fatal("expected notice")
	}

	for i := 0; i < noticeTicks; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Notice() != "" {
		t.Errorf("notice %q should have expired", g.Notice())
	}
}

func TestGameReload(t *testing.T) {
	files := twoLevels()
	g := newTestGame(t, files, Options{})
	g.Step(frame(core.ActionDown))

	files["level1.txt"] = &fstest.MapFile{Data: []byte(".pbg\n")}
	if err := g.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if g.Player() != core.C(1, 0) {
		t.Errorf("player = %v, want new spawn", g.Player())
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{})
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	out := scr.String()
	for _, want := range []string{"@@", "[]", "()", "test  1/2: Level 1", "Moves: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	small := core.NewScreen(30, 4)
	g.Render(small)
	if !strings.Contains(small.String(), "small") {
		t.Errorf("expected too-small message:\n%s", small.String())
	}
}

func TestGameRenderFailed(t *testing.T) {
	files := fstest.MapFS{
		"level1.txt": {Data: []byte("...\n")},
	}
	g := New(Options{Source: testSource(t, files)})
	//nolint:errcheck // The failure is what is rendered
	g.Reset(testCfg)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "could not be loaded") {
		t.Errorf("failed render:\n%s", scr.String())
	}
}

func TestGameSnapshot(t *testing.T) {
	g := newTestGame(t, twoLevels(), Options{StartLevel: 2})
	g.Step(frame(core.ActionRight))

	snap := g.Snapshot()
	if snap.Pack != "test" || snap.Level != 2 {
		t.Errorf("snapshot pack/level = %s/%d", snap.Pack, snap.Level)
	}
	if snap.Board != ".pbg" {
		t.Errorf("snapshot board = %q, want %q", snap.Board, ".pbg")
	}
	if snap.Moves != 1 || snap.Pushes != 0 {
		t.Errorf("snapshot counters = %d/%d", snap.Moves, snap.Pushes)
	}
}
