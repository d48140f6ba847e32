package sokoban

import (
	"errors"
	"testing"

	"github.com/vovakirdan/slimekoban/internal/core"
	"github.com/vovakirdan/slimekoban/internal/level"
)

func newTestBoard(t *testing.T, layout string, rules Rules) *Board {
	t.Helper()
	grid, err := level.Parse([]byte(layout), level.Dims{})
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", layout, err)
	}
	b, err := NewBoard(grid, rules)
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b
}

func TestTryMoveExamples(t *testing.T) {
	tests := []struct {
		name      string
		layout    string
		moves     []core.Dir
		outcomes  []Outcome
		player    core.Coord
		box       core.Coord
		boxInGoal bool
	}{
		{
			name:      "push onto goal completes",
			layout:    "p b g",
			moves:     []core.Dir{core.East},
			outcomes:  []Outcome{LevelComplete},
			player:    core.C(1, 0),
			box:       core.C(2, 0),
			boxInGoal: true,
		},
		{
			name:     "push into wall is a no-op",
			layout:   "p b x",
			moves:    []core.Dir{core.East},
			outcomes: []Outcome{Blocked},
			player:   core.C(0, 0),
			box:      core.C(1, 0),
		},
		{
			name:      "walk then push",
			layout:    "p . b g",
			moves:     []core.Dir{core.East, core.East},
			outcomes:  []Outcome{Moved, LevelComplete},
			player:    core.C(2, 0),
			box:       core.C(3, 0),
			boxInGoal: true,
		},
		{
			name:     "push box into box",
			layout:   "p b b g",
			moves:    []core.Dir{core.East},
			outcomes: []Outcome{Blocked},
			player:   core.C(0, 0),
			box:      core.C(1, 0),
		},
		{
			name:     "push box off the grid edge",
			layout:   "p b",
			moves:    []core.Dir{core.East},
			outcomes: []Outcome{Blocked},
			player:   core.C(0, 0),
			box:      core.C(1, 0),
		},
		{
			name:     "push without a goal",
			layout:   "p b . g",
			moves:    []core.Dir{core.East},
			outcomes: []Outcome{MovedPushingBox},
			player:   core.C(1, 0),
			box:      core.C(2, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, tt.layout, Rules{})
			for i, d := range tt.moves {
				got, err := b.TryMove(d)
				if err != nil {
					t.Fatalf("TryMove(%v) error: %v", d, err)
				}
				if got != tt.outcomes[i] {
					t.Errorf("move %d: outcome = %v, want %v", i, got, tt.outcomes[i])
				}
			}
			if b.Player() != tt.player {
				t.Errorf("player = %v, want %v", b.Player(), tt.player)
			}
			boxes := b.Boxes()
			if boxes[0].Pos != tt.box {
				t.Errorf("box = %v, want %v", boxes[0].Pos, tt.box)
			}
			if boxes[0].InGoal != tt.boxInGoal {
				t.Errorf("box inGoal = %v, want %v", boxes[0].InGoal, tt.boxInGoal)
			}
		})
	}
}

func TestTryMoveBlockedIsNoOp(t *testing.T) {
	b := newTestBoard(t, `
xxxxxx
x....x
xpbbgx
xxxxxx
`, Rules{})

	before := b.String()
	tests := []core.Dir{core.West, core.South, core.East}
	for _, d := range tests {
		got, err := b.TryMove(d)
		if err != nil {
			t.Fatalf("TryMove(%v) error: %v", d, err)
		}
		if got != Blocked {
			t.Fatalf("TryMove(%v) = %v, want Blocked", d, got)
		}
	}

	if b.String() != before {
		t.Errorf("board changed after blocked moves:\n%s\nwant:\n%s", b.String(), before)
	}
	if b.Moves() != 0 || b.Pushes() != 0 {
		t.Errorf("counters = %d/%d, want 0/0", b.Moves(), b.Pushes())
	}
	if b.CanUndo() {
		t.Error("blocked moves must not be recorded for undo")
	}
}

func TestTryMoveInvalidDirection(t *testing.T) {
	b := newTestBoard(t, "p.", Rules{})

	for _, d := range []core.Dir{core.DirNone, core.Dir(42)} {
		got, err := b.TryMove(d)
		if !errors.Is(err, ErrInvalidDirection) {
			t.Errorf("TryMove(%d) error = %v, want ErrInvalidDirection", int(d), err)
		}
		if got != Blocked {
			t.Errorf("TryMove(%d) = %v, want Blocked", int(d), got)
		}
	}
	if b.Player() != core.C(0, 0) {
		t.Errorf("player moved to %v", b.Player())
	}
}

func TestInGoalRecomputedOnEveryPush(t *testing.T) {
	b := newTestBoard(t, "pbg.", Rules{})

	if got, _ := b.TryMove(core.East); got != LevelComplete {
		t.Fatalf("first push = %v, want LevelComplete", got)
	}
	if !b.Boxes()[0].InGoal {
		t.Fatal("box should be in goal")
	}

	if got, _ := b.TryMove(core.East); got != MovedPushingBox {
		t.Fatalf("second push = %v, want MovedPushingBox", got)
	}
	if b.Boxes()[0].InGoal {
		t.Error("box pushed off the goal should not be in goal")
	}
	if b.Complete() {
		t.Error("board should not be complete")
	}
}

func TestCompleteRequiresEveryBox(t *testing.T) {
	b := newTestBoard(t, `
pbg
.bg
`, Rules{})

	if got, _ := b.TryMove(core.East); got != MovedPushingBox {
		t.Fatalf("first push = %v, want MovedPushingBox", got)
	}
	if b.Complete() {
		t.Fatal("one box of two on goal must not complete")
	}

	b.TryMove(core.West)
	if got, _ := b.TryMove(core.South); got != Moved {
		t.Fatalf("move south = %v, want Moved", got)
	}
	if got, _ := b.TryMove(core.East); got != LevelComplete {
		t.Fatalf("second push = %v, want LevelComplete", got)
	}
}

func TestZeroBoxCompletion(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		want  Outcome
	}{
		{"not complete by default", Rules{}, Moved},
		{"vacuous completion", Rules{VacuousCompletion: true}, LevelComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, "p.g", tt.rules)
			if b.Complete() != tt.rules.VacuousCompletion {
				t.Errorf("Complete() = %v, want %v", b.Complete(), tt.rules.VacuousCompletion)
			}
			got, err := b.TryMove(core.East)
			if err != nil {
				t.Fatalf("TryMove error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TryMove = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResetMatchesFreshLoad(t *testing.T) {
	layout := `
xxxxxx
xp.b.x
x.b.gx
x...gx
xxxxxx
`
	fresh := newTestBoard(t, layout, Rules{})
	b := newTestBoard(t, layout, Rules{})

	for _, d := range []core.Dir{core.East, core.East, core.South, core.West, core.South, core.East} {
		b.TryMove(d)
	}
	if b.String() == fresh.String() {
		t.Fatal("moves had no effect, test layout is wrong")
	}

	b.Reset()
	b.Reset()

	if b.String() != fresh.String() {
		t.Errorf("after Reset:\n%s\nwant:\n%s", b.String(), fresh.String())
	}
	if len(b.Boxes()) != len(fresh.Boxes()) {
		t.Errorf("box count = %d, want %d", len(b.Boxes()), len(fresh.Boxes()))
	}
	if b.Moves() != 0 || b.Pushes() != 0 || b.CanUndo() {
		t.Error("Reset should clear counters and history")
	}
}

func TestUndo(t *testing.T) {
	b := newTestBoard(t, "p.b.g", Rules{})
	initial := b.String()

	b.TryMove(core.East)
	afterWalk := b.String()
	b.TryMove(core.East)

	if b.Moves() != 2 || b.Pushes() != 1 {
		t.Fatalf("counters = %d/%d, want 2/1", b.Moves(), b.Pushes())
	}

	if !b.Undo() {
		t.Fatal("Undo of push returned false")
	}
	if b.String() != afterWalk {
		t.Errorf("after undoing push:\n%s\nwant:\n%s", b.String(), afterWalk)
	}
	if b.Pushes() != 0 {
		t.Errorf("pushes = %d, want 0", b.Pushes())
	}

	if !b.Undo() {
		t.Fatal("Undo of walk returned false")
	}
	if b.String() != initial {
		t.Errorf("after undoing walk:\n%s\nwant:\n%s", b.String(), initial)
	}
	if b.Undo() {
		t.Error("Undo with empty history should return false")
	}
}

func TestUndoRestoresInGoal(t *testing.T) {
	b := newTestBoard(t, "pbg.", Rules{})
	b.TryMove(core.East)
	b.TryMove(core.East)
	b.Undo()

	if !b.Boxes()[0].InGoal {
		t.Error("undo should restore the box onto its goal")
	}
	if !b.Complete() {
		t.Error("board should be complete again after undo")
	}
}

func TestNewBoardRequiresSpawn(t *testing.T) {
	grid, err := level.Parse([]byte("..b.g"), level.Dims{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := NewBoard(grid, Rules{}); !errors.Is(err, level.ErrMalformedLevel) {
		t.Errorf("NewBoard error = %v, want ErrMalformedLevel", err)
	}
}

func TestBoardString(t *testing.T) {
	b := newTestBoard(t, "xpbgd", Rules{})
	if got := b.String(); got != "xpbgd" {
		t.Errorf("initial String() = %q", got)
	}

	b.TryMove(core.East)
	if got := b.String(); got != "x.pBd" {
		t.Errorf("String() after push = %q, want %q", got, "x.pBd")
	}
}
