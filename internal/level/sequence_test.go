package level

import (
	"errors"
	"testing"
	"testing/fstest"
)

func threeLevels(t *testing.T) Source {
	t.Helper()
	fsys := fstest.MapFS{
		"level1.txt": {Data: []byte("pbg")},
		"level2.txt": {Data: []byte("p.bg")},
		"level3.txt": {Data: []byte("p..bg")},
	}
	src, err := NewFSSource(fsys, "three")
	if err != nil {
		t.Fatalf("NewFSSource failed: %v", err)
	}
	return src
}

func TestSequenceClamp(t *testing.T) {
	seq := NewSequence(threeLevels(t), PolicyClamp)

	if err := seq.Retreat(); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Retreat at first level: expected ErrLevelOutOfRange, got %v", err)
	}
	if seq.Index() != 0 {
		t.Errorf("index should stay at 0, got %d", seq.Index())
	}

	for i := 1; i < 3; i++ {
		if err := seq.Advance(); err != nil {
			t.Fatalf("Advance to %d failed: %v", i, err)
		}
	}
	if !seq.IsLast() {
		t.Error("IsLast should be true at level 3")
	}

	if err := seq.Advance(); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Advance past last: expected ErrLevelOutOfRange, got %v", err)
	}
	if seq.Index() != 2 {
		t.Errorf("index should stay at 2, got %d", seq.Index())
	}
}

func TestSequenceWrap(t *testing.T) {
	seq := NewSequence(threeLevels(t), PolicyWrap)

	if err := seq.Retreat(); err != nil {
		t.Fatalf("Retreat failed: %v", err)
	}
	if seq.Index() != 2 {
		t.Errorf("Retreat from first should wrap to 2, got %d", seq.Index())
	}

	if err := seq.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if seq.Index() != 0 {
		t.Errorf("Advance from last should wrap to 0, got %d", seq.Index())
	}
}

func TestSequenceJumpAndLoad(t *testing.T) {
	seq := NewSequence(threeLevels(t), "")
	if seq.Policy() != PolicyClamp {
		t.Errorf("empty policy should default to clamp, got %q", seq.Policy())
	}

	if err := seq.Jump(3); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Jump(3): expected ErrLevelOutOfRange, got %v", err)
	}
	if err := seq.Jump(1); err != nil {
		t.Fatalf("Jump(1) failed: %v", err)
	}

	lvl, err := seq.Load(Dims{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if lvl.Index != 1 || lvl.Grid.Cols() != 4 {
		t.Errorf("loaded wrong level: index %d, cols %d", lvl.Index, lvl.Grid.Cols())
	}
}

func TestSequenceEmptySource(t *testing.T) {
	src, err := NewFSSource(fstest.MapFS{}, "empty")
	if err != nil {
		t.Fatalf("NewFSSource failed: %v", err)
	}
	seq := NewSequence(src, PolicyWrap)

	if err := seq.Advance(); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Advance on empty source: expected ErrLevelOutOfRange, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyClamp, false},
		{"clamp", PolicyClamp, false},
		{" Wrap ", PolicyWrap, false},
		{"error", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
