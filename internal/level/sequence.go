package level

import (
	"fmt"
	"strings"
)

// Policy decides what happens when the sequence runs past either end.
type Policy string

const (
	// PolicyClamp refuses to move past the first or last level.
	PolicyClamp Policy = "clamp"
	// PolicyWrap continues from the other end.
	PolicyWrap Policy = "wrap"
)

// ParsePolicy converts a config string to a Policy. Empty means clamp.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyClamp:
		return PolicyClamp, nil
	case PolicyWrap:
		return PolicyWrap, nil
	default:
		return "", fmt.Errorf("level: unknown bounds policy %q (want clamp or wrap)", s)
	}
}

// Sequence tracks the current level index within a source.
type Sequence struct {
	src    Source
	index  int
	policy Policy
}

// NewSequence starts at the first level of src.
func NewSequence(src Source, policy Policy) *Sequence {
	if policy == "" {
		policy = PolicyClamp
	}
	return &Sequence{src: src, policy: policy}
}

// Source returns the underlying level source.
func (s *Sequence) Source() Source {
	return s.src
}

// Index returns the current 0-indexed level.
func (s *Sequence) Index() int {
	return s.index
}

// Len returns the number of levels in the sequence.
func (s *Sequence) Len() int {
	return s.src.Len()
}

// Policy returns the bounds policy.
func (s *Sequence) Policy() Policy {
	return s.policy
}

// IsLast reports whether the current level is the final one.
func (s *Sequence) IsLast() bool {
	return s.index >= s.src.Len()-1
}

// Advance moves to the next level.
// Under PolicyClamp advancing from the last level returns
// ErrLevelOutOfRange and leaves the index unchanged.
func (s *Sequence) Advance() error {
	return s.move(1)
}

// Retreat moves to the previous level, with the same bounds rules as Advance.
func (s *Sequence) Retreat() error {
	return s.move(-1)
}

// Jump moves to level i (0-indexed). Out-of-range values always fail.
func (s *Sequence) Jump(i int) error {
	if i < 0 || i >= s.src.Len() {
		return fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, i+1, s.src.Len())
	}
	s.index = i
	return nil
}

func (s *Sequence) move(delta int) error {
	n := s.src.Len()
	if n == 0 {
		return fmt.Errorf("%w: %s has no levels", ErrLevelOutOfRange, s.src.Name())
	}

	next := s.index + delta
	if next < 0 || next >= n {
		if s.policy != PolicyWrap {
			return fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, next+1, n)
		}
		next = (next%n + n) % n
	}
	s.index = next
	return nil
}

// Load loads the current level.
func (s *Sequence) Load(dims Dims) (*Level, error) {
	return Load(s.src, s.index, ResolveDims(s.src, dims))
}
