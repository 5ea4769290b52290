package sprite

import "sort"

// RuneSet is a fixed set of runes that never override lower layers
// Built once and validated at construction
type RuneSet struct {
	runes map[rune]struct{}
}

// DefaultTransparent treats only NUL as transparent
var DefaultTransparent = MustRuneSet(0)

// NewRuneSet validates every rune
func NewRuneSet(runes ...rune) (RuneSet, error) {
	s := RuneSet{runes: make(map[rune]struct{}, len(runes))}
	for _, r := range runes {
		if err := ValidateRune(r); err != nil {
			return RuneSet{}, err
		}
		s.runes[r] = struct{}{}
	}
	return s, nil
}

// MustRuneSet is NewRuneSet for static sets
func MustRuneSet(runes ...rune) RuneSet {
	s, err := NewRuneSet(runes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports membership
func (s RuneSet) Contains(r rune) bool {
	_, ok := s.runes[r]
	return ok
}

// Len returns the number of runes
func (s RuneSet) Len() int {
	return len(s.runes)
}

// Runes returns the members in ascending order
func (s RuneSet) Runes() []rune {
	out := make([]rune, 0, len(s.runes))
	for r := range s.runes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
