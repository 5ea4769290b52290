package palette

import "strconv"

// Size is the fixed number of entries in every palette
const Size = 16

// Index addresses one palette entry in [0,15], or InvalidIndex
type Index int8

const (
	// InvalidIndex marks a color with no palette match
	InvalidIndex Index = -1

	// BackgroundIndex is reserved for the background color
	BackgroundIndex Index = 0

	// MaxIndex is the highest valid index
	MaxIndex Index = Size - 1
)

// NewIndex clamps i into [0,15]
func NewIndex(i int) Index {
	if i < 0 {
		return 0
	}
	if i > int(MaxIndex) {
		return MaxIndex
	}
	return Index(i)
}

// Valid reports whether the index addresses a palette entry
func (i Index) Valid() bool {
	return i >= 0 && i <= MaxIndex
}

// String implements fmt.Stringer
func (i Index) String() string {
	if !i.Valid() {
		return "invalid"
	}
	return strconv.Itoa(int(i))
}
