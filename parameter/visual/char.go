package visual

// DensityChars encodes partial pixel coverage when importing bitmaps, ordered from lowest to highest density
// Index is the alpha bucket: [cutoff,light) [light,medium) [medium,dense) [dense,255]
var DensityChars = [4]rune{
	'░', // ░ - light shade (25%)
	'▒', // ▒ - medium shade (50%)
	'▓', // ▓ - dark shade (75%)
	'█', // █ - full block (100%)
}

// Shape fill characters
const (
	FillSolid  = '█' // █
	FillShade  = '▒' // ▒
	FillDot    = '·' // ·
	ShapePlain = '#'
)

// Single-line box drawing characters
const (
	BorderSingleHorizontal  = '─' // U+2500
	BorderSingleVertical    = '│' // U+2502
	BorderSingleTopLeft     = '┌' // U+250C
	BorderSingleTopRight    = '┐' // U+2510
	BorderSingleBottomLeft  = '└' // U+2514
	BorderSingleBottomRight = '┘' // U+2518
)

// Double-line box drawing characters
const (
	BorderDoubleHorizontal  = '═' // U+2550
	BorderDoubleVertical    = '║' // U+2551
	BorderDoubleTopLeft     = '╔' // U+2554
	BorderDoubleTopRight    = '╗' // U+2557
	BorderDoubleBottomLeft  = '╚' // U+255A
	BorderDoubleBottomRight = '╝' // U+255D
)

// BoxChars groups the six runes of a rectangular frame
type BoxChars struct {
	Horizontal, Vertical                       rune
	TopLeft, TopRight, BottomLeft, BottomRight rune
}

// BoxSingle and BoxDouble are the frames used by shape box outlines
var (
	BoxSingle = BoxChars{
		Horizontal: BorderSingleHorizontal, Vertical: BorderSingleVertical,
		TopLeft: BorderSingleTopLeft, TopRight: BorderSingleTopRight,
		BottomLeft: BorderSingleBottomLeft, BottomRight: BorderSingleBottomRight,
	}
	BoxDouble = BoxChars{
		Horizontal: BorderDoubleHorizontal, Vertical: BorderDoubleVertical,
		TopLeft: BorderDoubleTopLeft, TopRight: BorderDoubleTopRight,
		BottomLeft: BorderDoubleBottomLeft, BottomRight: BorderDoubleBottomRight,
	}
)
