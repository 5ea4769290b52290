package parameter

// Image Import
const (
	// AlphaCutoff is the alpha below which a pixel becomes an empty cell
	AlphaCutoff uint8 = 32

	// AlphaLight, AlphaMedium, AlphaDense are the lower bounds of the density buckets above AlphaCutoff
	AlphaLight  uint8 = 96
	AlphaMedium uint8 = 160
	AlphaDense  uint8 = 224

	// MaxImportCells caps the resampled bitmap area to keep imports bounded
	MaxImportCells = 1 << 20
)

// Palette Extraction
const (
	// ExtractAlphaCutoff ignores mostly transparent pixels when building an image histogram
	ExtractAlphaCutoff uint8 = 128
)
