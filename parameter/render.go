package parameter

import "time"

// Frame Buffer & Output
const (
	// DefaultFPS is the presentation rate of the viewer loop
	DefaultFPS = 30

	// MaxFPS bounds configured presentation rates
	MaxFPS = 240

	// OutputBufferSize is the bufio size of the ANSI device writer (128KB)
	OutputBufferSize = 131072

	// FallbackWidth and FallbackHeight are used when the output size cannot be queried
	FallbackWidth  = 80
	FallbackHeight = 24

	// MaxGridCells caps frame buffer allocations
	MaxGridCells = 1 << 22
)

// Sprite File
const (
	// SpriteFileMaxDimension bounds width and height read from sprite files
	SpriteFileMaxDimension = 1 << 14
	// SpriteFileExt identifies sprite files before any compression suffix
	SpriteFileExt = ".ggs"
)

// Config Watching
const (
	// WatchDebounce coalesces bursts of filesystem events from editors
	WatchDebounce = 150 * time.Millisecond
)

// Metrics
const (
	// MetricsNamespace prefixes every exported metric
	MetricsNamespace = "glyphgrid"
)
