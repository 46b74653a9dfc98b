package codec

import "fmt"

// ID is the closed codec enumeration the façade dispatches on.
type ID int

const (
	LZ4 ID = iota
	LZ4HC
	Snappy
	Zlib
	Bzip2
	LZMA
	Zstd
)

func (id ID) String() string {
	switch id {
	case LZ4:
		return "lz4"
	case LZ4HC:
		return "lz4hc"
	case Snappy:
		return "snappy"
	case Zlib:
		return "zlib"
	case Bzip2:
		return "bzip2"
	case LZMA:
		return "lzma"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", int(id))
	}
}

// levelBounds records a codec's [min,max] level range and its default
// when the caller passes 0.
type levelBounds struct {
	min, max, def int
}

var boundsByID = map[ID]levelBounds{
	LZ4:    {min: 1, max: 65537, def: 1}, // acceleration factor, not a level
	LZ4HC:  {min: 1, max: 12, def: 9},
	Snappy: {min: 0, max: 0, def: 0}, // levelless
	Zlib:   {min: 1, max: 9, def: 6},
	Bzip2:  {min: 1, max: 9, def: 9},
	LZMA:   {min: 0, max: 9, def: 6},
	Zstd:   {min: 1, max: 22, def: 3},
}

// LevelBounds returns the codec's supported level range and default.
func (id ID) LevelBounds() (min, max, def int) {
	b := boundsByID[id]

	return b.min, b.max, b.def
}

// ClampLevel clamps level to the codec's supported range: a level
// below the minimum falls back to the codec's default; a level above
// the maximum saturates at the maximum; zero always means "use the
// default".
func (id ID) ClampLevel(level int) int {
	min, max, def := id.LevelBounds()
	switch {
	case level == 0:
		return def
	case level < min:
		return def
	case level > max:
		return max
	default:
		return level
	}
}

// DefaultExtraParam returns the codec's default extra tuning
// parameter.
func (id ID) DefaultExtraParam() int {
	switch id {
	case LZ4:
		return 1
	default:
		return 0
	}
}
