package resources

import (
	"image"

	"golang.org/x/image/font/sfnt"
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown extension, never handed to a loader. */
	ResourceTypeNone ResourceType = iota
	/** @brief Text resource type. */
	ResourceTypeText
	/** @brief Binary resource type. */
	ResourceTypeBinary
	/** @brief Image resource type. */
	ResourceTypeImage
	/** @brief Bitmap font resource type (AngelCode .fnt). */
	ResourceTypeBitmapFont
	/** @brief System font resource type (TrueType/OpenType). */
	ResourceTypeSystemFont
	/** @brief Sound resource type, decoded to PCM. */
	ResourceTypeSound
	/** @brief Engine configuration (conf.toml). */
	ResourceTypeConfig
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeText:
		return "text"
	case ResourceTypeBinary:
		return "binary"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeBitmapFont:
		return "bitmap-font"
	case ResourceTypeSystemFont:
		return "system-font"
	case ResourceTypeSound:
		return "sound"
	case ResourceTypeConfig:
		return "config"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The logical path the resource was requested with, e.g. "/dragon1.png". */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/** @brief Decoded pixels of an image resource. */
type ImageResourceData struct {
	/** @brief Name of the registered decoder that read the file ("png", "jpeg", ...). */
	Format string
	Image  image.Image
}

/** @brief A parsed TrueType/OpenType font. Faces are created per pixel size. */
type SystemFontResourceData struct {
	Font *sfnt.Font
}

type FontGlyph struct {
	Codepoint rune
	X         int
	Y         int
	Width     int
	Height    int
	XOffset   int
	YOffset   int
	XAdvance  int
	PageID    int
}

/** @brief An AngelCode bitmap font: glyph metrics plus decoded page sheets. */
type BitmapFontResourceData struct {
	Face       string
	Size       int
	LineHeight int
	Baseline   int
	Glyphs     map[rune]FontGlyph
	Kernings   map[[2]rune]int
	Pages      []image.Image
}

/** @brief Sound decoded to interleaved 16-bit little endian stereo PCM. */
type SoundResourceData struct {
	Format     string
	SampleRate int
	PCM        []byte
}

type SoundLoadParams struct {
	SampleRate int
}
