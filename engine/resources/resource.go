package resources

import (
	"fmt"
	"time"
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown resource type, nothing can load it. */
	ResourceTypeNone ResourceType = iota
	/** @brief Single image resource type. */
	ResourceTypeImage
	/** @brief Packed sprite sheet described by an atlas file. */
	ResourceTypeTextureAtlas
	/** @brief Short sound effect, fully decoded in memory. */
	ResourceTypeSound
	/** @brief Music track. */
	ResourceTypeMusic
	/** @brief Bitmap font resource type. */
	ResourceTypeBitmapFont
	/** @brief System font resource type. */
	ResourceTypeSystemFont
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeImage:
		return "Image"
	case ResourceTypeTextureAtlas:
		return "TextureAtlas"
	case ResourceTypeSound:
		return "Sound"
	case ResourceTypeMusic:
		return "Music"
	case ResourceTypeBitmapFont:
		return "BitmapFont"
	case ResourceTypeSystemFont:
		return "SystemFont"
	case ResourceTypeNone:
		return "None"
	default:
		return fmt.Sprintf("ResourceType(%d)", int(t))
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The source the resource was requested with, relative to the assets root. */
	Name string
	/** @brief The resource type, which is also the loader that produced it. */
	Type ResourceType
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
	/** @brief When the resource was (re)loaded from disk. */
	LoadedAt time.Time
}
