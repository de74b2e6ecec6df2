package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

type BitmapFontFileType int

const (
	BITMAP_FONT_FILE_TYPE_NOT_FOUND BitmapFontFileType = iota
	BITMAP_FONT_FILE_TYPE_FNT
)

// BitmapFontLoader loads AngelCode ".fnt" descriptors together with their
// page images. The resource data is a drawables.Typeface.
type BitmapFontLoader struct{}

func bitmapFontFileType(path string) BitmapFontFileType {
	switch filepath.Ext(path) {
	case ".fnt":
		return BITMAP_FONT_FILE_TYPE_FNT
	default:
		return BITMAP_FONT_FILE_TYPE_NOT_FOUND
	}
}

func (fl *BitmapFontLoader) Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	if bitmapFontFileType(path) == BITMAP_FONT_FILE_TYPE_NOT_FOUND {
		return nil, fmt.Errorf("unable to load bitmap font '%s': unsupported file type", path)
	}

	font, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load bitmap font '%s': %w", path, err)
	}

	return &resources.Resource{
		FullPath: path,
		Type:     resourceType,
		DataSize: uint64(len(font.Descriptor.Chars)),
		Data:     drawables.NewBitmapTypeface(font),
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *resources.Resource) error {
	if resource.Data != nil {
		resource.Data = nil
		resource.DataSize = 0
		resource.FullPath = ""
	}
	return nil
}
