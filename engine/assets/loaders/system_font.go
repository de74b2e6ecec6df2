package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

const (
	DEFAULT_SYSTEM_FONT_SIZE = 16
	DEFAULT_SYSTEM_FONT_DPI  = 72
)

// SystemFontLoader reads a small ".fontcfg" file:
//
//	# comment
//	file=Go-Regular.ttf
//	size=16
//
// The font file is resolved relative to the config file. The resource data is
// a drawables.Typeface.
type SystemFontLoader struct{}

func (fl *SystemFontLoader) Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var fontFile string
	size := float64(DEFAULT_SYSTEM_FONT_SIZE)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("system font config '%s': malformed line '%s'", path, line)
		}
		switch strings.TrimSpace(key) {
		case "file":
			fontFile = strings.TrimSpace(value)
		case "size":
			s, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("system font config '%s': %w", path, err)
			}
			size = s
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if fontFile == "" {
		return nil, fmt.Errorf("system font config '%s' does not name a font file", path)
	}

	fontBytes, err := os.ReadFile(filepath.Join(filepath.Dir(path), fontFile))
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     DEFAULT_SYSTEM_FONT_DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return &resources.Resource{
		FullPath: path,
		Type:     resourceType,
		DataSize: uint64(len(fontBytes)),
		Data:     drawables.NewFaceTypeface(face),
	}, nil
}

func (fl *SystemFontLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
