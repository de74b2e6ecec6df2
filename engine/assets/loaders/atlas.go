package loaders

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spaghettifunk/rocketpartners/engine/core"
	"github.com/spaghettifunk/rocketpartners/engine/drawables"
	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

// TextureAtlasLoader reads a packed sprite sheet description (the libGDX
// ".atlas" text layout) and decodes every page it references. Page files are
// resolved relative to the atlas file.
type TextureAtlasLoader struct{}

// AtlasRegion is one region entry of an atlas file.
type AtlasRegion struct {
	Page   string
	Name   string
	Index  int
	Bounds image.Rectangle
}

func (tl *TextureAtlasLoader) Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pages, regions, err := ParseAtlas(file)
	if err != nil {
		return nil, fmt.Errorf("parse atlas '%s': %w", path, err)
	}

	atlas := drawables.NewTextureAtlas()
	var size int64
	dir := filepath.Dir(path)
	for _, page := range pages {
		img, n, err := decodeImage(filepath.Join(dir, page))
		if err != nil {
			return nil, err
		}
		atlas.AddPage(page, img)
		size += n
	}
	for _, r := range regions {
		atlas.AddRegion(r.Page, r.Name, r.Index, r.Bounds)
	}

	return &resources.Resource{
		FullPath: path,
		Type:     resourceType,
		DataSize: uint64(size),
		Data:     atlas,
	}, nil
}

func (tl *TextureAtlasLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// ParseAtlas returns the page file names and the regions of an atlas file.
// A page starts with its file name after a blank line (or at the top of the
// file), followed by "key: value" page attributes. Every other unindented line
// starts a region whose attributes are indented.
func ParseAtlas(r io.Reader) ([]string, []AtlasRegion, error) {
	var (
		pages   []string
		regions []AtlasRegion
		page    string
		current *AtlasRegion
		newPage = true
	)

	flush := func() {
		if current != nil {
			regions = append(regions, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			newPage = true
			continue
		}

		indented := raw[0] == ' ' || raw[0] == '\t'
		key, value, isAttr := strings.Cut(line, ":")

		switch {
		case newPage:
			page = line
			pages = append(pages, page)
			newPage = false
		case !indented && isAttr && current == nil:
			// page attribute (size, format, filter, repeat); pixel formats are not used
			core.LogDebug("atlas page '%s': %s=%s", page, key, strings.TrimSpace(value))
		case !indented:
			flush()
			current = &AtlasRegion{Page: page, Name: line, Index: -1}
		case current != nil && isAttr:
			if err := current.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		default:
			return nil, nil, fmt.Errorf("line %d: unexpected '%s': %w", lineNo, line, core.ErrUnexpectedData)
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return pages, regions, nil
}

func (r *AtlasRegion) set(key, value string) error {
	switch key {
	case "xy":
		x, y, err := parsePair(value)
		if err != nil {
			return err
		}
		size := r.Bounds.Size()
		r.Bounds = image.Rect(x, y, x+size.X, y+size.Y)
	case "size":
		w, h, err := parsePair(value)
		if err != nil {
			return err
		}
		r.Bounds.Max = r.Bounds.Min.Add(image.Pt(w, h))
	case "index":
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("index '%s': %w", value, err)
		}
		r.Index = i
	}
	return nil
}

func parsePair(value string) (int, int, error) {
	a, b, ok := strings.Cut(value, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected 'a, b' got '%s': %w", value, core.ErrUnexpectedData)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
