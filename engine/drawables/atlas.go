package drawables

import (
	"image"
	"sort"
)

// TextureRegion is a named rectangle of an atlas page.
type TextureRegion struct {
	Name   string
	Index  int
	Page   image.Image
	Bounds image.Rectangle
}

// Width and Height are in pixels.
func (r *TextureRegion) Width() int  { return r.Bounds.Dx() }
func (r *TextureRegion) Height() int { return r.Bounds.Dy() }

// TextureAtlas groups regions packed into one or more page images.
type TextureAtlas struct {
	pages   map[string]image.Image
	regions map[string][]*TextureRegion
}

func NewTextureAtlas() *TextureAtlas {
	return &TextureAtlas{
		pages:   make(map[string]image.Image),
		regions: make(map[string][]*TextureRegion),
	}
}

func (a *TextureAtlas) AddPage(name string, img image.Image) {
	a.pages[name] = img
}

func (a *TextureAtlas) Page(name string) (image.Image, bool) {
	img, ok := a.pages[name]
	return img, ok
}

// AddRegion registers a region cut from a page previously added with AddPage.
// Regions sharing a name are kept sorted by index (animation frames).
func (a *TextureAtlas) AddRegion(page, name string, index int, bounds image.Rectangle) *TextureRegion {
	r := &TextureRegion{
		Name:   name,
		Index:  index,
		Page:   a.pages[page],
		Bounds: bounds,
	}
	list := append(a.regions[name], r)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Index < list[j].Index })
	a.regions[name] = list
	return r
}

// FindRegion returns the first region with the given name, or nil.
func (a *TextureAtlas) FindRegion(name string) *TextureRegion {
	list := a.regions[name]
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// FindRegions returns every frame registered under name, ordered by index.
func (a *TextureAtlas) FindRegions(name string) []*TextureRegion {
	return append([]*TextureRegion(nil), a.regions[name]...)
}

func (a *TextureAtlas) RegionNames() []string {
	names := make([]string, 0, len(a.regions))
	for n := range a.regions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
