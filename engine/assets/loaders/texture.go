package loaders

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

// ImageLoader decodes a single png or bmp file.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	img, size, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		FullPath: path,
		Type:     resourceType,
		DataSize: uint64(size),
		Data:     img,
	}, nil
}

func (il *ImageLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

func decodeImage(path string) (image.Image, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, err
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, 0, fmt.Errorf("decode image '%s': %w", path, err)
	}
	return img, info.Size(), nil
}
