package loaders

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/spaghettifunk/rocketpartners/engine/resources"
)

// AudioClip is a fully decoded sound kept in memory so it can be played any
// number of times.
type AudioClip struct {
	Buffer *beep.Buffer
}

func (c *AudioClip) Format() beep.Format {
	return c.Buffer.Format()
}

func (c *AudioClip) Duration() time.Duration {
	return c.Buffer.Format().SampleRate.D(c.Buffer.Len())
}

// Streamer returns a new seekable stream over the whole clip.
func (c *AudioClip) Streamer() beep.StreamSeeker {
	return c.Buffer.Streamer(0, c.Buffer.Len())
}

// AudioLoader decodes wav files for both sounds and music.
type AudioLoader struct{}

func (al *AudioLoader) Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	streamer, format, err := wav.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode wav '%s': %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return &resources.Resource{
		FullPath: path,
		Type:     resourceType,
		DataSize: uint64(buffer.Len() * format.Width()),
		Data:     &AudioClip{Buffer: buffer},
	}, nil
}

func (al *AudioLoader) Unload(resource *resources.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}
