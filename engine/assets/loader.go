package assets

import "github.com/spaghettifunk/rocketpartners/engine/resources"

type Loader interface {
	Load(path string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) // `interface{}` here allows loaders to take various parameters
	Unload(*resources.Resource) error
}

// Asset is a declared game asset: where it lives under the assets root and
// which loader reads it.
type Asset interface {
	Source() string
	Type() resources.ResourceType
}

// SourcePath joins a catalog prefix and a declared file name the way every
// catalog builds its sources.
func SourcePath(prefix, src string) string {
	return prefix + src
}
