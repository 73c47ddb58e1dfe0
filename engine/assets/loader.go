package assets

import "github.com/spaghettifunk/anima2d/engine/resources"

// Loader decodes the file at fullPath. params carries per-type options such
// as *resources.SoundLoadParams and may be nil.
type Loader interface {
	Load(fullPath string, params interface{}) (*resources.Resource, error)
	Unload(*resources.Resource) error
}
