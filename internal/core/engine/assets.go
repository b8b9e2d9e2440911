package engine

import "context"

// AssetLoader loads the images, sounds and fonts referenced by project data.
type AssetLoader interface {
	// LoadFirstAssetsAndStartBackgroundLoading loads what sceneName needs first and
	// keeps loading the rest in the background. onProgress may be nil.
	LoadFirstAssetsAndStartBackgroundLoading(ctx context.Context, sceneName string, onProgress func(loaded, total int)) error
}

// NopAssets loads nothing.
type NopAssets struct{}

func (NopAssets) LoadFirstAssetsAndStartBackgroundLoading(context.Context, string, func(int, int)) error {
	return nil
}
