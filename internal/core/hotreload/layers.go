package hotreload

import (
	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/project"
)

// patchLayers diffs layers by name, then reassigns every z-index from the
// declaration order. Lighting and rendering type cannot change on a live layer.
func (p *patcher) patchLayers(scene *engine.Scene, oldData, newData []project.LayerData) {
	old := make(map[string]project.LayerData, len(oldData))
	for _, ld := range oldData {
		old[ld.Name] = ld
	}
	kept := make(map[string]struct{}, len(newData))
	for _, ld := range newData {
		kept[ld.Name] = struct{}{}
	}
	for _, ld := range oldData {
		if _, ok := kept[ld.Name]; !ok {
			scene.RemoveLayer(ld.Name)
		}
	}

	for _, nd := range newData {
		od, existed := old[nd.Name]
		layer, alive := scene.Layer(nd.Name)
		if !existed || !alive {
			scene.AddLayer(nd)
			continue
		}
		p.patchLayer(scene, layer, od, nd)
	}

	for i, ld := range newData {
		if layer, ok := scene.Layer(ld.Name); ok {
			layer.SetZIndex(i)
		}
	}
}

func (p *patcher) patchLayer(scene *engine.Scene, layer *engine.Layer, od, nd project.LayerData) {
	if od.IsLightingLayer != nd.IsLightingLayer {
		p.logs.error("Layer %s in scene %s changed to or from a lighting layer. A fresh reload should be done.", nd.Name, scene.Name())
	}
	if od.RenderingType != nd.RenderingType {
		p.logs.error("Layer %s in scene %s changed its rendering type from %q to %q. A fresh reload should be done.", nd.Name, scene.Name(), od.RenderingType, nd.RenderingType)
	}
	if od.Visibility != nd.Visibility {
		layer.SetVisible(nd.Visibility)
	}
	if layer.IsLightingLayer() {
		if od.AmbientLightColorR != nd.AmbientLightColorR ||
			od.AmbientLightColorG != nd.AmbientLightColorG ||
			od.AmbientLightColorB != nd.AmbientLightColorB {
			layer.SetAmbientLightColor(engine.Color{R: nd.AmbientLightColorR, G: nd.AmbientLightColorG, B: nd.AmbientLightColorB})
		}
		if od.FollowBaseLayerCamera != nd.FollowBaseLayerCamera {
			layer.SetFollowBaseLayerCamera(nd.FollowBaseLayerCamera)
		}
	}
	p.patchEffects(layer.Effects(), od.Effects, nd.Effects)
}
