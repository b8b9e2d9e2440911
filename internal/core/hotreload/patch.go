package hotreload

import (
	"context"

	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/observability/log"
	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/variables"
)

// patcher mutates the live game so that it matches new project data, given the
// data it was built from. The walk itself runs with no frame in progress.
type patcher struct {
	game    *engine.Game
	logs    *runLog
	changes engine.RegistryChanges
}

func (p *patcher) apply(ctx context.Context, oldData, newData *project.ProjectData) {
	p.game.Exclusive(func() { p.game.SetData(newData) })

	if current, ok := p.game.SceneStack().Current(); ok {
		err := p.game.Assets().LoadFirstAssetsAndStartBackgroundLoading(ctx, current.Name(), func(loaded, total int) {
			p.logs.logger.Debug("loading assets", log.Int("loaded", loaded), log.Int("total", total))
		})
		if err != nil {
			p.logs.warning("Unable to load the assets of scene %s: %v", current.Name(), err)
		}
	}

	p.game.Exclusive(func() {
		variables.Patch(oldData.Variables, newData.Variables, p.game.Variables())
		for _, scene := range p.game.SceneStack().Scenes() {
			p.patchScene(oldData, newData, scene)
		}
		p.patchExternalLayouts(oldData, newData)
	})
}

func (p *patcher) patchScene(oldData, newData *project.ProjectData, scene *engine.Scene) {
	name := scene.Name()
	newLayout, ok := newData.Layout(name)
	if !ok {
		p.logs.error("Scene %s was removed. A fresh reload should be done.", name)
		return
	}
	oldLayout, ok := oldData.Layout(name)
	if !ok {
		oldLayout = &project.LayoutData{Name: name}
	}

	scene.SetBackgroundColor(engine.Color{R: newLayout.R, G: newLayout.V, B: newLayout.B})
	if oldLayout.Title != newLayout.Title {
		p.game.SetWindowTitle(newLayout.Title)
	}
	variables.Patch(oldLayout.Variables, newLayout.Variables, scene.Variables)
	p.patchSharedData(scene, oldLayout.BehaviorsSharedData, newLayout.BehaviorsSharedData)

	newObjects := newData.SceneObjects(newLayout)
	p.reinstantiateBehaviors(scene, newObjects)
	p.patchObjects(scene, oldData.SceneObjects(oldLayout), newObjects)
	p.patchInstances(scene, oldLayout.Instances, newLayout.Instances)
	p.patchLayers(scene, oldLayout.Layers, newLayout.Layers)
}

func (p *patcher) patchSharedData(scene *engine.Scene, oldData, newData []project.BehaviorSharedData) {
	old := make(map[string]project.BehaviorSharedData, len(oldData))
	for _, sd := range oldData {
		old[sd.Name] = sd
	}
	kept := make(map[string]struct{}, len(newData))
	for _, nd := range newData {
		kept[nd.Name] = struct{}{}
		if od, ok := old[nd.Name]; ok && project.Same(od, nd) {
			continue
		}
		scene.SetSharedData(nd)
	}
	for _, od := range oldData {
		if _, ok := kept[od.Name]; !ok {
			scene.ClearSharedData(od.Name)
			p.logs.warning("Shared data of behavior %s was removed from scene %s.", od.Name, scene.Name())
		}
	}
}

// patchExternalLayouts re-runs the instance diff of every changed external
// layout in every running scene. Placements that are not alive in a scene and
// existed before are left alone, so only new placements get spawned there.
func (p *patcher) patchExternalLayouts(oldData, newData *project.ProjectData) {
	for i := range newData.ExternalLayouts {
		nl := &newData.ExternalLayouts[i]
		ol, ok := oldData.ExternalLayout(nl.Name)
		if !ok {
			// Not placed anywhere yet.
			continue
		}
		if project.Same(ol, nl) {
			continue
		}
		p.patchExternalLayout(ol.Instances, nl.Instances)
	}
	for i := range oldData.ExternalLayouts {
		ol := &oldData.ExternalLayouts[i]
		if _, ok := newData.ExternalLayout(ol.Name); !ok {
			p.patchExternalLayout(ol.Instances, nil)
		}
	}
}

func (p *patcher) patchExternalLayout(oldInstances, newInstances []project.InstanceData) {
	for _, scene := range p.game.SceneStack().Scenes() {
		p.patchInstances(scene, oldInstances, newInstances)
	}
}
