package hotreload

import (
	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/variables"
)

// reinstantiateBehaviors re-creates every live behavior whose constructor was
// replaced by the reloaded scripts, carrying its runtime state over. It runs
// before the object diff so that declaration changes land on the new instances.
func (p *patcher) reinstantiateBehaviors(scene *engine.Scene, objects []project.ObjectData) {
	if len(p.changes.Changed) == 0 {
		return
	}
	for _, od := range objects {
		for _, bd := range od.Behaviors {
			if !p.changes.IsChanged(bd.Type) {
				continue
			}
			for _, o := range scene.Objects(od.Name) {
				p.reinstantiateBehavior(o, bd)
			}
		}
	}
}

func (p *patcher) reinstantiateBehavior(o *engine.Object, bd project.BehaviorData) {
	old, ok := o.Behavior(bd.Name)
	if !ok {
		return
	}
	state := old.ExportRuntimeState()
	o.DetachBehavior(bd.Name)
	fresh, err := o.AddBehavior(bd)
	if err != nil {
		old.OnDestroy()
		p.logs.addOnce(KindError, "Unable to re-create behavior %s of object %s: %v", bd.Name, o.Name(), err)
		return
	}
	fresh.ImportRuntimeState(engine.MergeRuntimeState(state, fresh.ExportRuntimeState()))
}

// patchObjects diffs object declarations. Declarations that vanished or changed
// type are unregistered but their live instances stay: only future instances
// use the new declaration.
func (p *patcher) patchObjects(scene *engine.Scene, oldObjects, newObjects []project.ObjectData) {
	old := make(map[string]project.ObjectData, len(oldObjects))
	for _, od := range oldObjects {
		old[od.Name] = od
	}
	current := make(map[string]project.ObjectData, len(newObjects))
	for _, nd := range newObjects {
		current[nd.Name] = nd
	}

	for _, od := range oldObjects {
		nd, ok := current[od.Name]
		if !ok || nd.Type != od.Type {
			scene.UnregisterObject(od.Name)
		}
	}

	for _, nd := range newObjects {
		od, ok := old[nd.Name]
		if !ok {
			scene.RegisterObject(nd)
			continue
		}
		if od.Type != nd.Type {
			scene.RegisterObject(nd)
			p.logs.warning("Object %s changed type from %s to %s. Existing instances keep the previous type, a fresh reload is recommended.", nd.Name, od.Type, nd.Type)
			continue
		}
		if project.Same(od, nd) {
			continue
		}
		scene.RegisterObject(nd)
		for _, o := range scene.Objects(nd.Name) {
			p.patchObject(o, od, nd)
		}
	}
}

func (p *patcher) patchObject(o *engine.Object, od, nd project.ObjectData) {
	if !o.UpdateFromObjectData(od, nd) {
		p.logs.addOnce(KindError, "Object %s could not be hot-reloaded. A fresh reload should be done.", nd.Name)
	}
	variables.Patch(od.Variables, nd.Variables, o.Variables)
	p.patchBehaviors(o, od.Behaviors, nd.Behaviors)
	p.patchEffects(o.Effects(), od.Effects, nd.Effects)
}

func (p *patcher) patchBehaviors(o *engine.Object, oldData, newData []project.BehaviorData) {
	old := make(map[string]project.BehaviorData, len(oldData))
	for _, bd := range oldData {
		old[bd.Name] = bd
	}
	kept := make(map[string]struct{}, len(newData))
	for _, bd := range newData {
		kept[bd.Name] = struct{}{}
	}

	for _, bd := range oldData {
		if _, ok := kept[bd.Name]; !ok {
			o.RemoveBehavior(bd.Name)
		}
	}

	for _, nd := range newData {
		od, existed := old[nd.Name]
		switch {
		case !existed:
			p.attachBehavior(o, nd)
		case od.Type != nd.Type:
			o.RemoveBehavior(nd.Name)
			p.attachBehavior(o, nd)
		case !project.Same(od, nd):
			b, ok := o.Behavior(nd.Name)
			if !ok {
				p.logs.addOnce(KindWarning, "Behavior %s of object %s is not attached to a live instance, skipping it.", nd.Name, o.Name())
				continue
			}
			if !b.UpdateFromBehaviorData(od, nd) {
				p.logs.addOnce(KindError, "Behavior %s of object %s could not be hot-reloaded. A fresh reload should be done.", nd.Name, o.Name())
			}
		}
	}
}

func (p *patcher) attachBehavior(o *engine.Object, bd project.BehaviorData) {
	if _, err := o.AddBehavior(bd); err != nil {
		p.logs.addOnce(KindError, "Unable to add behavior %s to object %s: %v", bd.Name, o.Name(), err)
	}
}
