package hotreload

import (
	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/project"
)

// patchEffects diffs effects by name. An effect whose type changed is replaced,
// one whose parameters changed is updated parameter by parameter.
func (p *patcher) patchEffects(live *engine.EffectSet, oldData, newData []project.EffectData) {
	old := make(map[string]project.EffectData, len(oldData))
	for _, ed := range oldData {
		old[ed.Name] = ed
	}
	kept := make(map[string]struct{}, len(newData))
	for _, ed := range newData {
		kept[ed.Name] = struct{}{}
	}
	for _, ed := range oldData {
		if _, ok := kept[ed.Name]; !ok {
			live.Remove(ed.Name)
		}
	}

	for _, nd := range newData {
		od, existed := old[nd.Name]
		e, attached := live.Get(nd.Name)
		if !existed || !attached || od.EffectType != nd.EffectType {
			live.Add(nd)
			continue
		}
		for name, v := range nd.BooleanParameters {
			if prev, ok := od.BooleanParameters[name]; !ok || prev != v {
				e.SetBooleanParameter(name, v)
			}
		}
		for name, v := range nd.DoubleParameters {
			if prev, ok := od.DoubleParameters[name]; !ok || prev != v {
				e.SetDoubleParameter(name, v)
			}
		}
		for name, v := range nd.StringParameters {
			if prev, ok := od.StringParameters[name]; !ok || prev != v {
				e.SetStringParameter(name, v)
			}
		}
	}
}
