package variables

import "github.com/zeusync/hotreload/internal/core/project"

// Target is a set of named variables that Patch can mutate: a Container, or the
// children of a structure via Structure.
type Target interface {
	Get(name string) (*Variable, bool)
	Add(name string, v *Variable)
	Remove(name string)
}

// Structure exposes the children of a structure variable as a Target.
func Structure(v *Variable) Target {
	return structureTarget{v: v}
}

type structureTarget struct {
	v *Variable
}

func (s structureTarget) Get(name string) (*Variable, bool) { return s.v.Child(name) }
func (s structureTarget) Add(name string, c *Variable)      { s.v.AddChild(name, c) }
func (s structureTarget) Remove(name string)                { s.v.RemoveChild(name) }

// Patch mutates live so that it matches newData, given that it was built from
// oldData. Nodes whose declaration did not change keep their identity, and with it
// any value gameplay assigned to them. Arrays are always replaced wholesale: their
// runtime indices may have drifted from the declared ones, so elements cannot be
// matched reliably. A nil oldData treats every new variable as an addition.
func Patch(oldData, newData []project.VariableData, live Target) {
	old := make(map[string]*project.VariableData, len(oldData))
	for i := range oldData {
		old[oldData[i].Name] = &oldData[i]
	}
	kept := make(map[string]struct{}, len(newData))

	for i := range newData {
		nd := &newData[i]
		kept[nd.Name] = struct{}{}
		od, existed := old[nd.Name]
		if !existed {
			live.Add(nd.Name, FromData(*nd))
			continue
		}
		patchVariable(od, nd, live)
	}

	for i := range oldData {
		if _, ok := kept[oldData[i].Name]; !ok {
			live.Remove(oldData[i].Name)
		}
	}
}

func patchVariable(od, nd *project.VariableData, live Target) {
	cur, ok := live.Get(nd.Name)
	if !ok {
		live.Add(nd.Name, FromData(*nd))
		return
	}

	switch {
	case nd.Type.IsPrimitive():
		if primitiveChanged(od, nd) {
			live.Remove(nd.Name)
			live.Add(nd.Name, FromData(*nd))
		}
	case nd.Type == project.VariableArray:
		live.Remove(nd.Name)
		live.Add(nd.Name, FromData(*nd))
	default:
		cur.CastTo(KindStructure)
		var oldChildren []project.VariableData
		if od.Type == project.VariableStructure {
			oldChildren = od.Children
		}
		Patch(oldChildren, nd.Children, Structure(cur))
	}
}

// primitiveChanged compares declared literals, not the live value: a value changed
// by gameplay is kept as long as its declaration is unchanged.
func primitiveChanged(od, nd *project.VariableData) bool {
	if !od.Type.IsPrimitive() || od.Type != nd.Type {
		return true
	}
	return project.Literal(od.Type, od.Value) != project.Literal(nd.Type, nd.Value)
}
