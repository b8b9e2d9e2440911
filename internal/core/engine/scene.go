package engine

import (
	"fmt"
	"maps"
	"sort"

	"github.com/zeusync/hotreload/internal/core/observability/log"
	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/variables"
)

// Scene is one running level of the game: its declared object types, live
// objects, layers, variables and behavior shared data.
type Scene struct {
	game       *Game
	name       string
	objectData map[string]project.ObjectData
	objects    map[string][]*Object
	layers     []*Layer
	sharedData map[string]project.BehaviorSharedData
	background Color
	logger     log.Log

	Variables *variables.Container
}

func newScene(game *Game, name string) *Scene {
	return &Scene{
		game:       game,
		name:       name,
		objectData: make(map[string]project.ObjectData),
		objects:    make(map[string][]*Object),
		sharedData: make(map[string]project.BehaviorSharedData),
		logger:     game.logger.With(log.String("scene", name)),
		Variables:  variables.NewContainer(),
	}
}

// load instantiates the scene from its declaration.
func (s *Scene) load(data *project.ProjectData, layout *project.LayoutData) {
	s.background = Color{R: layout.R, G: layout.V, B: layout.B}
	if layout.Title != "" {
		s.game.SetWindowTitle(layout.Title)
	}
	s.Variables = variables.NewContainerFromData(layout.Variables)
	for _, sd := range layout.BehaviorsSharedData {
		s.sharedData[sd.Name] = sd
	}
	for _, od := range data.SceneObjects(layout) {
		s.RegisterObject(od)
	}
	for _, ld := range layout.Layers {
		s.AddLayer(ld)
	}
	s.CreateObjectsFromInstances(layout.Instances)
}

func (s *Scene) Name() string               { return s.name }
func (s *Scene) Game() *Game                { return s.game }
func (s *Scene) BackgroundColor() Color     { return s.background }
func (s *Scene) SetBackgroundColor(c Color) { s.background = c }
func (s *Scene) Logger() log.Log            { return s.logger }

// RegisterObject declares an object type in the scene, replacing a previous
// declaration with the same name. Only future instantiations are affected.
func (s *Scene) RegisterObject(data project.ObjectData) {
	s.objectData[data.Name] = data
}

// UnregisterObject removes an object declaration. Live instances are kept.
func (s *Scene) UnregisterObject(name string) {
	delete(s.objectData, name)
}

func (s *Scene) ObjectData(name string) (project.ObjectData, bool) {
	d, ok := s.objectData[name]
	return d, ok
}

// CreateObject instantiates a declared object with default placement.
func (s *Scene) CreateObject(name string) (*Object, error) {
	data, ok := s.objectData[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotDeclared, name)
	}

	o := &Object{
		id:        s.game.nextID(),
		name:      data.Name,
		typeName:  data.Type,
		scene:     s,
		Variables: variables.NewContainerFromData(data.Variables),
		effects:   NewEffectSet(data.Effects),
	}
	if factory, ok := s.game.registry.ObjectFactory(data.Type); ok {
		o.kind = factory(data)
	} else {
		s.logger.Warn("object type is not registered, using a generic object",
			log.String("object", data.Name), log.String("type", data.Type))
		o.kind = &genericKind{content: maps.Clone(data.Content)}
	}
	for _, bd := range data.Behaviors {
		if _, err := o.AddBehavior(bd); err != nil {
			s.logger.Error("cannot attach behavior", log.String("object", data.Name), log.Error(err))
		}
	}

	s.objects[name] = append(s.objects[name], o)
	return o, nil
}

// CreateObjectFromInstance instantiates an authored instance placement.
func (s *Scene) CreateObjectFromInstance(inst project.InstanceData) (*Object, error) {
	o, err := s.CreateObject(inst.Name)
	if err != nil {
		return nil, err
	}
	o.applyInstance(inst)
	return o, nil
}

// CreateObjectsFromInstances instantiates every placement whose object is declared.
func (s *Scene) CreateObjectsFromInstances(instances []project.InstanceData) []*Object {
	created := make([]*Object, 0, len(instances))
	for _, inst := range instances {
		o, err := s.CreateObjectFromInstance(inst)
		if err != nil {
			s.logger.Warn("skipping instance", log.String("uuid", inst.PersistentUUID), log.Error(err))
			continue
		}
		created = append(created, o)
	}
	return created
}

// DeleteObject removes an object from the scene and destroys it.
func (s *Scene) DeleteObject(o *Object) bool {
	list := s.objects[o.name]
	for i, candidate := range list {
		if candidate == o {
			s.objects[o.name] = append(list[:i], list[i+1:]...)
			if len(s.objects[o.name]) == 0 {
				delete(s.objects, o.name)
			}
			o.destroy()
			return true
		}
	}
	return false
}

// Objects returns the live instances of an object name.
func (s *Scene) Objects(name string) []*Object {
	return append([]*Object(nil), s.objects[name]...)
}

// AllObjects returns every live object, grouped by object name in name order.
func (s *Scene) AllObjects() []*Object {
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	var all []*Object
	for _, name := range names {
		all = append(all, s.objects[name]...)
	}
	return all
}

// AddLayer appends a layer on top of the existing ones.
func (s *Scene) AddLayer(data project.LayerData) *Layer {
	if l, ok := s.Layer(data.Name); ok {
		return l
	}
	l := newLayer(data, len(s.layers))
	s.layers = append(s.layers, l)
	return l
}

func (s *Scene) RemoveLayer(name string) bool {
	for i, l := range s.layers {
		if l.name == name {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) Layer(name string) (*Layer, bool) {
	for _, l := range s.layers {
		if l.name == name {
			return l, true
		}
	}
	return nil, false
}

// Layers returns the layers sorted by z-index.
func (s *Scene) Layers() []*Layer {
	out := append([]*Layer(nil), s.layers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].zIndex < out[j].zIndex })
	return out
}

func (s *Scene) SharedData(behaviorName string) (project.BehaviorSharedData, bool) {
	d, ok := s.sharedData[behaviorName]
	return d, ok
}

func (s *Scene) SetSharedData(data project.BehaviorSharedData) {
	s.sharedData[data.Name] = data
}

func (s *Scene) ClearSharedData(behaviorName string) {
	delete(s.sharedData, behaviorName)
}

// Step runs one frame of every object.
func (s *Scene) Step(dt float64) {
	for _, o := range s.AllObjects() {
		if !o.destroyed {
			o.Step(dt)
		}
	}
}

func (s *Scene) unload() {
	for _, list := range s.objects {
		for _, o := range list {
			o.destroy()
		}
	}
	s.objects = make(map[string][]*Object)
}
