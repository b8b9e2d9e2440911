package project

// VariableType is the declared type of a variable node.
type VariableType string

const (
	VariableNumber    VariableType = "number"
	VariableString    VariableType = "string"
	VariableBoolean   VariableType = "boolean"
	VariableStructure VariableType = "structure"
	VariableArray     VariableType = "array"
)

// IsPrimitive reports whether the type holds a single value.
func (t VariableType) IsPrimitive() bool {
	return t != VariableStructure && t != VariableArray
}

// ProjectData is the declarative snapshot of a whole game as exported by the editor.
type ProjectData struct {
	Properties      Properties           `json:"properties" yaml:"properties"`
	Variables       []VariableData       `json:"variables,omitempty" yaml:"variables,omitempty"`
	Objects         []ObjectData         `json:"objects,omitempty" yaml:"objects,omitempty"`
	Layouts         []LayoutData         `json:"layouts,omitempty" yaml:"layouts,omitempty"`
	ExternalLayouts []ExternalLayoutData `json:"externalLayouts,omitempty" yaml:"externalLayouts,omitempty"`
}

type Properties struct {
	Name        string `json:"name" yaml:"name"`
	WindowTitle string `json:"windowTitle,omitempty" yaml:"windowTitle,omitempty"`
}

// VariableData declares a variable. Value is only meaningful for primitive types,
// Children only for structures (named) and arrays (unnamed, ordered).
type VariableData struct {
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Type     VariableType   `json:"type" yaml:"type"`
	Value    any            `json:"value,omitempty" yaml:"value,omitempty"`
	Children []VariableData `json:"children,omitempty" yaml:"children,omitempty"`
}

// LayoutData declares a scene.
type LayoutData struct {
	Name                string               `json:"name" yaml:"name"`
	R                   int                  `json:"r" yaml:"r"`
	V                   int                  `json:"v" yaml:"v"`
	B                   int                  `json:"b" yaml:"b"`
	Title               string               `json:"title,omitempty" yaml:"title,omitempty"`
	Variables           []VariableData       `json:"variables,omitempty" yaml:"variables,omitempty"`
	BehaviorsSharedData []BehaviorSharedData `json:"behaviorsSharedData,omitempty" yaml:"behaviorsSharedData,omitempty"`
	Objects             []ObjectData         `json:"objects,omitempty" yaml:"objects,omitempty"`
	Instances           []InstanceData       `json:"instances,omitempty" yaml:"instances,omitempty"`
	Layers              []LayerData          `json:"layers,omitempty" yaml:"layers,omitempty"`
}

// ObjectData declares an object type usable by instances. Content carries the
// fields specific to the object type (animations, text, ...).
type ObjectData struct {
	Name      string         `json:"name" yaml:"name"`
	Type      string         `json:"type" yaml:"type"`
	Variables []VariableData `json:"variables,omitempty" yaml:"variables,omitempty"`
	Behaviors []BehaviorData `json:"behaviors,omitempty" yaml:"behaviors,omitempty"`
	Effects   []EffectData   `json:"effects,omitempty" yaml:"effects,omitempty"`
	Content   map[string]any `json:"content,omitempty" yaml:"content,omitempty"`
}

type BehaviorData struct {
	Name       string         `json:"name" yaml:"name"`
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

type BehaviorSharedData struct {
	Name       string         `json:"name" yaml:"name"`
	Type       string         `json:"type" yaml:"type"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

type EffectData struct {
	Name              string             `json:"name" yaml:"name"`
	EffectType        string             `json:"effectType" yaml:"effectType"`
	BooleanParameters map[string]bool    `json:"booleanParameters,omitempty" yaml:"booleanParameters,omitempty"`
	DoubleParameters  map[string]float64 `json:"doubleParameters,omitempty" yaml:"doubleParameters,omitempty"`
	StringParameters  map[string]string  `json:"stringParameters,omitempty" yaml:"stringParameters,omitempty"`
}

// InstanceData is an authored placement of an object in a scene or external layout.
type InstanceData struct {
	PersistentUUID   string           `json:"persistentUuid,omitempty" yaml:"persistentUuid,omitempty"`
	Name             string           `json:"name" yaml:"name"`
	X                float64          `json:"x" yaml:"x"`
	Y                float64          `json:"y" yaml:"y"`
	Z                float64          `json:"z,omitempty" yaml:"z,omitempty"`
	Angle            float64          `json:"angle" yaml:"angle"`
	RotationX        float64          `json:"rotationX,omitempty" yaml:"rotationX,omitempty"`
	RotationY        float64          `json:"rotationY,omitempty" yaml:"rotationY,omitempty"`
	ZOrder           int              `json:"zOrder" yaml:"zOrder"`
	Layer            string           `json:"layer" yaml:"layer"`
	CustomSize       bool             `json:"customSize,omitempty" yaml:"customSize,omitempty"`
	Width            float64          `json:"width" yaml:"width"`
	Height           float64          `json:"height" yaml:"height"`
	Depth            float64          `json:"depth,omitempty" yaml:"depth,omitempty"`
	InitialVariables []VariableData   `json:"initialVariables,omitempty" yaml:"initialVariables,omitempty"`
	NumberProperties []NumberProperty `json:"numberProperties,omitempty" yaml:"numberProperties,omitempty"`
	StringProperties []StringProperty `json:"stringProperties,omitempty" yaml:"stringProperties,omitempty"`
}

type NumberProperty struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

type StringProperty struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type LayerData struct {
	Name                  string       `json:"name" yaml:"name"`
	Visibility            bool         `json:"visibility" yaml:"visibility"`
	IsLightingLayer       bool         `json:"isLightingLayer,omitempty" yaml:"isLightingLayer,omitempty"`
	FollowBaseLayerCamera bool         `json:"followBaseLayerCamera,omitempty" yaml:"followBaseLayerCamera,omitempty"`
	AmbientLightColorR    int          `json:"ambientLightColorR,omitempty" yaml:"ambientLightColorR,omitempty"`
	AmbientLightColorG    int          `json:"ambientLightColorG,omitempty" yaml:"ambientLightColorG,omitempty"`
	AmbientLightColorB    int          `json:"ambientLightColorB,omitempty" yaml:"ambientLightColorB,omitempty"`
	RenderingType         string       `json:"renderingType,omitempty" yaml:"renderingType,omitempty"`
	Effects               []EffectData `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// ExternalLayoutData is a named list of instances that can be placed into any scene.
type ExternalLayoutData struct {
	Name             string         `json:"name" yaml:"name"`
	AssociatedLayout string         `json:"associatedLayout,omitempty" yaml:"associatedLayout,omitempty"`
	Instances        []InstanceData `json:"instances,omitempty" yaml:"instances,omitempty"`
}

// ScriptFile is a code module of the exported game, with a hash of its content.
type ScriptFile struct {
	Path string `json:"path" yaml:"path"`
	Hash string `json:"hash" yaml:"hash"`
}

// Manifest is what an export declares: the project data and the code modules to run.
// EventsCodeFiles are the per-scene generated event modules, whose hashes are not tracked.
type Manifest struct {
	ProjectData           ProjectData  `json:"projectData" yaml:"projectData"`
	ScriptFiles           []ScriptFile `json:"scriptFiles,omitempty" yaml:"scriptFiles,omitempty"`
	EventsCodeFiles       []string     `json:"eventsCodeFiles,omitempty" yaml:"eventsCodeFiles,omitempty"`
	ProjectDataOnlyExport bool         `json:"projectDataOnlyExport,omitempty" yaml:"projectDataOnlyExport,omitempty"`
}

// Layout returns the scene declaration with the given name.
func (p *ProjectData) Layout(name string) (*LayoutData, bool) {
	for i := range p.Layouts {
		if p.Layouts[i].Name == name {
			return &p.Layouts[i], true
		}
	}
	return nil, false
}

// ExternalLayout returns the external layout with the given name.
func (p *ProjectData) ExternalLayout(name string) (*ExternalLayoutData, bool) {
	for i := range p.ExternalLayouts {
		if p.ExternalLayouts[i].Name == name {
			return &p.ExternalLayouts[i], true
		}
	}
	return nil, false
}

// Object returns the global object declaration with the given name.
func (p *ProjectData) Object(name string) (*ObjectData, bool) {
	for i := range p.Objects {
		if p.Objects[i].Name == name {
			return &p.Objects[i], true
		}
	}
	return nil, false
}

// SceneObjects returns the objects usable in the layout: global objects first,
// then the layout's own. A layout object shadows a global one with the same name.
func (p *ProjectData) SceneObjects(layout *LayoutData) []ObjectData {
	if layout == nil {
		return append([]ObjectData(nil), p.Objects...)
	}
	own := make(map[string]struct{}, len(layout.Objects))
	for _, o := range layout.Objects {
		own[o.Name] = struct{}{}
	}
	out := make([]ObjectData, 0, len(p.Objects)+len(layout.Objects))
	for _, o := range p.Objects {
		if _, shadowed := own[o.Name]; !shadowed {
			out = append(out, o)
		}
	}
	return append(out, layout.Objects...)
}

// Behavior returns the behavior declaration with the given name.
func (o *ObjectData) Behavior(name string) (*BehaviorData, bool) {
	for i := range o.Behaviors {
		if o.Behaviors[i].Name == name {
			return &o.Behaviors[i], true
		}
	}
	return nil, false
}
