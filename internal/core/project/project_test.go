package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestJSON = `{
  "projectData": {
    "properties": {"name": "Demo"},
    "variables": [{"name": "lives", "type": "number", "value": 3}],
    "layouts": [{
      "name": "Level1", "r": 1, "v": 2, "b": 3,
      "instances": [{"persistentUuid": "i1", "name": "Enemy", "x": 4, "y": 5, "layer": "", "zOrder": 1}]
    }]
  },
  "scriptFiles": [{"path": "code/a.js", "hash": "1"}],
  "projectDataOnlyExport": true
}`

const manifestYAML = `
projectData:
  properties:
    name: Demo
  variables:
    - name: lives
      type: number
      value: 3
  layouts:
    - name: Level1
      r: 1
      v: 2
      b: 3
      instances:
        - persistentUuid: i1
          name: Enemy
          x: 4
          y: 5
          layer: ""
          zOrder: 1
scriptFiles:
  - path: code/a.js
    hash: "1"
projectDataOnlyExport: true
`

func TestLoadFormatsAgree(t *testing.T) {
	fromJSON, err := LoadJSON(strings.NewReader(manifestJSON))
	require.NoError(t, err)
	fromYAML, err := LoadYAML(strings.NewReader(manifestYAML))
	require.NoError(t, err)

	assert.True(t, fromJSON.ProjectDataOnlyExport)
	assert.Equal(t, fromJSON.ScriptFiles, fromYAML.ScriptFiles)
	assert.Equal(t, fromJSON.ProjectData.Layouts[0].Instances, fromYAML.ProjectData.Layouts[0].Instances)
	// 3 decodes as float64 from JSON and int from YAML; the literal is the same.
	assert.Equal(t,
		Literal(VariableNumber, fromJSON.ProjectData.Variables[0].Value),
		Literal(VariableNumber, fromYAML.ProjectData.Variables[0].Value))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	m, err := LoadFile(write("m.json", manifestJSON))
	require.NoError(t, err)
	assert.Equal(t, "Demo", m.ProjectData.Properties.Name)

	m, err = LoadFile(write("m.yml", manifestYAML))
	require.NoError(t, err)
	assert.Equal(t, "Level1", m.ProjectData.Layouts[0].Name)

	_, err = LoadFile(write("m.xml", "<x/>"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(write("bad.json", "{"))
	assert.ErrorIs(t, err, ErrInvalidManifest)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrManifestNotFound)

	data, err := LoadProjectFile(write("p.json", `{"properties": {"name": "Bare"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Bare", data.Properties.Name)
}

func TestSources(t *testing.T) {
	_, err := StaticSource{}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrManifestNotFound)

	path := filepath.Join(t.TempDir(), "m.json")
	require.NoError(t, os.WriteFile(path, []byte(manifestJSON), 0o600))
	m, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, m.ScriptFiles, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileSource{Path: path}.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSame(t *testing.T) {
	a := BehaviorData{Name: "Mover", Type: "Movement::Mover", Properties: map[string]any{"speed": 1.0, "dir": "left"}}
	b := BehaviorData{Name: "Mover", Type: "Movement::Mover", Properties: map[string]any{"dir": "left", "speed": 1.0}}
	assert.True(t, Same(a, b), "map order does not matter")
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b.Properties["speed"] = 2.0
	assert.False(t, Same(a, b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestHashScript(t *testing.T) {
	h := HashScript([]byte("console.log(1)"))
	assert.Len(t, h, 16)
	assert.Equal(t, h, HashScript([]byte("console.log(1)")))
	assert.NotEqual(t, h, HashScript([]byte("console.log(2)")))
}

func TestAssignMissingUUIDs(t *testing.T) {
	p := &ProjectData{
		Layouts:         []LayoutData{{Instances: []InstanceData{{PersistentUUID: "kept"}, {}}}},
		ExternalLayouts: []ExternalLayoutData{{Instances: []InstanceData{{}}}},
	}
	assert.Equal(t, 2, AssignMissingUUIDs(p))
	assert.Equal(t, "kept", p.Layouts[0].Instances[0].PersistentUUID)
	assert.NotEmpty(t, p.Layouts[0].Instances[1].PersistentUUID)
	assert.NotEqual(t, p.Layouts[0].Instances[1].PersistentUUID, p.ExternalLayouts[0].Instances[0].PersistentUUID)
	assert.Zero(t, AssignMissingUUIDs(p))
}

func TestSceneObjectsShadowGlobals(t *testing.T) {
	p := &ProjectData{
		Objects: []ObjectData{{Name: "Player", Type: "Sprite"}, {Name: "HUD", Type: "TextObject::Text"}},
		Layouts: []LayoutData{{Name: "L", Objects: []ObjectData{{Name: "Player", Type: "Custom"}}}},
	}
	layout, ok := p.Layout("L")
	require.True(t, ok)

	objects := p.SceneObjects(layout)
	require.Len(t, objects, 2)
	assert.Equal(t, "HUD", objects[0].Name)
	assert.Equal(t, "Custom", objects[1].Type)
	assert.Len(t, p.SceneObjects(nil), 2)

	_, ok = p.Layout("missing")
	assert.False(t, ok)
	player, ok := p.Object("Player")
	require.True(t, ok)
	assert.Equal(t, "Sprite", player.Type)
}

func TestBuildManifest(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"code0.js":          "scene 0",
		"code1.js":          "scene 1",
		"libs/runtime.js":   "runtime",
		"libs/box2d.js":     "physics",
		"assets/sprite.png": "png",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	m, err := BuildManifest(ProjectData{Properties: Properties{Name: "Demo"}}, root)
	require.NoError(t, err)
	assert.Equal(t, "Demo", m.ProjectData.Properties.Name)
	assert.Equal(t, []string{"code0.js", "code1.js"}, m.EventsCodeFiles)
	assert.Equal(t, []ScriptFile{
		{Path: "libs/box2d.js", Hash: HashScript([]byte("physics"))},
		{Path: "libs/runtime.js", Hash: HashScript([]byte("runtime"))},
	}, m.ScriptFiles)
}
