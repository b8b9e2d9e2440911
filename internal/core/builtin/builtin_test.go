package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hotreload/internal/core/builtin"
	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/project"
)

func moverData(accel, maxSpeed float64) project.BehaviorData {
	return project.BehaviorData{
		Name:       "Move",
		Type:       builtin.MoverBehavior,
		Properties: map[string]any{"acceleration": accel, "maxSpeed": maxSpeed},
	}
}

func newScene(t *testing.T, objects ...project.ObjectData) *engine.Scene {
	t.Helper()
	reg := engine.NewRegistry()
	builtin.Register(reg)
	data := &project.ProjectData{
		Layouts: []project.LayoutData{{Name: "Main", Objects: objects}},
	}
	scene, err := engine.NewGame(data, reg).SceneStack().Push("Main")
	require.NoError(t, err)
	return scene
}

func TestRegisterInstallsStockTypes(t *testing.T) {
	reg := engine.NewRegistry()
	builtin.Register(reg)

	assert.True(t, reg.HasBehavior(builtin.MoverBehavior))
	assert.True(t, reg.HasBehavior(builtin.FlashBehavior))
	_, ok := reg.ObjectFactory(builtin.SpriteObject)
	assert.True(t, ok)
	_, ok = reg.ObjectFactory(builtin.TextObject)
	assert.True(t, ok)
}

func TestSprite(t *testing.T) {
	scene := newScene(t, project.ObjectData{
		Name:    "Hero",
		Type:    builtin.SpriteObject,
		Content: map[string]any{"width": 32.0, "height": 48.0, "animation": 1.0},
	})

	hero, err := scene.CreateObjectFromInstance(project.InstanceData{
		Name:             "Hero",
		NumberProperties: []project.NumberProperty{{Name: "opacity", Value: 128}},
		StringProperties: []project.StringProperty{{Name: "flippedX", Value: "true"}},
	})
	require.NoError(t, err)
	sprite := hero.Kind().(*builtin.Sprite)

	assert.Equal(t, 32.0, hero.Width())
	assert.Equal(t, 48.0, hero.Height())
	assert.Equal(t, 1, sprite.Animation())
	assert.Equal(t, 128.0, sprite.Opacity())
	assert.True(t, sprite.FlippedX())

	old, _ := scene.ObjectData("Hero")
	sprite.SetAnimation(3)
	resized := old
	resized.Content = map[string]any{"width": 64.0, "height": 48.0, "animation": 1.0}
	require.True(t, hero.UpdateFromObjectData(old, resized))
	assert.Equal(t, 64.0, hero.Width())
	assert.Equal(t, 3, sprite.Animation(), "animation set by gameplay survives")

	reanimated := resized
	reanimated.Content = map[string]any{"width": 64.0, "height": 48.0, "animation": 2.0}
	require.True(t, hero.UpdateFromObjectData(resized, reanimated))
	assert.Equal(t, 2, sprite.Animation())
}

func TestText(t *testing.T) {
	scene := newScene(t, project.ObjectData{
		Name:    "Label",
		Type:    builtin.TextObject,
		Content: map[string]any{"text": "Score", "characterSize": 12.0},
	})
	label, err := scene.CreateObject("Label")
	require.NoError(t, err)
	text := label.Kind().(*builtin.Text)
	assert.Equal(t, "Score", text.Text())
	assert.Equal(t, 12.0, text.FontSize())

	old, _ := scene.ObjectData("Label")
	text.SetText("Score: 10")
	bigger := old
	bigger.Content = map[string]any{"text": "Score", "characterSize": 24.0}
	require.True(t, label.UpdateFromObjectData(old, bigger))
	assert.Equal(t, "Score: 10", text.Text(), "unchanged declared text keeps the gameplay value")
	assert.Equal(t, 24.0, text.FontSize())

	renamed := bigger
	renamed.Content = map[string]any{"text": "Points", "characterSize": 24.0}
	require.True(t, label.UpdateFromObjectData(bigger, renamed))
	assert.Equal(t, "Points", text.Text())

	label.ExtraInitializationFromInstance(project.InstanceData{
		StringProperties: []project.StringProperty{{Name: "text", Value: "Custom"}},
	})
	assert.Equal(t, "Custom", text.Text())
}

func TestMoverAcceleratesUpToMaxSpeed(t *testing.T) {
	scene := newScene(t, project.ObjectData{
		Name:      "Car",
		Type:      builtin.SpriteObject,
		Behaviors: []project.BehaviorData{moverData(10, 15)},
	})
	car, err := scene.CreateObject("Car")
	require.NoError(t, err)
	b, ok := car.Behavior("Move")
	require.True(t, ok)
	mover := b.(*builtin.Mover)

	mover.Step(1)
	assert.Equal(t, 10.0, mover.Speed())
	assert.Equal(t, 10.0, car.X())
	mover.Step(1)
	assert.Equal(t, 15.0, mover.Speed())
	assert.Equal(t, 25.0, car.X())

	car.SetX(100)
	mover.Step(1)
	assert.Equal(t, 10.0, mover.Speed(), "teleport resets the speed")

	car.SetX(200)
	car.NotifyHotReloaded()
	assert.Equal(t, 1, mover.Resyncs())
	mover.Step(1)
	assert.Equal(t, 15.0, mover.Speed(), "a hot reload resyncs instead of resetting")
}

func TestMoverUpdateFromBehaviorData(t *testing.T) {
	scene := newScene(t, project.ObjectData{Name: "Car", Type: builtin.SpriteObject})
	car, err := scene.CreateObject("Car")
	require.NoError(t, err)
	old := moverData(10, 15)
	b, err := car.AddBehavior(old)
	require.NoError(t, err)
	mover := b.(*builtin.Mover)
	mover.SetSpeed(14)

	slower := project.BehaviorData{
		Name:       "Move",
		Type:       builtin.MoverBehavior,
		Properties: map[string]any{"maxSpeed": 8.0},
	}
	require.True(t, mover.UpdateFromBehaviorData(old, slower))
	assert.Equal(t, 8.0, mover.MaxSpeed())
	assert.Equal(t, 0.0, mover.Acceleration(), "removed properties are dropped")
	assert.Equal(t, 8.0, mover.Speed(), "speed is clamped to the new maximum")
}

func TestMoverRuntimeStateRoundTrip(t *testing.T) {
	scene := newScene(t, project.ObjectData{Name: "Car", Type: builtin.SpriteObject})
	car, err := scene.CreateObject("Car")
	require.NoError(t, err)
	b, err := car.AddBehavior(moverData(2, 10))
	require.NoError(t, err)
	b.(*builtin.Mover).SetSpeed(5)

	state := b.ExportRuntimeState()
	require.True(t, car.RemoveBehavior("Move"))
	fresh, err := car.AddBehavior(moverData(1, 20))
	require.NoError(t, err)
	fresh.ImportRuntimeState(engine.MergeRuntimeState(state, fresh.ExportRuntimeState()))

	mover := fresh.(*builtin.Mover)
	assert.Equal(t, 5.0, mover.Speed())
	assert.Equal(t, 2.0, mover.Acceleration())
	assert.Equal(t, 10.0, mover.MaxSpeed())
}

func TestFlash(t *testing.T) {
	scene := newScene(t, project.ObjectData{Name: "Lamp", Type: builtin.SpriteObject})
	lamp, err := scene.CreateObject("Lamp")
	require.NoError(t, err)
	old := project.BehaviorData{Name: "Blink", Type: builtin.FlashBehavior, Properties: map[string]any{"interval": 0.5}}
	b, err := lamp.AddBehavior(old)
	require.NoError(t, err)

	b.Step(0.25)
	assert.False(t, lamp.IsHidden())
	b.Step(0.25)
	assert.True(t, lamp.IsHidden())

	b.Step(0.1)
	state := b.ExportRuntimeState()
	assert.Equal(t, 0.1, state.Fields["elapsed"])
	copyB, err := builtin.NewFlash(lamp, old, nil)
	require.NoError(t, err)
	copyB.ImportRuntimeState(state)
	assert.Equal(t, 0.1, copyB.(*builtin.Flash).Elapsed())

	changed := old
	changed.Properties = map[string]any{"interval": 1.0}
	assert.False(t, b.UpdateFromBehaviorData(old, changed), "flash cannot hot-swap its configuration")

	require.True(t, lamp.RemoveBehavior("Blink"))
	assert.False(t, lamp.IsHidden(), "destroying the flash shows the owner again")
}
