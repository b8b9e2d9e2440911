package engine

import "fmt"

// SceneStack holds the running scenes. Scenes below the top are paused, like a
// level under a pause menu.
type SceneStack struct {
	game   *Game
	scenes []*Scene
}

// Push loads the named scene from the game's project data on top of the stack.
func (st *SceneStack) Push(name string) (*Scene, error) {
	data := st.game.Data()
	layout, ok := data.Layout(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	s := newScene(st.game, name)
	s.load(data, layout)
	st.scenes = append(st.scenes, s)
	return s, nil
}

// Pop unloads the top scene.
func (st *SceneStack) Pop() error {
	if len(st.scenes) == 0 {
		return ErrEmptySceneStack
	}
	top := st.scenes[len(st.scenes)-1]
	st.scenes = st.scenes[:len(st.scenes)-1]
	top.unload()
	return nil
}

// Current returns the top scene.
func (st *SceneStack) Current() (*Scene, bool) {
	if len(st.scenes) == 0 {
		return nil, false
	}
	return st.scenes[len(st.scenes)-1], true
}

// Scenes returns the running scenes, bottom first.
func (st *SceneStack) Scenes() []*Scene {
	return append([]*Scene(nil), st.scenes...)
}

func (st *SceneStack) Len() int { return len(st.scenes) }
