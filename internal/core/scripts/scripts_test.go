package scripts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/project"
)

func TestFileFetcher(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "behaviors"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "behaviors", "mover.js"), []byte("mover"), 0o644))

	f := FileFetcher{Root: root}
	data, err := f.Fetch(context.Background(), "behaviors/mover.js")
	require.NoError(t, err)
	assert.Equal(t, "mover", string(data))

	_, err = f.Fetch(context.Background(), "missing.js")
	assert.ErrorIs(t, err, ErrFetchFailed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, "behaviors/mover.js")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcherBustsCaches(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("hotReload")
		if r.URL.Path == "/game/missing.js" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("code"))
	}))
	defer srv.Close()

	f := HTTPFetcher{BaseURL: srv.URL + "/game/", Client: srv.Client()}
	data, err := f.Fetch(context.Background(), "/code0.js")
	require.NoError(t, err)
	assert.Equal(t, "code", string(data))
	assert.Equal(t, "/game/code0.js", gotPath)
	assert.Equal(t, "1", gotQuery)

	_, err = f.Fetch(context.Background(), "missing.js")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	src, ok := m[path]
	if !ok {
		return nil, ErrFetchFailed
	}
	return []byte(src), nil
}

func counterFactory(owner *engine.Object, data project.BehaviorData, _ *project.BehaviorSharedData) (engine.Behavior, error) {
	b := engine.NewBaseBehavior(owner, data)
	return &b, nil
}

func TestReloaderReExecutesModules(t *testing.T) {
	reg := engine.NewRegistry()
	table := NewModuleTable(reg)
	table.Define("mover.js", func(r *engine.Registry) error {
		r.RegisterBehavior("Mover", counterFactory)
		return nil
	})
	boom := errors.New("boom")
	table.Define("broken.js", func(*engine.Registry) error { return boom })

	r := NewReloader(mapFetcher{"mover.js": "x", "broken.js": "y", "orphan.js": "z"}, table)
	require.NoError(t, r.Ready())

	snapshot := reg.Snapshot()
	require.NoError(t, r.Reload(context.Background(), "mover.js"))
	assert.True(t, reg.HasBehavior("Mover"))
	require.NoError(t, r.Reload(context.Background(), "mover.js"))
	assert.Empty(t, reg.Diff(snapshot).Changed, "types registered after the snapshot are new, not changed")
	second := reg.Snapshot()
	require.NoError(t, r.Reload(context.Background(), "mover.js"))
	assert.Equal(t, []string{"Mover"}, reg.Diff(second).Changed)

	err := r.Reload(context.Background(), "broken.js")
	var scriptErr *ScriptError
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, "broken.js", scriptErr.Path)
	assert.ErrorIs(t, err, boom)

	err = r.Reload(context.Background(), "missing.js")
	assert.ErrorIs(t, err, ErrFetchFailed)

	assert.ErrorIs(t, r.Reload(context.Background(), "orphan.js"), ErrModuleNotFound)
	table.SetFallback(NoopModule)
	assert.NoError(t, r.Reload(context.Background(), "orphan.js"))
}

func TestReloaderExclusions(t *testing.T) {
	r := NewReloader(mapFetcher{}, NewModuleTable(engine.NewRegistry()))
	assert.False(t, r.CanReload("libs/box2d.js"))
	assert.False(t, r.CanReload("bridge/runtime.h.js"))
	assert.True(t, r.CanReload("code0.js"))
	assert.NoError(t, r.Reload(context.Background(), "libs/box2d.js"), "excluded scripts are skipped silently")

	custom := NewReloader(mapFetcher{}, NewModuleTable(engine.NewRegistry()), WithExclusions([]string{"vendor.js"}))
	assert.False(t, custom.CanReload("vendor.js"))
	assert.True(t, custom.CanReload("box2d.js"))
}

func TestReloaderReady(t *testing.T) {
	var nilReloader *Reloader
	assert.ErrorIs(t, nilReloader.Ready(), ErrNoAttachmentPoint)
	assert.ErrorIs(t, NewReloader(nil, nil).Ready(), ErrNoAttachmentPoint)
}
