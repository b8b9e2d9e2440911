package hotreload

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/scripts"
)

// reloadSet returns the paths to re-execute, in manifest order: new or changed
// script files, then the events code of every scene unless only project data was
// exported.
func reloadSet(old []project.ScriptFile, manifest *project.Manifest) []string {
	known := make(map[string]string, len(old))
	for _, f := range old {
		known[f.Path] = f.Hash
	}
	seen := make(map[string]struct{})
	var paths []string
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}
	for _, f := range manifest.ScriptFiles {
		if hash, ok := known[f.Path]; !ok || hash != f.Hash {
			add(f.Path)
		}
	}
	if !manifest.ProjectDataOnlyExport {
		for _, path := range manifest.EventsCodeFiles {
			add(path)
		}
	}
	return paths
}

// removedScripts lists old paths missing from the manifest.
func removedScripts(old []project.ScriptFile, manifest *project.Manifest) []string {
	current := make(map[string]struct{}, len(manifest.ScriptFiles))
	for _, f := range manifest.ScriptFiles {
		current[f.Path] = struct{}{}
	}
	var removed []string
	for _, f := range old {
		if _, ok := current[f.Path]; !ok {
			removed = append(removed, f.Path)
		}
	}
	return removed
}

// nextLoadedScripts is the script list after a successful reload. A data-only
// export may omit script files, so it never drops known ones.
func nextLoadedScripts(old []project.ScriptFile, manifest *project.Manifest) []project.ScriptFile {
	if !manifest.ProjectDataOnlyExport {
		return append([]project.ScriptFile(nil), manifest.ScriptFiles...)
	}
	next := append([]project.ScriptFile(nil), old...)
	index := make(map[string]int, len(next))
	for i, f := range next {
		index[f.Path] = i
	}
	for _, f := range manifest.ScriptFiles {
		if i, ok := index[f.Path]; ok {
			next[i] = f
			continue
		}
		index[f.Path] = len(next)
		next = append(next, f)
	}
	return next
}

// reloadScripts starts every reload before waiting for any, so that the registry
// is only read once all of them settled. It reports false when one failed.
func (h *HotReloader) reloadScripts(ctx context.Context, logs *runLog, old []project.ScriptFile, manifest *project.Manifest) bool {
	if !manifest.ProjectDataOnlyExport {
		for _, path := range removedScripts(old, manifest) {
			logs.info("Script %s was removed. It stays loaded until the game is restarted.", path)
		}
	}

	var toLoad []string
	for _, path := range reloadSet(old, manifest) {
		if !h.scripts.CanReload(path) {
			logs.info("Not reloading %s as it is excluded from hot reload.", path)
			continue
		}
		toLoad = append(toLoad, path)
	}
	if len(toLoad) == 0 {
		return true
	}

	failures := make([]error, len(toLoad))
	var g errgroup.Group
	for i, path := range toLoad {
		g.Go(func() error {
			if err := h.scripts.Reload(ctx, path); err != nil {
				failures[i] = err
				return err
			}
			return nil
		})
	}
	if g.Wait() == nil {
		return true
	}

	for i, err := range failures {
		if err == nil {
			continue
		}
		path, cause := toLoad[i], err
		var scriptErr *scripts.ScriptError
		if errors.As(err, &scriptErr) {
			path, cause = scriptErr.Path, scriptErr.Err
		}
		logs.fatal("Unable to reload script %s: %v", path, cause)
	}
	return false
}
