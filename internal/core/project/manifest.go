package project

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// eventsCodePattern matches the per-scene modules generated from event sheets.
var eventsCodePattern = regexp.MustCompile(`^code\d+\.js$`)

// BuildManifest lists the scripts of an exported game under root. Events code
// modules are listed separately since their hashes are not tracked.
func BuildManifest(data ProjectData, root string) (*Manifest, error) {
	m := &Manifest{ProjectData: data}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".js") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if eventsCodePattern.MatchString(d.Name()) {
			m.EventsCodeFiles = append(m.EventsCodeFiles, rel)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		m.ScriptFiles = append(m.ScriptFiles, ScriptFile{Path: rel, Hash: HashScript(content)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(m.ScriptFiles, func(i, j int) bool { return m.ScriptFiles[i].Path < m.ScriptFiles[j].Path })
	sort.Strings(m.EventsCodeFiles)
	return m, nil
}
