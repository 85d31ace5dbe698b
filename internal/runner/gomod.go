package runner

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// moduleInfo is what the formatters need from the nearest go.mod.
type moduleInfo struct {
	Path      string // go.mod location, empty when none was found
	Module    string // module path
	GoVersion string // go directive, e.g. "1.22"
}

// moduleFinder resolves and caches the go.mod governing a directory.
type moduleFinder struct {
	cache map[string]moduleInfo
}

func newModuleFinder() *moduleFinder {
	return &moduleFinder{cache: make(map[string]moduleInfo)}
}

// forFile returns module information for the module containing path.
func (mf *moduleFinder) forFile(path string) moduleInfo {
	abs, err := filepath.Abs(path)
	if err != nil {
		return moduleInfo{}
	}
	return mf.forDir(filepath.Dir(abs))
}

func (mf *moduleFinder) forDir(dir string) moduleInfo {
	if info, ok := mf.cache[dir]; ok {
		return info
	}

	var info moduleInfo
	goModPath := filepath.Join(dir, "go.mod")
	if data, err := os.ReadFile(goModPath); err == nil {
		info.Path = goModPath
		if f, err := modfile.ParseLax(goModPath, data, nil); err == nil {
			if f.Module != nil {
				info.Module = f.Module.Mod.Path
			}
			if f.Go != nil {
				info.GoVersion = f.Go.Version
			}
		}
	} else if parent := filepath.Dir(dir); parent != dir {
		info = mf.forDir(parent)
	}

	mf.cache[dir] = info
	return info
}
