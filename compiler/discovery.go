package compiler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// SourceExt is the extension of single-file component sources. Compiled
// modules are written beside them with ".go" appended.
const SourceExt = ".sfc"

// FileResult is the outcome of compiling one file in CompileDir.
type FileResult struct {
	Source string // path of the .sfc file
	Output string // path of the written .sfc.go file
	Result *Result
}

// sfcSource is one discovered component file.
type sfcSource struct {
	Path        string
	PackageName string
}

// CompileDir finds every *.sfc file under srcDir, compiles it and writes the
// module next to it. Files inside a Go package are compiled into that
// package; files in directories without Go code use opts.PackageName. Files
// are compiled in path order. Compile diagnostics are reported on the
// results; the returned error is only set for I/O and package loading
// failures.
func CompileDir(srcDir string, opts Options) ([]FileResult, error) {
	absSrcDir, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for srcDir: %w", err)
	}

	sources, err := discoverComponents(absSrcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to discover components: %w", err)
	}

	results := make([]FileResult, 0, len(sources))
	for _, src := range sources {
		content, err := os.ReadFile(src.Path)
		if err != nil {
			return results, fmt.Errorf("failed to read %s: %w", src.Path, err)
		}

		fileOpts := opts
		fileOpts.Filename = src.Path
		fileOpts.ComponentName = ""
		if src.PackageName != "" {
			fileOpts.PackageName = src.PackageName
		}

		res := Compile(string(content), fileOpts)
		out := src.Path + ".go"
		if err := os.WriteFile(out, []byte(res.Code), 0o644); err != nil {
			return results, fmt.Errorf("failed to write %s: %w", out, err)
		}
		results = append(results, FileResult{Source: src.Path, Output: out, Result: res})
	}
	return results, nil
}

// discoverComponents lists the *.sfc files under rootDir with the name of
// the Go package that owns their directory, if any.
func discoverComponents(rootDir string) ([]sfcSource, error) {
	packageNames, err := loadPackageNames(rootDir)
	if err != nil {
		return nil, err
	}

	var sources []sfcSource
	err = filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if p != rootDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), SourceExt) {
			return nil
		}
		sources = append(sources, sfcSource{Path: p, PackageName: packageNames[filepath.Dir(p)]})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// loadPackageNames maps each package directory under rootDir to its package
// name. Directories outside any module yield an empty map.
func loadPackageNames(rootDir string) (map[string]string, error) {
	names := make(map[string]string)
	if _, err := findModuleRoot(rootDir); err != nil {
		return names, nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  rootDir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 || pkg.Name == "" {
			continue
		}
		// All files in a package share the same directory.
		names[filepath.Dir(pkg.GoFiles[0])] = pkg.Name
	}
	return names, nil
}

// findModuleRoot walks up from dir to the directory holding go.mod.
func findModuleRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found above %s", dir)
		}
		dir = parent
	}
}
