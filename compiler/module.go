package compiler

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/imports"
)

const generatedHeader = "// Code generated by sfcc. DO NOT EDIT.\n\n"

// Local names under which the module imports the vdom and runtime packages.
const (
	vdomImportName    = "vdom"
	runtimeImportName = "runtime"
)

// assemble writes the module: script declarations, the render factory, the
// component definition and the style registration, with the imports merged
// and the whole file formatted.
func (s *compileState) assemble(script *scriptInfo, producer, css string) (string, error) {
	var b strings.Builder
	b.WriteString(generatedHeader)
	fmt.Fprintf(&b, "package %s\n\n", s.opts.PackageName)

	if script != nil && script.Decls != "" {
		b.WriteString(script.Decls)
		b.WriteString("\n\n")
	}

	render := "render" + s.name
	fmt.Fprintf(&b, "var %s = %s\n\n", render, producer)

	hmrID := ""
	if s.opts.HotReload {
		hmrID = hotReloadID(s.opts.Filename, s.name)
	}

	if script != nil && script.DeclaresComponent {
		b.WriteString("func init() {\n")
		fmt.Fprintf(&b, "Component.Render = %s\n", render)
		if s.result.ScopeID != "" {
			fmt.Fprintf(&b, "Component.ScopeID = %q\n", s.result.ScopeID)
		}
		if hmrID != "" {
			fmt.Fprintf(&b, "Component.HMRID = %q\n", hmrID)
		}
		b.WriteString("}\n\n")
	} else {
		fmt.Fprintf(&b, "var Component = %s.Component{\n", runtimeImportName)
		fmt.Fprintf(&b, "Name: %q,\n", s.name)
		fmt.Fprintf(&b, "Render: %s,\n", render)
		if s.result.ScopeID != "" {
			fmt.Fprintf(&b, "ScopeID: %q,\n", s.result.ScopeID)
		}
		if hmrID != "" {
			fmt.Fprintf(&b, "HMRID: %q,\n", hmrID)
		}
		b.WriteString("}\n\n")
	}

	usesRuntime := script == nil || !script.DeclaresComponent
	if s.opts.InjectStyles && css != "" {
		usesRuntime = true
		b.WriteString("func init() {\n")
		fmt.Fprintf(&b, "%s.InjectStyle(%q, %s)\n", runtimeImportName, s.styleID(), strconv.Quote(css))
		b.WriteString("}\n")
	}

	return s.finish(b.String(), script, usesRuntime)
}

// finish parses the assembled source, merges the script imports with the
// ones generated code needs and formats the result.
func (s *compileState) finish(src string, script *scriptInfo, usesRuntime bool) (string, error) {
	filename := s.opts.Filename
	if filename == "" {
		filename = s.name + ".sfc"
	}
	filename += ".go"

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("assemble: generated module does not parse: %w", err)
	}

	if script != nil {
		for _, imp := range script.Imports {
			p, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			name := ""
			if imp.Name != nil {
				name = imp.Name.Name
			}
			astutil.AddNamedImport(fset, file, name, p)
		}
	}
	addImport(fset, file, vdomImportName, s.opts.RuntimeImportPath)
	if usesRuntime {
		addImport(fset, file, runtimeImportName, s.opts.ComponentImportPath)
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return "", fmt.Errorf("assemble: %w", err)
	}
	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return "", fmt.Errorf("assemble: %w", err)
	}
	return string(out), nil
}

// addImport imports importPath under name unless the file already imports
// it under that name, explicitly or as the package's default name.
func addImport(fset *token.FileSet, file *ast.File, name, importPath string) {
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != importPath {
			continue
		}
		if imp.Name == nil && path.Base(importPath) == name {
			return
		}
		if imp.Name != nil && imp.Name.Name == name {
			return
		}
	}
	if path.Base(importPath) == name {
		astutil.AddImport(fset, file, importPath)
		return
	}
	astutil.AddNamedImport(fset, file, name, importPath)
}

// styleID names the component's stylesheet in the runtime registry.
func (s *compileState) styleID() string {
	if s.result.ScopeID != "" {
		return s.result.ScopeID
	}
	return "sfc-" + hotReloadID(s.opts.Filename, s.name)
}
