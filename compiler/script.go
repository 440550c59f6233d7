package compiler

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

// scriptPrelude turns the package-less script region into a parseable file.
const scriptPrelude = "package p\n"

// scriptInfo is what module assembly needs to know about the script region.
type scriptInfo struct {
	Imports           []*ast.ImportSpec
	Dependencies      []string
	Exports           []string
	Decls             string // the script source after its import declarations
	DeclaresComponent bool   // the script declares its own Component variable
}

// analyzeScript parses the Go code of a script region. The region has no
// package clause; it may contain imports followed by top-level declarations.
func analyzeScript(content string) (*scriptInfo, error) {
	src := scriptPrelude + content
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "script.go", src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	info := &scriptInfo{Imports: file.Imports}
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		info.Dependencies = append(info.Dependencies, path)
	}

	declStart := len(scriptPrelude)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if ok && gen.Tok == token.IMPORT {
			declStart = fset.Position(gen.End()).Offset
			continue
		}
		info.Exports = append(info.Exports, exportedNames(decl)...)
		if declaresName(decl, "Component") {
			info.DeclaresComponent = true
		}
	}
	info.Decls = strings.TrimSpace(src[declStart:])
	return info, nil
}

// exportedNames lists the exported identifiers a top-level declaration
// introduces. Methods are not package-level names and are skipped.
func exportedNames(decl ast.Decl) []string {
	var names []string
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv == nil && d.Name.IsExported() {
			names = append(names, d.Name.Name)
		}
	case *ast.GenDecl:
		for _, spec := range d.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				if s.Name.IsExported() {
					names = append(names, s.Name.Name)
				}
			case *ast.ValueSpec:
				for _, n := range s.Names {
					if n.IsExported() {
						names = append(names, n.Name)
					}
				}
			}
		}
	}
	return names
}

func declaresName(decl ast.Decl, name string) bool {
	gen, ok := decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR {
		return false
	}
	for _, spec := range gen.Specs {
		if vs, ok := spec.(*ast.ValueSpec); ok {
			for _, n := range vs.Names {
				if n.Name == name {
					return true
				}
			}
		}
	}
	return false
}
