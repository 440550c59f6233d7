package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"strings"
	"unicode"
)

// compileState is everything one Compile call owns. Nothing in it outlives
// the call.
type compileState struct {
	opts   Options
	source string
	name   string
	result *Result
}

// Compile compiles one single-file component into a Go module. It never
// panics and always returns a Result whose Code is a usable module: on
// failure a diagnostic one rendering the error. In non-strict mode errors
// are collected on the result; in strict mode the first error replaces the
// module with the diagnostic.
func Compile(source string, opts Options) (res *Result) {
	opts = opts.withDefaults()
	s := &compileState{
		opts:   opts,
		source: source,
		name:   componentName(opts),
		result: &Result{},
	}

	defer func() {
		if r := recover(); r != nil {
			err := &panicError{Value: r, Stack: debug.Stack()}
			s.result.Errors = append(s.result.Errors, Message{Message: err.Error()})
			s.result.Code = diagnosticModule(s.opts, s.name, err)
			res = s.result
		}
	}()

	s.run()
	return s.result
}

func (s *compileState) warn(line int, msg string) {
	s.result.Warnings = append(s.result.Warnings, Message{Message: msg, Line: line})
}

func (s *compileState) fail(line int, msg string) {
	s.result.Errors = append(s.result.Errors, Message{Message: msg, Line: line})
}

// shift moves template-relative lines to lines of the whole file.
func shift(msgs []Message, block *Block) []Message {
	for i := range msgs {
		if msgs[i].Line > 0 {
			msgs[i].Line += block.ContentLine - 1
		}
	}
	return msgs
}

func (s *compileState) run() {
	r := s.result

	blocks, warnings := SplitBlocks(s.source)
	r.Warnings = append(r.Warnings, warnings...)
	r.CustomBlocks = blocks.Custom
	r.Metadata = Metadata{
		HasTemplate:     blocks.Template != nil,
		HasScript:       blocks.Script != nil,
		HasStyle:        blocks.Style != nil,
		HasCustomBlocks: len(blocks.Custom) > 0,
		IsSetup:         blocks.Script.hasAttr("setup"),
		IsScoped:        blocks.Style != nil && (blocks.Style.hasAttr("scoped") || s.opts.ScopedCSS),
	}
	if r.Metadata.IsScoped {
		r.ScopeID = scopeID(s.opts.Filename, s.source)
	}
	if blocks.Template == nil && blocks.Script == nil {
		s.warn(0, "component has neither a <template> nor a <script> block")
	}

	producer := s.compileTemplate(blocks.Template)
	script := s.compileScript(blocks.Script)
	css := s.compileStyle(blocks.Style)

	r.Exports = []string{"Component"}
	if script != nil {
		r.Dependencies = script.Dependencies
		for _, name := range script.Exports {
			if name != "Component" {
				r.Exports = append(r.Exports, name)
			}
		}
	}

	if s.opts.GenerateSourceMaps {
		r.Map = s.sourceMap()
	}

	if s.opts.StrictMode && len(r.Errors) > 0 {
		first := r.Errors[0]
		r.Code = diagnosticModule(s.opts, s.name, errors.New(first.Message))
		return
	}

	code, err := s.assemble(script, producer, css)
	if err != nil {
		s.fail(0, err.Error())
		r.Code = diagnosticModule(s.opts, s.name, err)
		return
	}
	r.Code = code
}

// compileTemplate runs the template pipeline and returns the render factory
// expression. A fault in any stage yields the diagnostic producer.
func (s *compileState) compileTemplate(block *Block) (producer string) {
	defer func() {
		if r := recover(); r != nil {
			err := &panicError{Value: r, Stack: debug.Stack()}
			s.fail(0, err.Error())
			producer = diagnosticProducer(err)
		}
	}()

	root := &Node{Kind: RootNode}
	if block != nil {
		var warnings []Message
		var err error
		root, warnings, err = Parse(block.Content, s.opts.Limits)
		s.result.Warnings = append(s.result.Warnings, shift(warnings, block)...)
		switch {
		case errors.Is(err, ErrNoRoot):
			s.warn(block.ContentLine, fmt.Sprintf("template: %v; rendering an empty placeholder", err))
			root = &Node{Kind: RootNode}
		case err != nil:
			s.fail(block.ContentLine, fmt.Sprintf("template: %v", err))
		}

		warnings, errs := Transform(root, TransformOptions{
			PreserveWhitespace: s.opts.PreserveWhitespace,
			ScopeAttr:          s.result.ScopeID,
		})
		s.result.Warnings = append(s.result.Warnings, shift(warnings, block)...)
		s.result.Errors = append(s.result.Errors, shift(errs, block)...)
	}

	var table *HoistTable
	if s.opts.OptimizeStaticNodes {
		table = Hoist(root)
	}

	code, warnings, err := Generate(root, table)
	if block != nil {
		warnings = shift(warnings, block)
	}
	s.result.Warnings = append(s.result.Warnings, warnings...)
	if err != nil {
		s.fail(0, fmt.Sprintf("template: %v", err))
		return diagnosticProducer(err)
	}
	return code
}

// compileScript analyses the script region. A script that does not parse is
// reported and left out of the module.
func (s *compileState) compileScript(block *Block) (info *scriptInfo) {
	if block == nil || strings.TrimSpace(block.Content) == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail(block.Line, fmt.Sprintf("script: internal compiler panic: %v", r))
			info = nil
		}
	}()

	info, err := analyzeScript(block.Content)
	if err != nil {
		s.fail(block.Line, err.Error())
		return nil
	}
	return info
}

// compileStyle returns the component CSS, scoped when required. If scoping
// fails the CSS is kept as written.
func (s *compileState) compileStyle(block *Block) (css string) {
	if block == nil {
		return ""
	}
	css = strings.TrimSpace(block.Content)
	if !s.result.Metadata.IsScoped || css == "" {
		return css
	}
	defer func() {
		if r := recover(); r != nil {
			s.fail(block.Line, fmt.Sprintf("style: internal compiler panic: %v", r))
			css = strings.TrimSpace(block.Content)
		}
	}()
	return scopeCSS(css, s.result.ScopeID)
}

// sourceMap is a version 3 map with no mappings yet.
func (s *compileState) sourceMap() string {
	source := s.opts.Filename
	if source == "" {
		source = s.name + ".sfc"
	}
	m := struct {
		Version  int      `json:"version"`
		File     string   `json:"file"`
		Sources  []string `json:"sources"`
		Names    []string `json:"names"`
		Mappings string   `json:"mappings"`
	}{
		Version:  3,
		File:     filepath.Base(source) + ".go",
		Sources:  []string{filepath.Base(source)},
		Names:    []string{},
		Mappings: "",
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

// componentName picks the exported Go identifier for the component: the
// explicit option, or the file name in PascalCase.
func componentName(opts Options) string {
	name := opts.ComponentName
	if name == "" {
		base := filepath.Base(opts.Filename)
		if i := strings.IndexByte(base, '.'); i >= 0 {
			base = base[:i]
		}
		name = base
	}

	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" {
		return "Anonymous"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "C" + out
	}
	return out
}

// hotReloadID identifies a component across recompilations of the same file.
func hotReloadID(filename, name string) string {
	sum := sha256.Sum256([]byte(filename + "#" + name))
	return hex.EncodeToString(sum[:4])
}
