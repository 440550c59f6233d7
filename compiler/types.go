package compiler

import (
	"errors"
	"time"
)

// DefaultRuntimeImportPath is the package that provides the render helpers
// referenced by generated code.
const DefaultRuntimeImportPath = "github.com/vcrobe/sfc/vdom"

// DefaultComponentImportPath provides the component definition and style registry.
const DefaultComponentImportPath = "github.com/vcrobe/sfc/runtime"

var (
	// ErrNoRoot is returned by Build when the token stream never opened an element.
	ErrNoRoot = errors.New("template has no root element")

	// ErrUnclosed is wrapped by the Build error for elements still open at
	// the end of input.
	ErrUnclosed = errors.New("unclosed element")
)

// Limits bounds the work a single tokenizer or builder pass may perform.
type Limits struct {
	MaxIterations int           // cursor steps / tokens consumed
	MaxDuration   time.Duration // wall-clock budget per pass
}

// DefaultLimits returns the guards used when Options.Limits is zero.
func DefaultLimits() Limits {
	return Limits{MaxIterations: 200000, MaxDuration: 2 * time.Second}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxIterations <= 0 {
		l.MaxIterations = d.MaxIterations
	}
	if l.MaxDuration <= 0 {
		l.MaxDuration = d.MaxDuration
	}
	return l
}

// Options controls a single Compile call.
type Options struct {
	Filename            string // used for diagnostics, the component name and the scope id
	PackageName         string // package clause of the emitted module
	ComponentName       string // overrides the name derived from Filename
	RuntimeImportPath   string // import path of the vdom helpers
	ComponentImportPath string // import path of the runtime package
	PreserveWhitespace  bool
	StrictMode          bool // first error aborts with a diagnostic module
	GenerateSourceMaps  bool
	ScopedCSS           bool // force scoping even without a scoped attribute
	HotReload           bool
	OptimizeStaticNodes bool
	InjectStyles        bool // emit an init func registering the component CSS
	Limits              Limits
}

// DefaultOptions returns the options the CLI starts from.
func DefaultOptions() Options {
	return Options{
		PackageName:         "components",
		RuntimeImportPath:   DefaultRuntimeImportPath,
		ComponentImportPath: DefaultComponentImportPath,
		OptimizeStaticNodes: true,
		InjectStyles:        true,
		Limits:              DefaultLimits(),
	}
}

func (o Options) withDefaults() Options {
	if o.PackageName == "" {
		o.PackageName = "components"
	}
	if o.RuntimeImportPath == "" {
		o.RuntimeImportPath = DefaultRuntimeImportPath
	}
	if o.ComponentImportPath == "" {
		o.ComponentImportPath = DefaultComponentImportPath
	}
	o.Limits = o.Limits.withDefaults()
	return o
}

// Message is one error or warning reported by the compiler.
type Message struct {
	Message string
	Line    int // 1-based line in the template region, 0 when unknown
}

func (m Message) String() string {
	return m.Message
}

// Metadata describes which regions the single-file component contained.
type Metadata struct {
	HasTemplate     bool
	HasScript       bool
	HasStyle        bool
	HasCustomBlocks bool
	IsScoped        bool
	IsSetup         bool
}

// Block is one top-level region of a single-file component.
type Block struct {
	Type        string            // "template", "script", "style" or the custom block name
	Attrs       map[string]string // start-tag attributes; valueless attributes map to ""
	Content     string
	Line        int // line of the start tag
	ContentLine int // line on which Content starts
}

// Result is the output of Compile. Code is always a usable module, a
// diagnostic one when compilation could not produce anything better.
type Result struct {
	Code         string
	Map          string // source map placeholder, set when GenerateSourceMaps is on
	Dependencies []string
	Exports      []string
	Errors       []Message
	Warnings     []Message
	Metadata     Metadata
	CustomBlocks []Block
	ScopeID      string
}

// Standard HTML boolean attributes
var standardBooleanAttrs = map[string]bool{
	"disabled":       true,
	"checked":        true,
	"readonly":       true,
	"required":       true,
	"autofocus":      true,
	"autoplay":       true,
	"controls":       true,
	"loop":           true,
	"muted":          true,
	"selected":       true,
	"hidden":         true,
	"multiple":       true,
	"novalidate":     true,
	"open":           true,
	"reversed":       true,
	"default":        true,
	"ismap":          true,
	"formnovalidate": true,
}
