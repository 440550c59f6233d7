package compiler

import (
	"go/parser"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func generateTemplate(t *testing.T, source string, hoist bool) (string, []Message) {
	t.Helper()
	root, _, errs := transformTemplate(t, source, TransformOptions{})
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	var table *HoistTable
	if hoist {
		table = Hoist(root)
	}
	code, warnings, err := Generate(root, table)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := parser.ParseExpr(code); err != nil {
		t.Fatalf("Generated code does not parse: %v\n%s", err, code)
	}
	return code, warnings
}

func propsOf(t *testing.T, source string) (string, []Message) {
	t.Helper()
	root, _, errs := transformTemplate(t, source, TransformOptions{})
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	g := newGenerator()
	return g.props(root.Children[0]), g.warnings
}

// TestGenerate_Exact verifies the complete output for a small template.
func TestGenerate_Exact(t *testing.T) {
	// Act
	code, _ := generateTemplate(t, `<div class="a"><h1>Hi</h1><p>{{ msg }}</p></div>`, true)

	// Assert
	expected := `func() func() *vdom.VNode {
var (
_h = vdom.H
_toDisplayString = vdom.ToDisplayString
)
var (
_hoisted_1 = _h("h1", nil, "Hi")
)
return func() *vdom.VNode {
return _h("div", map[string]any{"class": "a"},
_hoisted_1,
_h("p", nil, _toDisplayString(msg)),
)
}
}()`
	if diff := cmp.Diff(expected, code); diff != "" {
		t.Errorf("Code mismatch (-want +got):\n%s", diff)
	}
}

// TestGenerate_OnlyUsedHelpers verifies that the helper declarations list
// exactly the helpers the body references.
func TestGenerate_OnlyUsedHelpers(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected []string
	}{
		{"static text", `<p>hi</p>`, []string{"_h"}},
		{"interpolation", `<p>{{ x }}</p>`, []string{"_h", "_toDisplayString"}},
		{"conditional without else", `<div><p v-if="ok">a</p></div>`, []string{"_h", "_createComment"}},
		{"loop", `<ul><li v-for="x in xs">{{ x }}</li></ul>`, []string{"_h", "_toDisplayString", "_renderList"}},
		{"modifiers", `<a @click.prevent="go">a</a>`, []string{"_h", "_withModifiers"}},
		{"slot", `<div><slot>fallback</slot></div>`, []string{"_h", "_renderSlot"}},
		{"template", `<div><template v-if="ok"><b>a</b></template></div>`, []string{"_h", "_createComment", "_Fragment"}},
		{"model", `<input v-model="name">`, []string{"_h", "_bindModel"}},
		{"empty", ``, []string{"_createComment"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			root := &Node{Kind: RootNode}
			if tc.source != "" {
				var errs []Message
				root, _, errs = transformTemplate(t, tc.source, TransformOptions{})
				if len(errs) != 0 {
					t.Fatalf("Unexpected errors: %v", errs)
				}
			}

			// Act
			code, _, err := Generate(root, nil)

			// Assert
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			var declared []string
			for _, h := range helperOrder {
				if strings.Contains(code, h.local+" = vdom."+h.export) {
					declared = append(declared, h.local)
				}
			}
			if diff := cmp.Diff(tc.expected, declared); diff != "" {
				t.Errorf("Declared helpers mismatch (-want +got):\n%s\n%s", diff, code)
			}
		})
	}
}

// TestGenerate_Parses verifies that generated code for every construct is a
// valid Go expression.
func TestGenerate_Parses(t *testing.T) {
	sources := []string{
		`<div><p v-if="a">A</p><p v-else-if="b">B</p><p v-else>C</p></div>`,
		`<li v-for="(item, i) in items" v-if="item.Ok" :key="item.ID">{{ i }}: {{ item.Name }}</li>`,
		`<div><span v-for="_ in n">x</span></div>`,
		`<div><Card #header="props"><b>{{ props }}</b></Card></div>`,
		`<div><template #footer>f</template></div>`,
		`<a @click="count++" @mouseover="hover($event)" @keyup.enter="submit">a</a>`,
		`<p v-show="ok" style="color: red" :style="extra">x</p>`,
		`<div v-html="raw"></div>`,
		`<div v-text="label"></div>`,
		`<a></a><b></b>`,
		`<div><input type="radio" value="a" v-model="pick"><select v-model="sel"><option>x</option></select></div>`,
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			generateTemplate(t, src, true)
		})
	}
}

// TestGenerate_Structures verifies the shape of conditionals, loops and
// multiple roots.
func TestGenerate_Structures(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		contains []string
	}{
		{
			name:   "conditional chain",
			source: `<div><p v-if="a">A</p><p v-else-if="b">B</p></div>`,
			contains: []string{
				"if (a) {\nreturn _h(\"p\", nil, \"A\")\n} else if (b) {\nreturn _h(\"p\", nil, \"B\")\n}",
				`return _createComment("v-if")`,
			},
		},
		{
			name:   "loop with condition evaluated per item",
			source: `<ul><li v-for="x in xs" v-if="x > 0">{{ x }}</li></ul>`,
			contains: []string{
				"for _, x := range (xs) {\n_ = x\nif !yield(func() *vdom.VNode {\nif (x > 0) {",
			},
		},
		{
			name:     "loop as the only root",
			source:   `<li v-for="x in xs">a</li>`,
			contains: []string{"return _h(_Fragment, nil,\n_renderList("},
		},
		{
			name:     "blank loop variables",
			source:   `<ul><li v-for="_ in xs">a</li></ul>`,
			contains: []string{"for range (xs) {"},
		},
		{
			name:     "several roots",
			source:   `<a></a><b></b>`,
			contains: []string{"return _h(_Fragment, nil,\n_h(\"a\", nil),\n_h(\"b\", nil),\n)"},
		},
		{
			name:     "named slot on an element",
			source:   `<Card #header="p">x</Card>`,
			contains: []string{`_h("Card", nil, _renderSlot("header", p, "x"))`},
		},
		{
			name:     "text run",
			source:   `<p>a {{ b }} c</p>`,
			contains: []string{`_h("p", nil, "a " + _toDisplayString(b) + " c")`},
		},
		{
			name:     "inline handler with event",
			source:   `<a @input="set($event)">a</a>`,
			contains: []string{`"onInput": func(event any) { set(event) }`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			code, _ := generateTemplate(t, tc.source, false)

			// Assert
			for _, want := range tc.contains {
				if !strings.Contains(code, want) {
					t.Errorf("Expected the code to contain:\n%s\ngot:\n%s", want, code)
				}
			}
		})
	}
}

// TestProps verifies the property map of single elements.
func TestProps(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		expected string
		warnings []string
	}{
		{
			name:     "no attributes",
			source:   `<p></p>`,
			expected: "nil",
		},
		{
			name:     "class concatenation",
			source:   `<div class="a" :class="b"></div>`,
			expected: `map[string]any{"class": "a" + " " + _toDisplayString(b)}`,
		},
		{
			name:     "style concatenation",
			source:   `<div style="color:red" :style="s"></div>`,
			expected: `map[string]any{"style": "color:red" + ";" + _toDisplayString(s)}`,
		},
		{
			name:     "other collisions override",
			source:   `<a title="x" :title="y"></a>`,
			expected: `map[string]any{"title": y}`,
			warnings: []string{`binding "title" on <a> overrides an earlier value`},
		},
		{
			name:     "duplicate events merge",
			source:   `<button @click="a" @click.once="b"></button>`,
			expected: `map[string]any{"onClick": []any{a, _withModifiers(b, "once")}}`,
		},
		{
			name:   "checkbox model",
			source: `<input type="checkbox" disabled checked="checked" v-model="on">`,
			expected: "map[string]any{\n" +
				"\"type\": \"checkbox\",\n" +
				"\"disabled\": true,\n" +
				"\"checked\": on,\n" +
				"\"onChange\": _bindModel(&(on)),\n}",
			warnings: []string{`v-model on <input> overrides "checked"`},
		},
		{
			name:   "radio model",
			source: `<input type="radio" value="x" v-model="pick">`,
			expected: "map[string]any{\n" +
				"\"type\": \"radio\",\n" +
				"\"value\": \"x\",\n" +
				"\"checked\": _toDisplayString(pick) == \"x\",\n" +
				"\"onChange\": _bindModel(&(pick)),\n}",
		},
		{
			name:   "lazy text model",
			source: `<input v-model.lazy.trim="name">`,
			expected: "map[string]any{\n" +
				"\"value\": name,\n" +
				"\"onChange\": _bindModel(&(name), \"trim\"),\n}",
		},
		{
			name:   "select model",
			source: `<select v-model="choice"></select>`,
			expected: "map[string]any{\n" +
				"\"value\": choice,\n" +
				"\"onChange\": _bindModel(&(choice)),\n}",
		},
		{
			name:   "component model",
			source: `<NumberInput v-model.number="n"></NumberInput>`,
			expected: "map[string]any{\n" +
				"\"modelValue\": n,\n" +
				"\"onUpdate:modelValue\": _bindModel(&(n), \"number\"),\n}",
		},
		{
			name:   "model on a plain element",
			source: `<div v-model="x"></div>`,
			expected: "map[string]any{\n" +
				"\"modelValue\": x,\n" +
				"\"onUpdate:modelValue\": _bindModel(&(x)),\n}",
			warnings: []string{"v-model on <div> binds modelValue; it is meant for form controls and components"},
		},
		{
			name:     "inner html",
			source:   `<div v-html="raw"></div>`,
			expected: `map[string]any{"innerHTML": raw}`,
		},
		{
			name:     "duplicate literal attribute",
			source:   `<div id="a" id="b"></div>`,
			expected: `map[string]any{"id": "a"}`,
			warnings: []string{`duplicate attribute "id" on <div>; first value kept`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			props, warnings := propsOf(t, tc.source)

			// Assert
			if diff := cmp.Diff(tc.expected, props); diff != "" {
				t.Errorf("Props mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.warnings, messages(warnings), cmpEmpty); diff != "" {
				t.Errorf("Warnings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestProps_Show verifies that v-show prepends display:none to the style.
func TestProps_Show(t *testing.T) {
	// Act
	props, _ := propsOf(t, `<p style="color:red" v-show="ok"></p>`)

	// Assert
	want := "func() string {\ns := \"color:red\"\nif !(ok) {\ns = \"display:none;\" + s\n}\nreturn s\n}()"
	if !strings.Contains(props, want) {
		t.Errorf("Expected the style to contain:\n%s\ngot:\n%s", want, props)
	}
}

// TestGenerate_NilRoot verifies the error for a missing AST.
func TestGenerate_NilRoot(t *testing.T) {
	if _, _, err := Generate(nil, nil); err == nil {
		t.Error("Expected an error for a nil root")
	}
}
