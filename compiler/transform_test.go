package compiler

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var cmpEmpty = cmpopts.EquateEmpty()

func transformTemplate(t *testing.T, source string, opts TransformOptions) (*Node, []Message, []Message) {
	t.Helper()
	root, _, err := Parse(source, DefaultLimits())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	warnings, errs := Transform(root, opts)
	return root, warnings, errs
}

func messages(msgs []Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Message)
	}
	return out
}

// TestTransform_Annotations verifies that each directive lands on its
// annotation.
func TestTransform_Annotations(t *testing.T) {
	// Arrange
	source := `<div>
  <li v-for="(item, i) in items" :key="item.ID" @click="pick(i)" v-show="item.Visible">{{ item.Name }}</li>
  <input v-model.lazy="form.Name">
  <span v-text="label"></span>
  <div v-html="raw"><b>replaced</b></div>
</div>`

	// Act
	root, warnings, errs := transformTemplate(t, source, TransformOptions{})

	// Assert
	if len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}
	div := root.Children[0]
	if len(div.Children) != 4 {
		t.Fatalf("Expected 4 element children after condensing, got %d", len(div.Children))
	}

	li := div.Children[0]
	if diff := cmp.Diff(&LoopBinding{Item: "item", Index: "i", Source: "items"}, li.Loop); diff != "" {
		t.Errorf("Loop mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Binding{{Name: "key", Expr: "item.ID"}}, li.Props); diff != "" {
		t.Errorf("Props mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]EventBinding{{Name: "click", Handler: "func() { pick(i) }"}}, li.Events); diff != "" {
		t.Errorf("Events mismatch (-want +got):\n%s", diff)
	}
	if li.Show != "item.Visible" {
		t.Errorf("Expected show 'item.Visible', got '%s'", li.Show)
	}

	input := div.Children[1]
	if diff := cmp.Diff(&ModelBinding{Expr: "form.Name", Modifiers: []string{"lazy"}}, input.Model); diff != "" {
		t.Errorf("Model mismatch (-want +got):\n%s", diff)
	}

	if div.Children[2].TextExpr != "label" {
		t.Errorf("Expected text expression 'label', got '%s'", div.Children[2].TextExpr)
	}
	html := div.Children[3]
	if html.HTMLExpr != "raw" || len(html.Children) != 0 {
		t.Errorf("Expected v-html to replace the children")
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "replaced by v-html") {
		t.Errorf("Expected a warning about replaced children, got %v", warnings)
	}
}

// TestTransform_ConditionalChain verifies that v-else-if and v-else join the
// preceding v-if across whitespace.
func TestTransform_ConditionalChain(t *testing.T) {
	// Arrange
	source := `<div>
  <p v-if="a">A</p>
  <p v-else-if="b">B</p>
  <!-- between -->
  <p v-else>C</p>
  <p v-if="d">D</p>
</div>`

	// Act
	root, warnings, errs := transformTemplate(t, source, TransformOptions{})

	// Assert
	if len(errs) != 0 || len(warnings) != 0 {
		t.Fatalf("Unexpected messages: %v %v", errs, warnings)
	}
	div := root.Children[0]
	if len(div.Children) != 2 {
		t.Fatalf("Expected the chain and the second v-if, got %d children", len(div.Children))
	}
	head := div.Children[0]
	if len(head.If.Branches) != 2 {
		t.Fatalf("Expected 2 branches, got %d", len(head.If.Branches))
	}
	if head.If.Branches[0].If.Kind != CondElseIf || head.If.Branches[1].If.Kind != CondElse {
		t.Errorf("Expected else-if then else")
	}
	if div.Children[1].If.Expr != "d" {
		t.Errorf("Expected the second chain to start at 'd'")
	}
}

// TestTransform_OrphanedElse verifies that a branch without a preceding v-if
// is reported and rendered unconditionally.
func TestTransform_OrphanedElse(t *testing.T) {
	// Act
	root, warnings, _ := transformTemplate(t, `<div><span>x</span><p v-else>y</p></div>`, TransformOptions{})

	// Assert
	if diff := cmp.Diff([]string{"v-else has no adjacent v-if"}, messages(warnings)); diff != "" {
		t.Errorf("Warnings mismatch (-want +got):\n%s", diff)
	}
	p := root.Children[0].Children[1]
	if p.If != nil {
		t.Errorf("Expected the orphaned branch to lose its conditional")
	}
}

// TestTransform_Diagnostics verifies the warnings and errors of invalid
// directives.
func TestTransform_Diagnostics(t *testing.T) {
	testCases := []struct {
		name     string
		source   string
		warnings []string
		errors   []string
	}{
		{
			name:     "unknown directive",
			source:   `<div v-focus="x"></div>`,
			warnings: []string{`unknown directive "v-focus"`},
		},
		{
			name:   "invalid loop",
			source: `<li v-for="items"></li>`,
			errors: []string{`invalid v-for expression "items": expected "item in source" or "(item, index) in source"`},
		},
		{
			name:   "model target not assignable",
			source: `<input v-model="f()">`,
			errors: []string{`v-model="f()" is not assignable`},
		},
		{
			name:   "event without a name",
			source: `<a v-on="go"></a>`,
			errors: []string{"v-on requires an event name"},
		},
		{
			name:     "bind without an argument",
			source:   `<a v-bind="attrs"></a>`,
			warnings: []string{`v-bind without an argument is not supported; "attrs" ignored`},
		},
		{
			name:     "second conditional",
			source:   `<a v-if="x" v-else></a>`,
			warnings: []string{"v-else ignored: <a> already has v-if"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, warnings, errs := transformTemplate(t, tc.source, TransformOptions{})

			// Assert
			if diff := cmp.Diff(tc.warnings, messages(warnings), cmpEmpty); diff != "" {
				t.Errorf("Warnings mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.errors, messages(errs), cmpEmpty); diff != "" {
				t.Errorf("Errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestTransform_InvalidInterpolation verifies that a bad interpolation is an
// error and renders as empty text.
func TestTransform_InvalidInterpolation(t *testing.T) {
	// Act
	root, _, errs := transformTemplate(t, `<p>{{ a + }}</p>`, TransformOptions{})

	// Assert
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "invalid expression in {{ }}") {
		t.Fatalf("Expected one interpolation error, got %v", errs)
	}
	c := root.Children[0].Children[0]
	if c.Kind != TextNode || c.Data != "" {
		t.Errorf("Expected empty text, got %s %q", c.Kind, c.Data)
	}
}

// TestTransform_Whitespace verifies condensing and its opt-out.
func TestTransform_Whitespace(t *testing.T) {
	// Arrange
	source := "<div>\n  <b>a</b>\n  <i>b</i> <u>c</u>\n  text   here\n</div>"

	// Act
	condensed, _, _ := transformTemplate(t, source, TransformOptions{})
	preserved, _, _ := transformTemplate(t, source, TransformOptions{PreserveWhitespace: true})

	// Assert
	if got := shape(condensed); got != "#root(div(b('a') i('b') ' ' u('c') ' text here '))" {
		t.Errorf("Unexpected condensed tree %s", got)
	}
	if got := len(preserved.Children[0].Children); got != 7 {
		t.Errorf("Expected 7 children with whitespace preserved, got %d", got)
	}
}

// TestTransform_ScopeAttribute verifies that elements get the scope
// attribute and template and slot elements do not.
func TestTransform_ScopeAttribute(t *testing.T) {
	// Act
	root, _, _ := transformTemplate(t, `<div><template v-if="x"><span></span></template><slot></slot></div>`, TransformOptions{ScopeAttr: "data-v-abc"})

	// Assert
	div := root.Children[0]
	if _, ok := div.attr("data-v-abc"); !ok {
		t.Error("Expected the scope attribute on <div>")
	}
	tmpl := div.Children[0]
	if _, ok := tmpl.attr("data-v-abc"); ok {
		t.Error("Expected no scope attribute on <template>")
	}
	if _, ok := tmpl.Children[0].attr("data-v-abc"); !ok {
		t.Error("Expected the scope attribute on <span>")
	}
	if _, ok := div.Children[1].attr("data-v-abc"); ok {
		t.Error("Expected no scope attribute on <slot>")
	}
}

// TestTransform_SlotOutlet verifies the annotation of a <slot> outlet.
func TestTransform_SlotOutlet(t *testing.T) {
	// Act
	root, _, _ := transformTemplate(t, `<div><slot name="row" :item="it">fallback</slot></div>`, TransformOptions{})

	// Assert
	slot := root.Children[0].Children[0]
	expected := &SlotBinding{Name: "row", Props: `map[string]any{"item": it}`}
	if diff := cmp.Diff(expected, slot.Slot); diff != "" {
		t.Errorf("Slot mismatch (-want +got):\n%s", diff)
	}
	if len(slot.Attrs) != 0 || len(slot.Props) != 0 {
		t.Errorf("Expected name and props to move onto the slot annotation")
	}
}
