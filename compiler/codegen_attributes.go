package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vcrobe/sfc/events"
)

// propEntry is one key of the generated props map. str records whether the
// value is known to be a Go string expression.
type propEntry struct {
	key    string
	values []string
	str    bool
}

// propsBuilder keeps map keys in insertion order so output is deterministic.
type propsBuilder struct {
	entries []*propEntry
	index   map[string]*propEntry
}

func (p *propsBuilder) get(key string) *propEntry {
	if p.index == nil {
		p.index = make(map[string]*propEntry)
	}
	return p.index[key]
}

func (p *propsBuilder) set(key, value string, str bool) {
	if e := p.get(key); e != nil {
		e.values, e.str = []string{value}, str
		return
	}
	e := &propEntry{key: key, values: []string{value}, str: str}
	p.entries = append(p.entries, e)
	p.index[key] = e
}

// add appends a value under key; a key set more than once becomes a list.
func (p *propsBuilder) add(key, value string) {
	if e := p.get(key); e != nil {
		e.values = append(e.values, value)
		e.str = false
		return
	}
	p.set(key, value, false)
}

func (p *propsBuilder) String() string {
	if len(p.entries) == 0 {
		return "nil"
	}
	lines := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		value := e.values[0]
		if len(e.values) > 1 {
			value = "[]any{" + strings.Join(e.values, ", ") + "}"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", strconv.Quote(e.key), value))
	}
	if len(lines) == 1 && !strings.Contains(lines[0], "\n") {
		return "map[string]any{" + lines[0] + "}"
	}
	return "map[string]any{\n" + strings.Join(lines, ",\n") + ",\n}"
}

// props generates the property map of an element: literal attributes, bound
// properties, the v-show style, event listeners and the v-model pair, in
// that order.
func (g *generator) props(n *Node) string {
	p := &propsBuilder{}

	for _, a := range n.Attrs {
		if p.get(a.Name) != nil {
			g.warn(n.Line, "duplicate attribute %q on <%s>; first value kept", a.Name, n.Tag)
			continue
		}
		if a.Bare || isBooleanAttribute(a.Name) && (a.Value == "" || strings.EqualFold(a.Value, a.Name)) {
			p.set(a.Name, "true", false)
			continue
		}
		p.set(a.Name, strconv.Quote(a.Value), true)
	}

	for _, b := range n.Props {
		g.bind(p, n, b.Name, b.Expr)
	}

	if n.Show != "" {
		g.show(p, n.Show)
	}

	for _, ev := range n.Events {
		handler := ev.Handler
		if len(ev.Modifiers) > 0 {
			args := []string{handler}
			for _, m := range ev.Modifiers {
				args = append(args, strconv.Quote(m))
			}
			handler = fmt.Sprintf("%s(%s)", g.use(helperWithModifiers), strings.Join(args, ", "))
		}
		p.add(events.Key(ev.Name), handler)
	}

	if n.Model != nil {
		g.model(p, n)
	}

	if n.HTMLExpr != "" {
		p.set("innerHTML", n.HTMLExpr, false)
	}
	return p.String()
}

// bind merges one bound property. class and style are concatenated with a
// literal value of the same name; any other collision replaces the earlier
// value.
func (g *generator) bind(p *propsBuilder, n *Node, name, expr string) {
	prev := p.get(name)
	if prev == nil {
		p.set(name, expr, false)
		return
	}
	switch name {
	case "class", "style":
		sep := " "
		if name == "style" {
			sep = ";"
		}
		p.set(name, fmt.Sprintf("%s + %q + %s", g.asString(prev), sep, g.toString(expr)), true)
	default:
		g.warn(n.Line, "binding %q on <%s> overrides an earlier value", name, n.Tag)
		p.set(name, expr, false)
	}
}

// show prepends display:none to the style when the expression is false.
func (g *generator) show(p *propsBuilder, expr string) {
	base := `""`
	if prev := p.get("style"); prev != nil {
		base = g.asString(prev)
	}
	code := fmt.Sprintf("func() string {\ns := %s\nif !(%s) {\ns = \"display:none;\" + s\n}\nreturn s\n}()", base, expr)
	p.set("style", code, true)
}

// model adds the value property and change listener matching the element.
func (g *generator) model(p *propsBuilder, n *Node) {
	valueKey, eventName := "value", "input"
	lazy := false
	for _, m := range n.Model.Modifiers {
		if m == "lazy" {
			lazy = true
		}
	}
	value := n.Model.Expr

	switch {
	case n.Tag == "input":
		inputType, _ := n.attr("type")
		switch strings.ToLower(inputType) {
		case "checkbox":
			valueKey, eventName = "checked", "change"
		case "radio":
			valueKey, eventName = "checked", "change"
			if v, ok := n.attr("value"); ok {
				value = fmt.Sprintf("%s(%s) == %s", g.use(helperToDisplayString), n.Model.Expr, strconv.Quote(v))
			}
		default:
			if lazy {
				eventName = "change"
			}
		}
	case n.Tag == "select":
		eventName = "change"
	case n.Tag == "textarea":
		if lazy {
			eventName = "change"
		}
	default:
		if !isComponentTag(n.Tag) {
			g.warn(n.Line, "v-model on <%s> binds modelValue; it is meant for form controls and components", n.Tag)
		}
		valueKey, eventName = "modelValue", "update:modelValue"
	}

	args := []string{"&(" + n.Model.Expr + ")"}
	for _, m := range n.Model.Modifiers {
		if m != "lazy" {
			args = append(args, strconv.Quote(m))
		}
	}

	if p.get(valueKey) != nil {
		g.warn(n.Line, "v-model on <%s> overrides %q", n.Tag, valueKey)
	}
	p.set(valueKey, value, false)
	p.add(events.Key(eventName), fmt.Sprintf("%s(%s)", g.use(helperBindModel), strings.Join(args, ", ")))
}

// asString returns an entry's value as a string expression.
func (g *generator) asString(e *propEntry) string {
	if e.str && len(e.values) == 1 {
		return e.values[0]
	}
	return g.toString(strings.Join(e.values, ", "))
}

func (g *generator) toString(expr string) string {
	return fmt.Sprintf("%s(%s)", g.use(helperToDisplayString), expr)
}
