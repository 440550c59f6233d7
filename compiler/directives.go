package compiler

import (
	"sort"
	"strings"
)

// Attribute prefixes that mark directives.
const (
	directivePrefix = "v-"
	bindPrefix      = ":"
	eventPrefix     = "@"
	slotPrefix      = "#"
)

// directivePriority is the order in which directives are applied to an
// element. Later entries see the node as already shaped by earlier ones
// (a loop decides what "the node" is before a guard or a binding applies).
// Adding a directive is adding a row here.
var directivePriority = []string{
	"for",
	"if",
	"else-if",
	"else",
	"show",
	"model",
	"bind",
	"on",
	"slot",
	"text",
	"html",
}

var directiveRank = func() map[string]int {
	m := make(map[string]int, len(directivePriority))
	for i, name := range directivePriority {
		m[name] = i
	}
	return m
}()

// parseDirective classifies an attribute name. It returns false for literal
// attributes.
func parseDirective(a Attr) (Directive, bool) {
	name := a.Name
	d := Directive{Value: a.Value, Raw: a.Name}

	var rest string
	switch {
	case strings.HasPrefix(name, bindPrefix) && len(name) > len(bindPrefix):
		d.Name = "bind"
		rest = name[len(bindPrefix):]
	case strings.HasPrefix(name, eventPrefix) && len(name) > len(eventPrefix):
		d.Name = "on"
		rest = name[len(eventPrefix):]
	case strings.HasPrefix(name, slotPrefix) && len(name) > len(slotPrefix):
		d.Name = "slot"
		rest = name[len(slotPrefix):]
	case strings.HasPrefix(name, directivePrefix) && len(name) > len(directivePrefix):
		body := name[len(directivePrefix):]
		end := strings.IndexAny(body, ":.")
		if end < 0 {
			d.Name = body
			return d, true
		}
		d.Name = body[:end]
		if body[end] == '.' {
			d.Modifiers = splitModifiers(body[end+1:])
			return d, true
		}
		rest = body[end+1:]
	default:
		return Directive{}, false
	}

	// rest is "arg.mod1.mod2"; the arg itself may contain ':' (update:value)
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		d.Arg = rest[:i]
		d.Modifiers = splitModifiers(rest[i+1:])
	} else {
		d.Arg = rest
	}
	return d, true
}

func splitModifiers(s string) []string {
	var mods []string
	for _, m := range strings.Split(s, ".") {
		if m != "" {
			mods = append(mods, m)
		}
	}
	return mods
}

// splitAttributes separates literal attributes from directives and sorts
// the directives into priority order. Unknown directives sort last.
func splitAttributes(attrs []Attr) ([]Attr, []Directive) {
	var literal []Attr
	var dirs []Directive
	for _, a := range attrs {
		if d, ok := parseDirective(a); ok {
			dirs = append(dirs, d)
			continue
		}
		literal = append(literal, a)
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return rankOf(dirs[i].Name) < rankOf(dirs[j].Name)
	})
	return literal, dirs
}

func rankOf(name string) int {
	if r, ok := directiveRank[name]; ok {
		return r
	}
	return len(directivePriority)
}
