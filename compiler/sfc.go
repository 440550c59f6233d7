package compiler

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reBlockOpen = regexp.MustCompile(`<([A-Za-z][A-Za-z0-9_-]*)((?:\s+[^\s=/>]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+))?)*)\s*(/?)>`)
	reBlockAttr = regexp.MustCompile(`([^\s=/>]+)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s>]+)))?`)
)

// Blocks is the result of splitting a single-file component.
type Blocks struct {
	Template *Block
	Script   *Block
	Style    *Block
	Custom   []Block
}

// SplitBlocks finds the top-level regions of a single-file component. The
// template region is matched by counting nested <template> tags; script and
// style end at their first close tag; any other top-level element is a
// custom block. Text and comments between regions are ignored. A second
// template, script or style region is reported and ignored.
func SplitBlocks(source string) (Blocks, []Message) {
	var blocks Blocks
	var warnings []Message

	pos := 0
	for pos < len(source) {
		lt := strings.IndexByte(source[pos:], '<')
		if lt < 0 {
			break
		}
		pos += lt
		if strings.HasPrefix(source[pos:], commentOpen) {
			end := strings.Index(source[pos+len(commentOpen):], commentClose)
			if end < 0 {
				break
			}
			pos += len(commentOpen) + end + len(commentClose)
			continue
		}

		loc := reBlockOpen.FindStringSubmatchIndex(source[pos:])
		if loc == nil || loc[0] != 0 {
			pos++
			continue
		}
		name := source[pos+loc[2] : pos+loc[3]]
		attrs := parseBlockAttrs(source[pos+loc[4] : pos+loc[5]])
		selfClosing := loc[7] > loc[6]
		openEnd := pos + loc[1]
		line := lineOf(source, pos)

		block := Block{
			Type:        strings.ToLower(name),
			Attrs:       attrs,
			Line:        line,
			ContentLine: line + strings.Count(source[pos:openEnd], "\n"),
		}

		var contentEnd, next int
		if selfClosing {
			contentEnd, next = openEnd, openEnd
		} else {
			contentEnd, next = findBlockEnd(source, openEnd, name)
			if contentEnd < 0 {
				warnings = append(warnings, Message{Message: fmt.Sprintf("<%s> block is not closed", name), Line: line})
				contentEnd, next = len(source), len(source)
			}
		}
		block.Content = source[openEnd:contentEnd]
		pos = next

		switch block.Type {
		case "template":
			if blocks.Template != nil {
				warnings = append(warnings, Message{Message: "duplicate <template> block ignored", Line: line})
				continue
			}
			blocks.Template = &block
		case "script":
			if blocks.Script != nil {
				warnings = append(warnings, Message{Message: "duplicate <script> block ignored", Line: line})
				continue
			}
			blocks.Script = &block
		case "style":
			if blocks.Style != nil {
				warnings = append(warnings, Message{Message: "duplicate <style> block ignored", Line: line})
				continue
			}
			blocks.Style = &block
		default:
			blocks.Custom = append(blocks.Custom, block)
		}
	}
	return blocks, warnings
}

// findBlockEnd returns the offset of the close tag ending the block opened
// just before from, and the offset just past it. Nested tags of the same
// name are counted for every block except script and style, whose content
// is raw text. It returns -1 when the block is never closed.
func findBlockEnd(source string, from int, name string) (int, int) {
	lower := strings.ToLower(source)
	open := "<" + strings.ToLower(name)
	closeTag := "</" + strings.ToLower(name)
	raw := isRawTextElement(strings.ToLower(name))

	depth := 1
	pos := from
	for pos < len(lower) {
		c := strings.Index(lower[pos:], closeTag)
		if c < 0 {
			return -1, -1
		}
		c += pos
		if !raw {
			for {
				o := strings.Index(lower[pos:c], open)
				if o < 0 {
					break
				}
				o += pos
				after := o + len(open)
				if after < len(lower) && (isSpace(lower[after]) || lower[after] == '>' || lower[after] == '/') {
					depth++
				}
				pos = after
			}
		}
		end := strings.IndexByte(lower[c:], '>')
		if end < 0 {
			return -1, -1
		}
		depth--
		if depth == 0 {
			return c, c + end + 1
		}
		pos = c + end + 1
	}
	return -1, -1
}

func parseBlockAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range reBlockAttr.FindAllStringSubmatch(s, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if value == "" {
			value = m[4]
		}
		attrs[strings.ToLower(m[1])] = value
	}
	return attrs
}

func lineOf(source string, pos int) int {
	return strings.Count(source[:pos], "\n") + 1
}

// hasAttr reports whether a block carries the attribute, with or without a
// value.
func (b *Block) hasAttr(name string) bool {
	if b == nil {
		return false
	}
	_, ok := b.Attrs[name]
	return ok
}
