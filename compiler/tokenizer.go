package compiler

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TokenKind classifies a lexical token of the template markup.
type TokenKind int

const (
	OpenTagToken TokenKind = iota
	CloseTagToken
	TextToken
	InterpolationToken
	CommentToken
)

func (k TokenKind) String() string {
	switch k {
	case OpenTagToken:
		return "OpenTag"
	case CloseTagToken:
		return "CloseTag"
	case TextToken:
		return "Text"
	case InterpolationToken:
		return "Interpolation"
	case CommentToken:
		return "Comment"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Markers of the template grammar.
const (
	commentOpen        = "<!--"
	commentClose       = "-->"
	interpolationOpen  = "{{"
	interpolationClose = "}}"
)

// Attr is one attribute of an open tag. Bare attributes have no value and
// stand for boolean true.
type Attr struct {
	Name  string
	Value string
	Bare  bool
}

// Token is a lexical token. Name and Attrs are set for tags, Data for text,
// interpolation (the trimmed expression) and comment tokens.
type Token struct {
	Kind        TokenKind
	Name        string
	Attrs       []Attr
	SelfClosing bool
	Data        string
	Line        int
}

// tokenizer is the per-call scanning state. It is never shared between calls.
type tokenizer struct {
	src    string
	pos    int
	limits Limits
	start  time.Time
	steps  int

	line    int // line number at linePos
	linePos int

	tokens    []Token
	warnings  []Message
	faults    []Message // unterminated constructs; the recovery layer repairs these
	truncated bool
}

// Tokenize converts template markup into a flat token stream. Scanning is
// bounded by limits; when a bound is hit the stream is truncated and a
// warning is returned. Unterminated constructs are reported as warnings too.
func Tokenize(markup string, limits Limits) ([]Token, []Message) {
	t := newTokenizer(markup, limits)
	t.run()
	return t.tokens, append(t.warnings, t.faults...)
}

func newTokenizer(src string, limits Limits) *tokenizer {
	return &tokenizer{
		src:    src,
		limits: limits.withDefaults(),
		start:  time.Now(),
		line:   1,
	}
}

// tick accounts one unit of work and reports whether scanning may continue.
func (t *tokenizer) tick() bool {
	if t.truncated {
		return false
	}
	t.steps++
	if t.steps > t.limits.MaxIterations {
		t.truncate(fmt.Sprintf("tokenizer stopped after %d iterations; template truncated", t.limits.MaxIterations))
		return false
	}
	if t.steps&0xff == 0 && time.Since(t.start) > t.limits.MaxDuration {
		t.truncate(fmt.Sprintf("tokenizer exceeded %s; template truncated", t.limits.MaxDuration))
		return false
	}
	return true
}

func (t *tokenizer) truncate(msg string) {
	t.truncated = true
	t.warnings = append(t.warnings, Message{Message: msg, Line: t.lineAt(t.pos)})
}

// lineAt returns the 1-based line of pos. Positions are queried in
// non-decreasing order so the count is incremental.
func (t *tokenizer) lineAt(pos int) int {
	if pos > len(t.src) {
		pos = len(t.src)
	}
	if pos < t.linePos {
		return 1 + strings.Count(t.src[:pos], "\n")
	}
	t.line += strings.Count(t.src[t.linePos:pos], "\n")
	t.linePos = pos
	return t.line
}

func (t *tokenizer) fault(pos int, format string, args ...any) {
	t.faults = append(t.faults, Message{Message: fmt.Sprintf(format, args...), Line: t.lineAt(pos)})
}

func (t *tokenizer) emit(tok Token) {
	t.tokens = append(t.tokens, tok)
}

func (t *tokenizer) hasPrefix(s string) bool {
	return strings.HasPrefix(t.src[t.pos:], s)
}

func (t *tokenizer) run() {
	for t.pos < len(t.src) {
		if !t.tick() {
			return
		}
		switch {
		case t.hasPrefix(commentOpen):
			t.consumeComment()
		case t.hasPrefix("</") && t.pos+2 < len(t.src) && isNameStart(t.src[t.pos+2]):
			t.consumeCloseTag()
		case t.src[t.pos] == '<' && t.pos+1 < len(t.src) && isNameStart(t.src[t.pos+1]):
			t.consumeOpenTag()
		case t.hasPrefix(interpolationOpen):
			t.consumeInterpolation()
		default:
			t.consumeText()
		}
	}
}

func (t *tokenizer) consumeComment() {
	start := t.pos
	body := t.pos + len(commentOpen)
	end := strings.Index(t.src[body:], commentClose)
	if end < 0 {
		t.fault(start, "unterminated comment")
		t.emit(Token{Kind: CommentToken, Data: t.src[body:], Line: t.lineAt(start)})
		t.pos = len(t.src)
		return
	}
	t.emit(Token{Kind: CommentToken, Data: t.src[body : body+end], Line: t.lineAt(start)})
	t.pos = body + end + len(commentClose)
}

func (t *tokenizer) consumeCloseTag() {
	start := t.pos
	t.pos += 2
	name := t.readTagName()
	end := strings.IndexByte(t.src[t.pos:], '>')
	if end < 0 {
		t.fault(start, "unterminated close tag </%s", name)
		t.pos = len(t.src)
	} else {
		t.pos += end + 1
	}
	t.emit(Token{Kind: CloseTagToken, Name: name, Line: t.lineAt(start)})
}

func (t *tokenizer) consumeOpenTag() {
	start := t.pos
	t.pos++
	tok := Token{Kind: OpenTagToken, Name: t.readTagName(), Line: t.lineAt(start)}
	terminated := false
	for t.pos < len(t.src) {
		if !t.tick() {
			break
		}
		t.skipSpace()
		if t.pos >= len(t.src) {
			break
		}
		c := t.src[t.pos]
		if c == '>' {
			t.pos++
			terminated = true
			break
		}
		if t.hasPrefix("/>") {
			t.pos += 2
			tok.SelfClosing = true
			terminated = true
			break
		}
		name := t.readAttrName()
		if name == "" {
			// stray quote or '/', skip it
			t.pos++
			continue
		}
		t.skipSpace()
		if t.pos < len(t.src) && t.src[t.pos] == '=' {
			t.pos++
			t.skipSpace()
			tok.Attrs = append(tok.Attrs, Attr{Name: name, Value: t.readAttrValue(tok.Name)})
			continue
		}
		tok.Attrs = append(tok.Attrs, Attr{Name: name, Bare: true})
	}
	if !terminated && !t.truncated {
		t.fault(start, "unterminated tag <%s", tok.Name)
	}
	t.emit(tok)
	if terminated && !tok.SelfClosing && isRawTextElement(tok.Name) {
		t.consumeRawText(tok.Name)
	}
}

// consumeRawText takes everything up to the matching close tag of a
// script/style/textarea/title element as one text token.
func (t *tokenizer) consumeRawText(tag string) {
	start := t.pos
	closer := "</" + strings.ToLower(tag)
	end := strings.Index(strings.ToLower(t.src[t.pos:]), closer)
	if end < 0 {
		t.fault(start, "unterminated <%s> block", tag)
		end = len(t.src) - t.pos
	}
	content := t.src[t.pos : t.pos+end]
	if content != "" {
		if escapable(tag) {
			content = html.UnescapeString(content)
		}
		t.emit(Token{Kind: TextToken, Data: content, Line: t.lineAt(start)})
	}
	t.pos += end
}

func (t *tokenizer) consumeInterpolation() {
	start := t.pos
	body := t.pos + len(interpolationOpen)
	end := strings.Index(t.src[body:], interpolationClose)
	if end < 0 {
		t.fault(start, "unterminated interpolation %s", interpolationOpen)
		t.emit(Token{Kind: InterpolationToken, Data: strings.TrimSpace(t.src[body:]), Line: t.lineAt(start)})
		t.pos = len(t.src)
		return
	}
	t.emit(Token{Kind: InterpolationToken, Data: strings.TrimSpace(t.src[body : body+end]), Line: t.lineAt(start)})
	t.pos = body + end + len(interpolationClose)
}

func (t *tokenizer) consumeText() {
	start := t.pos
	t.pos++
	for t.pos < len(t.src) {
		if !t.tick() {
			break
		}
		if t.src[t.pos] == '<' && t.pos+1 < len(t.src) && (isNameStart(t.src[t.pos+1]) || t.src[t.pos+1] == '/' || t.src[t.pos+1] == '!') {
			break
		}
		if t.hasPrefix(interpolationOpen) {
			break
		}
		t.pos++
	}
	text := html.UnescapeString(t.src[start:t.pos])
	if n := len(t.tokens); n > 0 && t.tokens[n-1].Kind == TextToken {
		t.tokens[n-1].Data += text
		return
	}
	t.emit(Token{Kind: TextToken, Data: text, Line: t.lineAt(start)})
}

func (t *tokenizer) readTagName() string {
	start := t.pos
	for t.pos < len(t.src) && isNameChar(t.src[t.pos]) {
		t.pos++
	}
	return t.src[start:t.pos]
}

func (t *tokenizer) readAttrName() string {
	start := t.pos
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if isSpace(c) || c == '=' || c == '>' || c == '"' || c == '\'' || (c == '/' && t.pos+1 < len(t.src) && t.src[t.pos+1] == '>') {
			break
		}
		if c == '/' && t.pos == start {
			break
		}
		t.pos++
	}
	return t.src[start:t.pos]
}

func (t *tokenizer) readAttrValue(tag string) string {
	if t.pos >= len(t.src) {
		return ""
	}
	if q := t.src[t.pos]; q == '"' || q == '\'' {
		start := t.pos
		t.pos++
		end := strings.IndexByte(t.src[t.pos:], q)
		if end < 0 {
			t.fault(start, "unterminated attribute value in <%s>", tag)
			v := t.src[t.pos:]
			t.pos = len(t.src)
			return html.UnescapeString(v)
		}
		v := t.src[t.pos : t.pos+end]
		t.pos += end + 1
		return html.UnescapeString(v)
	}
	start := t.pos
	for t.pos < len(t.src) && !isSpace(t.src[t.pos]) && t.src[t.pos] != '>' {
		if t.hasPrefix("/>") {
			break
		}
		t.pos++
	}
	return html.UnescapeString(t.src[start:t.pos])
}

func (t *tokenizer) skipSpace() {
	for t.pos < len(t.src) && isSpace(t.src[t.pos]) {
		t.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '_' || c == ':' || c == '.'
}

func isRawTextElement(tag string) bool {
	switch atom.Lookup([]byte(strings.ToLower(tag))) {
	case atom.Script, atom.Style, atom.Textarea, atom.Title:
		return true
	}
	return false
}

// escapable reports whether character references are decoded inside a
// raw-text element.
func escapable(tag string) bool {
	switch atom.Lookup([]byte(strings.ToLower(tag))) {
	case atom.Textarea, atom.Title:
		return true
	}
	return false
}

// isVoidElement reports whether tag never has children or a close tag.
func isVoidElement(tag string) bool {
	switch atom.Lookup([]byte(tag)) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track, atom.Wbr:
		return true
	}
	return false
}
