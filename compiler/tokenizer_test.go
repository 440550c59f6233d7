package compiler

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestTokenize verifies the token stream of well-formed markup.
func TestTokenize(t *testing.T) {
	testCases := []struct {
		name     string
		markup   string
		expected []Token
	}{
		{
			name:   "element with text and interpolation",
			markup: `<p class="a">Hi {{ name }}</p>`,
			expected: []Token{
				{Kind: OpenTagToken, Name: "p", Attrs: []Attr{{Name: "class", Value: "a"}}, Line: 1},
				{Kind: TextToken, Data: "Hi ", Line: 1},
				{Kind: InterpolationToken, Data: "name", Line: 1},
				{Kind: CloseTagToken, Name: "p", Line: 1},
			},
		},
		{
			name:   "bare, single-quoted and unquoted attributes",
			markup: `<input disabled type='text' size=10/>`,
			expected: []Token{
				{Kind: OpenTagToken, Name: "input", Attrs: []Attr{
					{Name: "disabled", Bare: true},
					{Name: "type", Value: "text"},
					{Name: "size", Value: "10"},
				}, SelfClosing: true, Line: 1},
			},
		},
		{
			name:   "directive attributes keep their names",
			markup: `<a @click.stop="go" :href="url" v-if="ok"></a>`,
			expected: []Token{
				{Kind: OpenTagToken, Name: "a", Attrs: []Attr{
					{Name: "@click.stop", Value: "go"},
					{Name: ":href", Value: "url"},
					{Name: "v-if", Value: "ok"},
				}, Line: 1},
				{Kind: CloseTagToken, Name: "a", Line: 1},
			},
		},
		{
			name:   "comments and line numbers",
			markup: "<div>\n<!-- note -->\n<span>&amp;</span></div>",
			expected: []Token{
				{Kind: OpenTagToken, Name: "div", Line: 1},
				{Kind: TextToken, Data: "\n", Line: 1},
				{Kind: CommentToken, Data: " note ", Line: 2},
				{Kind: TextToken, Data: "\n", Line: 2},
				{Kind: OpenTagToken, Name: "span", Line: 3},
				{Kind: TextToken, Data: "&", Line: 3},
				{Kind: CloseTagToken, Name: "span", Line: 3},
				{Kind: CloseTagToken, Name: "div", Line: 3},
			},
		},
		{
			name:   "raw text element",
			markup: `<textarea>a < b &lt; c</textarea>`,
			expected: []Token{
				{Kind: OpenTagToken, Name: "textarea", Line: 1},
				{Kind: TextToken, Data: "a < b < c", Line: 1},
				{Kind: CloseTagToken, Name: "textarea", Line: 1},
			},
		},
		{
			name:   "lone less-than is text",
			markup: `<b>1 < 2</b>`,
			expected: []Token{
				{Kind: OpenTagToken, Name: "b", Line: 1},
				{Kind: TextToken, Data: "1 < 2", Line: 1},
				{Kind: CloseTagToken, Name: "b", Line: 1},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			tokens, warnings := Tokenize(tc.markup, DefaultLimits())

			// Assert
			if len(warnings) != 0 {
				t.Errorf("Expected no warnings, got %v", warnings)
			}
			if diff := cmp.Diff(tc.expected, tokens); diff != "" {
				t.Errorf("Token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestTokenize_Unterminated verifies that unterminated constructs end the
// stream with a warning instead of failing.
func TestTokenize_Unterminated(t *testing.T) {
	testCases := []struct {
		name    string
		markup  string
		warning string
	}{
		{"comment", "<div><!-- open", "unterminated comment"},
		{"interpolation", "<div>{{ name", "unterminated interpolation"},
		{"tag", "<div class=\"a\"", "unterminated tag <div"},
		{"attribute value", "<div class=\"a>text", "unterminated attribute value"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, warnings := Tokenize(tc.markup, DefaultLimits())

			// Assert
			found := false
			for _, w := range warnings {
				if strings.Contains(w.Message, tc.warning) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected a warning containing %q, got %v", tc.warning, warnings)
			}
		})
	}
}

// TestTokenize_IterationLimit verifies that the scan stops at the iteration
// bound and reports the truncation.
func TestTokenize_IterationLimit(t *testing.T) {
	// Arrange
	markup := "<div>" + strings.Repeat("x", 1000) + "</div>"

	// Act
	tokens, warnings := Tokenize(markup, Limits{MaxIterations: 100, MaxDuration: time.Second})

	// Assert
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "truncated") {
		t.Fatalf("Expected one truncation warning, got %v", warnings)
	}
	for _, tok := range tokens {
		if tok.Kind == CloseTagToken {
			t.Errorf("Expected the stream to stop before </div>")
		}
	}
}

// TestTokenize_LongUnterminatedQuote verifies that a 10,000 character
// unterminated attribute value is scanned in bounded time.
func TestTokenize_LongUnterminatedQuote(t *testing.T) {
	// Arrange
	markup := `<div title="` + strings.Repeat("a", 10000)

	// Act
	start := time.Now()
	tokens, warnings := Tokenize(markup, DefaultLimits())
	elapsed := time.Since(start)

	// Assert
	if elapsed > time.Second {
		t.Errorf("Expected tokenizing to finish within a second, took %s", elapsed)
	}
	if len(tokens) != 1 || tokens[0].Kind != OpenTagToken {
		t.Fatalf("Expected one open tag token, got %v", tokens)
	}
	if len(warnings) == 0 {
		t.Error("Expected a warning for the unterminated value")
	}
}
