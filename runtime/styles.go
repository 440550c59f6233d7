package runtime

import (
	"strings"
	"sync"
)

// Style is a stylesheet registered by a compiled component.
type Style struct {
	ID  string
	CSS string
}

var (
	stylesMu sync.Mutex
	styles   []Style
)

// InjectStyle registers a component stylesheet. Compiled modules call it from
// an init function when style injection is enabled. Re-injecting an id
// replaces the previous stylesheet in place, which is what hot reload needs.
func InjectStyle(id, css string) {
	stylesMu.Lock()
	defer stylesMu.Unlock()
	for i := range styles {
		if styles[i].ID == id {
			styles[i].CSS = css
			return
		}
	}
	styles = append(styles, Style{ID: id, CSS: css})
}

// Styles returns the registered stylesheets in injection order.
func Styles() []Style {
	stylesMu.Lock()
	defer stylesMu.Unlock()
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// StyleSheet concatenates every registered stylesheet.
func StyleSheet() string {
	var b strings.Builder
	for _, s := range Styles() {
		b.WriteString(s.CSS)
		if !strings.HasSuffix(s.CSS, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
