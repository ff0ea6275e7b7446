// Package palette assigns stable display colors to names. A name gets a
// color from the hash of its characters on first use and keeps it for
// the lifetime of the palette.
package palette

import (
	"sync"
)

// Default color table shared by member and group palettes.
var defaultColors = []string{
	"#10b981", "#8b5cf6", "#f59e0b", "#06b6d4", "#ec4899",
	"#eab308", "#ef4444", "#84cc16", "#f97316", "#6366f1",
	"#14b8a6", "#a855f7", "#f43f5e", "#22c55e", "#3b82f6",
	"#d946ef", "#0ea5e9", "#64748b", "#fbbf24", "#fb7185",
	"#34d399", "#a78bfa", "#60a5fa", "#f472b6", "#818cf8",
	"#38bdf8", "#fb923c", "#c084fc", "#2dd4bf", "#9333ea",
	"#dc2626", "#16a34a", "#0284c7", "#c2410c", "#7c2d12",
	"#1e40af", "#581c87", "#991b1b", "#0891b2", "#be185d",
	"#155e75",
}

type Palette struct {
	mu       sync.Mutex
	colors   []string
	assigned map[string]string
}

func New() *Palette {
	return &Palette{
		colors:   defaultColors,
		assigned: make(map[string]string),
	}
}

// ColorFor returns the color assigned to name, assigning one from the
// name hash on first use.
func (p *Palette) ColorFor(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if color, ok := p.assigned[name]; ok {
		return color
	}
	color := p.colors[hashString(name)%len(p.colors)]
	p.assigned[name] = color
	return color
}

// ExistingColor returns the assigned color without assigning a new one.
func (p *Palette) ExistingColor(name string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	color, ok := p.assigned[name]
	return color, ok
}

// SetColor pins a specific color to a name.
func (p *Palette) SetColor(name, color string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assigned[name] = color
}

// hashString is the 32-bit string hash the color index is derived from.
// It deliberately wraps at 32 bits so the assignment is deterministic
// across platforms.
func hashString(s string) int {
	var hash int32
	for _, r := range s {
		hash = (hash << 5) - hash + int32(r)
	}
	h := int64(hash)
	if h < 0 {
		h = -h
	}
	return int(h)
}
