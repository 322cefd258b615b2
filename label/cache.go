package label

import (
	"fmt"
	"strconv"
	"sync"
)

// widthCache remembers measured line widths per font string, then per exact
// line content. Entries are never evicted; the number of distinct label
// strings per font is expected to stay small.
type widthCache struct {
	mu    sync.Mutex
	fonts map[string]map[string]float64
}

var textWidths = &widthCache{fonts: map[string]map[string]float64{}}

func (c *widthCache) width(s Surface, font, line string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines, ok := c.fonts[font]
	if !ok {
		lines = map[string]float64{}
		c.fonts[font] = lines
	}
	if w, ok := lines[line]; ok {
		return w
	}
	s.Save()
	s.SetFont(font)
	w := s.MeasureText(line).Width
	s.Restore()
	lines[line] = w
	return w
}

// longest returns the widest of lines in font.
func (c *widthCache) longest(s Surface, font string, lines []string) float64 {
	var widest float64
	for _, line := range lines {
		if w := c.width(s, font, line); w > widest {
			widest = w
		}
	}
	return widest
}

func (c *widthCache) len(font string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fonts[font])
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
