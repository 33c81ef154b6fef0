package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

// SVG collects triangle fans and renders them as a standalone SVG document.
type SVG struct {
	Viewport Viewport
	Fill     string
	Stroke   string
	fans     [][]dynamo.Vec2
}

func NewSVG(width, height int) *SVG {
	return &SVG{
		Viewport: NewViewport(width, height),
		Fill:     "#00ff88",
		Stroke:   "#444466",
	}
}

func (s *SVG) DrawFan(vertices []dynamo.Vec2) {
	fan := make([]dynamo.Vec2, len(vertices))
	copy(fan, vertices)
	s.fans = append(s.fans, fan)
}

// Reset drops every collected fan.
func (s *SVG) Reset() { s.fans = s.fans[:0] }

func (s *SVG) Len() int { return len(s.fans) }

func (s *SVG) String() string {
	var sb strings.Builder
	w, h := s.Viewport.Width, s.Viewport.Height

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, w, h, w, h))

	bx, by, bw, bh := s.Viewport.Bounds()
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, bx, by, bw, bh, s.Stroke))

	sb.WriteString(fmt.Sprintf("<g fill=%q>\n", s.Fill))
	for _, fan := range s.fans {
		rim := Perimeter(fan)
		if len(rim) == 0 {
			continue
		}
		sb.WriteString(`<polygon points="`)
		for i, p := range rim {
			x, y := s.Viewport.ToPixel(p)
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
