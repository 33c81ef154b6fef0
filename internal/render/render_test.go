package render

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

func TestTriangleFan(t *testing.T) {
	center := dynamo.V(0.25, -0.5)
	radius := 0.1
	resolution := 100

	fan := TriangleFan(center, radius, resolution)

	if len(fan) != resolution+2 {
		t.Fatalf("len(fan) = %d, want %d", len(fan), resolution+2)
	}
	if fan[0] != center {
		t.Errorf("fan[0] = %v, want center %v", fan[0], center)
	}
	for i, p := range fan[1:] {
		if d := p.Sub(center).Length(); math.Abs(d-radius) > 1e-12 {
			t.Errorf("vertex %d at distance %v, want %v", i, d, radius)
		}
	}
	first, last := fan[1], fan[len(fan)-1]
	if first.Sub(last).Length() > 1e-12 {
		t.Errorf("fan not closed: first %v, last %v", first, last)
	}
	if math.Abs(fan[1].X-(center.X+radius)) > 1e-12 || math.Abs(fan[1].Y-center.Y) > 1e-12 {
		t.Errorf("first perimeter vertex = %v, want angle 0", fan[1])
	}
}

func TestTriangleFan_EvenSpacing(t *testing.T) {
	fan := TriangleFan(dynamo.V(0, 0), 1, 4)
	want := []dynamo.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}, {X: 1, Y: 0}}

	for i := range want {
		if fan[i].Sub(want[i]).Length() > 1e-12 {
			t.Errorf("fan[%d] = %v, want %v", i, fan[i], want[i])
		}
	}
}

func TestTriangleFan_ZeroResolution(t *testing.T) {
	fan := TriangleFan(dynamo.V(1, 1), 0.1, 0)
	if len(fan) != 1 {
		t.Errorf("len(fan) = %d, want 1", len(fan))
	}
	if Perimeter(fan) != nil {
		t.Error("expected empty perimeter")
	}
}

func TestViewport_ToPixel(t *testing.T) {
	vp := NewViewport(800, 600)
	aspect := vp.Aspect()

	tests := []struct {
		name   string
		in     dynamo.Vec2
		wx, wy float64
	}{
		{"center", dynamo.V(0, 0), 400, 300},
		{"top left", dynamo.V(-aspect, 1), 0, 0},
		{"bottom right", dynamo.V(aspect, -1), 800, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := vp.ToPixel(tt.in)
			if math.Abs(x-tt.wx) > 1e-9 || math.Abs(y-tt.wy) > 1e-9 {
				t.Errorf("ToPixel(%v) = (%v, %v), want (%v, %v)", tt.in, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestViewport_ZeroHeight(t *testing.T) {
	if got := NewViewport(10, 0).Aspect(); got != 1 {
		t.Errorf("Aspect() = %v, want 1", got)
	}
}

func TestSVG(t *testing.T) {
	s := NewSVG(400, 300)
	s.DrawFan(TriangleFan(dynamo.V(0, 0), 0.1, 8))
	s.DrawFan(TriangleFan(dynamo.V(0.5, 0.2), 0.1, 8))

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	doc := s.String()
	if !strings.HasPrefix(doc, "<?xml") {
		t.Error("missing xml header")
	}
	if got := strings.Count(doc, "<polygon"); got != 2 {
		t.Errorf("polygon count = %d, want 2", got)
	}
	if !strings.HasSuffix(doc, "</svg>") {
		t.Error("document not closed")
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
}
