package geom

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	b := Vec2{X: 1, Y: 2}

	if got := a.Add(b); got != (Vec2{4, 6}) {
		t.Errorf("Add: got %+v, want {4 6}", got)
	}
	if got := a.Sub(b); got != (Vec2{2, 2}) {
		t.Errorf("Sub: got %+v, want {2 2}", got)
	}
	if got := a.Scale(2); got != (Vec2{6, 8}) {
		t.Errorf("Scale: got %+v, want {6 8}", got)
	}
	if got := a.Length(); math.Abs(got-5) > 1e-9 {
		t.Errorf("Length: got %v, want 5", got)
	}
}

func TestClampMagnitude(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		max  float64
		want float64
	}{
		{"under limit unchanged", Vec2{3, 0}, 5, 3},
		{"over limit clamped", Vec2{10, 0}, 5, 5},
		{"zero vector stays zero", Vec2{0, 0}, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ClampMagnitude(tt.max).Length()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ClampMagnitude(%v).Length() = %v, want %v", tt.max, got, tt.want)
			}
		})
	}
}

func TestFromHeadingRoundTrip(t *testing.T) {
	for _, h := range []float64{0, math.Pi / 4, math.Pi / 2, math.Pi, -math.Pi / 2} {
		v := FromHeading(h)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("FromHeading(%v) not unit length: %+v", h, v)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{3 * math.Pi, math.Pi},
		{-math.Pi - 0.1, math.Pi - 0.1},
	}
	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if got <= -math.Pi || got > math.Pi+1e-9 {
			t.Errorf("WrapAngle(%v) = %v out of (-pi, pi]", tt.in, got)
		}
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampSlew(t *testing.T) {
	tests := []struct {
		name            string
		current, target float64
		maxDelta        float64
		wantWithinDelta bool
	}{
		{"small turn passes through", 0, 0.1, 0.5, true},
		{"large turn clamped", 0, math.Pi, 0.2, true},
		{"already at target", 1.0, 1.0, 0.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampSlew(tt.current, tt.target, tt.maxDelta)
			delta := math.Abs(WrapAngle(got - tt.current))
			if delta > tt.maxDelta+1e-9 {
				t.Errorf("ClampSlew moved by %v, exceeds max %v", delta, tt.maxDelta)
			}
		})
	}
}

func TestAngleDiff(t *testing.T) {
	got := AngleDiff(0, math.Pi/2)
	if math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("AngleDiff(0, pi/2) = %v, want pi/2", got)
	}
	got = AngleDiff(math.Pi/2, 0)
	if math.Abs(got+math.Pi/2) > 1e-9 {
		t.Errorf("AngleDiff(pi/2, 0) = %v, want -pi/2", got)
	}
}
