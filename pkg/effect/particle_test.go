package effect

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/confetti/pkg/config"
)

func TestNewParticleRanges(t *testing.T) {
	const w, h = 1920.0, 1080.0
	rng := rand.New(rand.NewSource(1))

	palette := make(map[[4]uint8]bool)
	for _, c := range config.Palette {
		palette[[4]uint8{c.R, c.G, c.B, c.A}] = true
	}

	for i := 0; i < 2000; i++ {
		p := NewParticle(rng, w, h)

		if p.X != 0 && p.X != w {
			t.Fatalf("X = %v, want 0 or %v", p.X, w)
		}
		if p.Y < 0.3*h || p.Y >= 0.7*h {
			t.Fatalf("Y = %v outside [0.3h, 0.7h)", p.Y)
		}
		if p.Width < 8 || p.Width >= 16 {
			t.Fatalf("Width = %v outside [8, 16)", p.Width)
		}
		if p.Height < 12 || p.Height >= 24 {
			t.Fatalf("Height = %v outside [12, 24)", p.Height)
		}
		if p.Rotation < 0 || p.Rotation >= 360 {
			t.Fatalf("Rotation = %v outside [0, 360)", p.Rotation)
		}
		if p.RotationSpeed < -300 || p.RotationSpeed >= 300 {
			t.Fatalf("RotationSpeed = %v outside [-300, 300)", p.RotationSpeed)
		}
		if math.IsNaN(p.VX) || math.IsNaN(p.VY) {
			t.Fatalf("velocity is NaN: (%v, %v)", p.VX, p.VY)
		}
		// 水平速度总是指向屏幕中心
		if (p.X == 0 && p.VX <= 0) || (p.X == w && p.VX >= 0) {
			t.Fatalf("VX = %v does not point inward from X = %v", p.VX, p.X)
		}
		if !palette[[4]uint8{p.Color.R, p.Color.G, p.Color.B, p.Color.A}] {
			t.Fatalf("Color %v not in palette", p.Color)
		}
	}
}

// TestTargetDistanceNonZero 目标带与屏幕边缘的距离对任意宽度都大于 0
func TestTargetDistanceNonZero(t *testing.T) {
	for _, w := range []float64{1, 2, 400, 1920, 7680} {
		rng := rand.New(rand.NewSource(int64(w)))
		for i := 0; i < 500; i++ {
			p := NewParticle(rng, w, 1080)
			speed := math.Hypot(p.VX, p.VY)
			if speed == 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
				t.Fatalf("width %v: degenerate velocity (%v, %v)", w, p.VX, p.VY)
			}
		}
	}
}

func TestLaunchVelocity(t *testing.T) {
	tests := []struct {
		name           string
		x, y, tx, ty   float64
		speed, lift    float64
		wantVX, wantVY float64
	}{
		{"rightward", 0, 500, 100, 500, 1000, 300, 1000, -300},
		{"upward", 50, 500, 50, 400, 800, 200, 0, -1000},
		{"3-4-5", 0, 0, 3, 4, 1000, 0, 600, 800},
		// 起点与目标重合：方向退化为正上方
		{"degenerate", 960, 300, 960, 300, 1000, 250, 0, -1250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vx, vy := launchVelocity(tt.x, tt.y, tt.tx, tt.ty, tt.speed, tt.lift)
			if math.Abs(vx-tt.wantVX) > 1e-9 || math.Abs(vy-tt.wantVY) > 1e-9 {
				t.Errorf("launchVelocity() = (%v, %v), want (%v, %v)", vx, vy, tt.wantVX, tt.wantVY)
			}
		})
	}
}

func TestParticleUpdate(t *testing.T) {
	p := &Particle{X: 100, Y: 200, VX: 100, VY: -100, Width: 10, Height: 20, Rotation: 10, RotationSpeed: 90}
	c := &fakeContainer{}
	p.Attach(c)

	p.Update(0.5)

	// vy = (-100 + 600*0.5) * 0.99 = 198; vx = 100 * 0.99 = 99
	wantVX, wantVY := 99.0, 198.0
	if math.Abs(p.VX-wantVX) > 1e-9 || math.Abs(p.VY-wantVY) > 1e-9 {
		t.Errorf("velocity = (%v, %v), want (%v, %v)", p.VX, p.VY, wantVX, wantVY)
	}
	wantX, wantY := 100+99*0.5, 200+198*0.5
	if math.Abs(p.X-wantX) > 1e-9 || math.Abs(p.Y-wantY) > 1e-9 {
		t.Errorf("position = (%v, %v), want (%v, %v)", p.X, p.Y, wantX, wantY)
	}
	if math.Abs(p.Rotation-55) > 1e-9 {
		t.Errorf("Rotation = %v, want 55", p.Rotation)
	}

	a := c.actors[0]
	if math.Abs(a.x-(wantX-5)) > 1e-9 || math.Abs(a.y-(wantY-10)) > 1e-9 {
		t.Errorf("actor position = (%v, %v), want top-left (%v, %v)", a.x, a.y, wantX-5, wantY-10)
	}
	if a.rotation != p.Rotation {
		t.Errorf("actor rotation = %v, want %v", a.rotation, p.Rotation)
	}
}

func TestParticleAttach(t *testing.T) {
	p := &Particle{X: 50, Y: 60, Width: 10, Height: 20, Rotation: 30, Color: config.Palette[2]}
	c := &fakeContainer{}

	p.Attach(c)
	p.Attach(c)

	if len(c.actors) != 1 {
		t.Fatalf("Attach twice created %d actors, want 1", len(c.actors))
	}
	spec := c.actors[0].spec
	if spec.X != 45 || spec.Y != 50 {
		t.Errorf("spec top-left = (%v, %v), want (45, 50)", spec.X, spec.Y)
	}
	if spec.PivotX != 0.5 || spec.PivotY != 0.5 {
		t.Errorf("pivot = (%v, %v), want (0.5, 0.5)", spec.PivotX, spec.PivotY)
	}
	if spec.CornerRadius != config.ParticleCornerRadius {
		t.Errorf("CornerRadius = %v, want %v", spec.CornerRadius, config.ParticleCornerRadius)
	}
	if spec.Fill != config.Palette[2] || spec.Rotation != 30 {
		t.Errorf("spec = %+v", spec)
	}
}

func TestParticleSetOpacity(t *testing.T) {
	tests := []struct {
		opacity float64
		want    uint8
	}{
		{1.0, 255},
		{0.0, 0},
		{0.5, 127},
		{0.999, 254},
	}

	for _, tt := range tests {
		p := &Particle{}
		c := &fakeContainer{}
		p.Attach(c)
		p.SetOpacity(tt.opacity)
		if got := c.actors[0].opacity; got != tt.want {
			t.Errorf("SetOpacity(%v) -> %d, want %d", tt.opacity, got, tt.want)
		}
	}
}

func TestParticleDestroyIsIdempotent(t *testing.T) {
	p := &Particle{}
	c := &fakeContainer{}
	p.Attach(c)

	p.Destroy()
	p.Destroy()

	if got := c.actors[0].destroyed; got != 1 {
		t.Errorf("actor destroyed %d times, want 1", got)
	}
	if !p.Destroyed() {
		t.Error("Destroyed() = false after Destroy")
	}

	// 销毁后的操作不触及可视元素
	p.Update(0.016)
	p.SetOpacity(0.5)
	p.Attach(c)
	if len(c.actors) != 1 {
		t.Errorf("Attach after Destroy created a new actor")
	}
}
