package mandelbrot

import (
	"math"
	"testing"
)

func verified(t *testing.T, s Settings) Settings {
	t.Helper()
	if err := s.Verify(); err != nil {
		t.Fatalf("Verify() = %v", err)
	}
	return s
}

func TestPixelToComplex(t *testing.T) {
	m := NewMandelbrot(verified(t, Settings{Width: 720, Height: 400}))

	tests := []struct {
		i, j uint
		a, b float64
	}{
		{0, 0, -2.5, -1.5},
		{360, 200, -0.5, 0},
		{180, 100, -1.5, -0.75},
	}
	for _, tt := range tests {
		a, b := m.PixelToComplex(tt.i, tt.j)
		if a != tt.a || b != tt.b {
			t.Errorf("PixelToComplex(%d, %d) = (%g, %g), want (%g, %g)", tt.i, tt.j, a, b, tt.a, tt.b)
		}
	}
}

func TestEscapeTimeOriginNeverEscapes(t *testing.T) {
	for _, d := range []Divergence{Modulus, SumAbs, Taxicab} {
		m := NewMandelbrot(verified(t, Settings{Divergence: d, MaxIterations: 250}))
		if n := m.EscapeTime(0, 0); n != 250 {
			t.Errorf("%s: EscapeTime(0, 0) = %d, want 250", d, n)
		}
	}
}

func TestEscapeTimeFarOutside(t *testing.T) {
	m := NewMandelbrot(verified(t, Settings{}))
	if n := m.EscapeTime(10, 10); n > 1 {
		t.Errorf("EscapeTime(10, 10) = %d, want at most 1", n)
	}
}

func TestEscapeTimeWithinRange(t *testing.T) {
	s := verified(t, Settings{MaxIterations: 100})
	m := NewMandelbrot(s)

	points := [][2]uint{
		{0, 0}, {s.Width - 1, 0}, {0, s.Height - 1}, {s.Width - 1, s.Height - 1},
		{s.Width / 2, s.Height / 2},
	}
	for _, p := range points {
		if n := m.EscapeTimeAt(p[0], p[1]); n > s.MaxIterations {
			t.Errorf("EscapeTimeAt(%d, %d) = %d, above %d", p[0], p[1], n, s.MaxIterations)
		}
	}
	if n := m.EscapeTimeAt(s.Width/2, s.Height/2); n != s.MaxIterations {
		t.Errorf("center pixel escaped after %d iterations", n)
	}
}

func TestDivergencePolicies(t *testing.T) {
	tests := []struct {
		name       string
		divergence Divergence
		a, b       float64
		escaped    bool
	}{
		{"modulus inside", Modulus, 1.2, 1.2, false},
		{"modulus outside", Modulus, 1.5, 1.5, true},
		{"sum cancels", SumAbs, 3, -3, false},
		{"sum outside", SumAbs, 1.5, 1.5, true},
		{"taxicab inside", Taxicab, 1, 0.9, false},
		{"taxicab outside", Taxicab, 1.5, -0.6, true},
		{"nan", Modulus, math.NaN(), 0, true},
		{"inf", Taxicab, 0, math.Inf(-1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMandelbrot(verified(t, Settings{Divergence: tt.divergence, EscapeRadius: 2}))
			if got := m.escaped(tt.a, tt.b); got != tt.escaped {
				t.Errorf("escaped(%g, %g) = %t, want %t", tt.a, tt.b, got, tt.escaped)
			}
		})
	}
}

func TestNonFiniteOrbitEscapes(t *testing.T) {
	m := NewMandelbrot(verified(t, Settings{MaxIterations: 1000, EscapeRadius: 100}))
	if n := m.EscapeTime(1e200, 0); n != 0 {
		t.Errorf("EscapeTime(1e200, 0) = %d, want 0", n)
	}
	if n := m.EscapeTime(math.NaN(), 0); n != 0 {
		t.Errorf("EscapeTime(NaN, 0) = %d, want 0", n)
	}
}

func TestDoubleStepCountsPairs(t *testing.T) {
	single := NewMandelbrot(verified(t, Settings{MaxIterations: 100}))
	double := NewMandelbrot(verified(t, Settings{MaxIterations: 100, DoubleStep: true}))

	// c = 0.3 escapes slowly; with two updates per count it needs about half the counts
	n1 := single.EscapeTime(0.3, 0)
	n2 := double.EscapeTime(0.3, 0)
	if n1 == 100 || n2 == 100 {
		t.Fatalf("c = 0.3 should escape, got %d and %d", n1, n2)
	}
	if n2 != n1/2 {
		t.Errorf("double step count = %d, single step count = %d", n2, n1)
	}
}
