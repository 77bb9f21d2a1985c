package random

import (
	"math"
	"testing"
)

func TestNewStreamDeterministic(t *testing.T) {
	a := NewStream("abc")
	b := NewStream("abc")

	for i := 0; i < 50; i++ {
		if x, y := a.IntRange(1, 100), b.IntRange(1, 100); x != y {
			t.Fatalf("IntRange mismatch at %d: %d != %d", i, x, y)
		}
		if x, y := a.Uniform(-5, 5), b.Uniform(-5, 5); x != y {
			t.Fatalf("Uniform mismatch at %d: %v != %v", i, x, y)
		}
		if x, y := a.Gaussian(100, 3), b.Gaussian(100, 3); x != y {
			t.Fatalf("Gaussian mismatch at %d: %v != %v", i, x, y)
		}
	}
}

func TestNewStreamDiffersBySeed(t *testing.T) {
	a := NewStream("abc")
	b := NewStream("abd")

	same := true
	for i := 0; i < 10; i++ {
		if a.IntRange(1, 1_000_000) != b.IntRange(1, 1_000_000) {
			same = false
		}
	}
	if same {
		t.Fatal("expected different sequences for different seeds")
	}
}

func TestIntRangeInclusive(t *testing.T) {
	s := NewStream(7)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		v := s.IntRange(1, 6)
		if v < 1 || v > 6 {
			t.Fatalf("IntRange(1, 6) = %d, out of range", v)
		}
		seen[v] = true
	}
	for v := 1; v <= 6; v++ {
		if !seen[v] {
			t.Fatalf("IntRange(1, 6) never produced %d", v)
		}
	}
}

func TestIntRangeDegenerate(t *testing.T) {
	s := NewStream(1)
	if got := s.IntRange(5, 5); got != 5 {
		t.Fatalf("IntRange(5, 5) = %d, want 5", got)
	}
	if got := s.IntRange(9, 3); got != 9 {
		t.Fatalf("IntRange(9, 3) = %d, want 9", got)
	}
	if s.Position() != 0 {
		t.Fatalf("degenerate ranges consumed %d draws, want 0", s.Position())
	}
}

func TestUniformBounds(t *testing.T) {
	s := NewStream("uniform")
	for i := 0; i < 2000; i++ {
		v := s.Uniform(-10, 10)
		if v < -10 || v >= 10 {
			t.Fatalf("Uniform(-10, 10) = %v, out of range", v)
		}
	}
}

func TestGaussianShape(t *testing.T) {
	s := NewStream("gauss")
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := s.Gaussian(50, 4)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	stddev := math.Sqrt(sumSq/n - mean*mean)
	if math.Abs(mean-50) > 0.2 {
		t.Fatalf("mean = %v, want about 50", mean)
	}
	if math.Abs(stddev-4) > 0.2 {
		t.Fatalf("stddev = %v, want about 4", stddev)
	}
}

func TestPositionCountsDraws(t *testing.T) {
	s := NewStream("pos")
	s.IntRange(1, 100)
	s.Uniform(0, 1)
	s.Gaussian(0, 1)
	if s.Position() != 3 {
		t.Fatalf("Position() = %d, want 3", s.Position())
	}
}
