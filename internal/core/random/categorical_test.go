package random

import "testing"

func TestCategoricalLookupBoundaries(t *testing.T) {
	table := MustCategorical(
		Bracket[string]{Upper: 70, Value: "low"},
		Bracket[string]{Upper: 90, Value: "mid"},
		Bracket[string]{Upper: 100, Value: "high"},
	)

	tests := []struct {
		roll int
		want string
	}{
		{roll: 1, want: "low"},
		{roll: 70, want: "low"},
		{roll: 71, want: "mid"},
		{roll: 90, want: "mid"},
		{roll: 91, want: "high"},
		{roll: 100, want: "high"},
	}
	for _, tt := range tests {
		if got := table.Lookup(tt.roll); got != tt.want {
			t.Errorf("Lookup(%d) = %q, want %q", tt.roll, got, tt.want)
		}
	}
}

func TestCategoricalSelectUsesPercentileRoll(t *testing.T) {
	table := MustCategorical(
		Bracket[int]{Upper: 50, Value: 1},
		Bracket[int]{Upper: 100, Value: 2},
	)
	s := NewStream("categorical")
	counts := map[int]int{}
	for i := 0; i < 10000; i++ {
		counts[table.Select(s)]++
	}
	if counts[1] < 4700 || counts[1] > 5300 {
		t.Fatalf("first bracket selected %d/10000 times, want about half", counts[1])
	}
	if s.Position() != 10000 {
		t.Fatalf("Position() = %d, want one draw per selection", s.Position())
	}
}

func TestMustCategoricalRejectsBadTables(t *testing.T) {
	tests := []struct {
		name     string
		brackets []Bracket[int]
	}{
		{name: "empty"},
		{name: "not increasing", brackets: []Bracket[int]{{Upper: 50}, {Upper: 50}, {Upper: 100}}},
		{name: "short", brackets: []Bracket[int]{{Upper: 50}, {Upper: 99}}},
		{name: "below minimum", brackets: []Bracket[int]{{Upper: 0}, {Upper: 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			MustCategorical(tt.brackets...)
		})
	}
}
