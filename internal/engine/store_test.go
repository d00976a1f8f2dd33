package engine_test

import (
	"testing"

	"school-api/internal/engine"
)

func TestTimeWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b engine.TimeWindow
		want bool
	}{
		{"identical", engine.TimeWindow{Start: 420, End: 540}, engine.TimeWindow{Start: 420, End: 540}, true},
		{"partial", engine.TimeWindow{Start: 420, End: 540}, engine.TimeWindow{Start: 480, End: 600}, true},
		{"contained", engine.TimeWindow{Start: 420, End: 600}, engine.TimeWindow{Start: 480, End: 540}, true},
		{"adjacent", engine.TimeWindow{Start: 420, End: 540}, engine.TimeWindow{Start: 540, End: 660}, false},
		{"disjoint", engine.TimeWindow{Start: 420, End: 540}, engine.TimeWindow{Start: 600, End: 660}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v overlaps %v = %t, want %t", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("%v overlaps %v = %t, want %t", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
