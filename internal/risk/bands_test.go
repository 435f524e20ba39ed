package risk

import (
	"testing"

	"github.com/pagesentry/pagesentry/internal/model"
)

func TestBandTable_CoversZeroToHundred(t *testing.T) {
	if len(bands) == 0 {
		t.Fatal("band table is empty")
	}
	if bands[0].Min != 0 {
		t.Errorf("first band starts at %v, want 0", bands[0].Min)
	}
	if bands[len(bands)-1].Max != 100 {
		t.Errorf("last band ends at %v, want 100", bands[len(bands)-1].Max)
	}

	// Contiguity at score resolution: scores carry two decimals, so each
	// band must start exactly 0.01 above the previous band's end.
	for i := 1; i < len(bands); i++ {
		prev, cur := bands[i-1], bands[i]
		if diff := cur.Min - prev.Max; diff < 0.009 || diff > 0.011 {
			t.Errorf("gap between band %d (max %v) and band %d (min %v)", i-1, prev.Max, i, cur.Min)
		}
	}

	// Every representable two-decimal score must land in exactly one band.
	for cents := 0; cents <= 10000; cents++ {
		score := float64(cents) / 100
		matches := 0
		for _, b := range bands {
			if score >= b.Min && score <= b.Max {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("score %.2f matched %d bands, want exactly 1", score, matches)
		}
	}
}

func TestBandFor_BoundaryLiterals(t *testing.T) {
	cases := []struct {
		score float64
		want  model.RiskLevel
	}{
		{70, model.RiskLow},
		{69.99, model.RiskMedium},
		{40, model.RiskMedium},
		{39.99, model.RiskHigh},
		{0, model.RiskHigh},
		{100, model.RiskLow},
	}

	for _, tc := range cases {
		band, ok := bandFor(tc.score)
		if !ok {
			t.Errorf("bandFor(%v): no band matched", tc.score)
			continue
		}
		if band.Level != tc.want {
			t.Errorf("bandFor(%v) = %s, want %s", tc.score, band.Level, tc.want)
		}
	}
}
