package refine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	p := DefaultParams()

	cases := []struct {
		name string
		m    Metrics
		want Family
	}{
		{"near square", Metrics{AspectRatio: 1.0, SlopeH: 1.0, SlopeW: 1.0}, FamilySmallSquare},
		{"square wins over slopes", Metrics{AspectRatio: 1.2, SlopeH: 1.5, SlopeW: 1.5}, FamilySmallSquare},
		{"elongated dip", Metrics{AspectRatio: 3.0, SlopeH: 1.0, SlopeW: 1.0, TailRatio: 0.1}, FamilyDipStandardTail},
		{"elongated dip heavy tail", Metrics{AspectRatio: 3.0, SlopeH: 1.0, SlopeW: 1.0, TailRatio: 0.3}, FamilyDipHeavyTail},
		{"dip by row slope", Metrics{AspectRatio: 2.0, SlopeH: 1.3, SlopeW: 1.0, TailRatio: 0.1}, FamilyDipStandardTail},
		{"dip by row slope heavy tail", Metrics{AspectRatio: 2.0, SlopeH: 1.3, SlopeW: 1.0, TailRatio: 0.3}, FamilyDipHeavyTail},
		{"wide soic", Metrics{AspectRatio: 2.0, SlopeH: 1.0, SlopeW: 1.2}, FamilySoicWide},
		{"standard soic", Metrics{AspectRatio: 2.0, SlopeH: 1.0, SlopeW: 1.0}, FamilySoicStandard},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Classify(c.m, p))
			// Pure function: a repeat call cannot differ.
			require.Equal(t, c.want, Classify(c.m, p))
		})
	}
}

func TestDefaultParamsCoverAllFamilies(t *testing.T) {
	p := DefaultParams()
	for _, f := range []Family{
		FamilySmallSquare,
		FamilyDipStandardTail,
		FamilyDipHeavyTail,
		FamilySoicStandard,
		FamilySoicWide,
	} {
		pair, ok := p.Thresholds[f]
		require.True(t, ok, "missing thresholds for %s", f)
		require.Greater(t, pair.Height, 0.0)
		require.Greater(t, pair.Width, 0.0)
		require.NotEqual(t, "Unknown", f.String())
	}
}
