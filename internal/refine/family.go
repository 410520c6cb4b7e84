// Package refine removes pin contamination from an initial body rectangle
// using projection-profile analysis with package-family heuristics.
package refine

// Family identifies the pin-geometry strategy applied to a package.
type Family int

const (
	// FamilySmallSquare covers compact near-square packages with little
	// directional pin bias.
	FamilySmallSquare Family = iota
	// FamilyDipStandardTail covers elongated DIP packages whose pin rows
	// fall off sharply in the projection profile.
	FamilyDipStandardTail
	// FamilyDipHeavyTail covers DIP packages with a long gradual pin-density
	// tail that a strict threshold would misread as body.
	FamilyDipHeavyTail
	// FamilySoicStandard covers SOIC/QFP-style packages with moderate leads.
	FamilySoicStandard
	// FamilySoicWide covers SOIC variants whose leads widen the column
	// profile well past the body.
	FamilySoicWide
)

func (f Family) String() string {
	switch f {
	case FamilySmallSquare:
		return "SmallSquare"
	case FamilyDipStandardTail:
		return "DipStandardTail"
	case FamilyDipHeavyTail:
		return "DipHeavyTail"
	case FamilySoicStandard:
		return "SoicStandard"
	case FamilySoicWide:
		return "SoicWide"
	default:
		return "Unknown"
	}
}

// Metrics are the scalar heuristics the family decision is made from.
// AspectRatio is width/height at the 90% profile level. The slopes compare
// the body extent at 50% vs 90% of the profile peak: near 1 means a sharp
// edge, above 1 means a gradual pin tail. TailRatio is the fraction of the
// body height occupied by intermediate profile values.
type Metrics struct {
	AspectRatio float64
	SlopeH      float64
	SlopeW      float64
	TailRatio   float64
}

// ThresholdPair holds the profile threshold ratios applied to the row
// (Height) and column (Width) profiles for one family.
type ThresholdPair struct {
	Height float64
	Width  float64
}

// Classify selects the package family from the measured metrics. It is a
// pure function: the same metrics always yield the same family.
func Classify(m Metrics, p Params) Family {
	if m.AspectRatio < p.SquareMaxAspect {
		return FamilySmallSquare
	}
	if m.AspectRatio > p.DipMinAspect || m.SlopeH > p.DipMinSlopeH {
		if m.TailRatio > p.HeavyTailMin {
			return FamilyDipHeavyTail
		}
		return FamilyDipStandardTail
	}
	if m.SlopeW > p.WideMinSlopeW {
		return FamilySoicWide
	}
	return FamilySoicStandard
}
