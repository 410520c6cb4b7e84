package refine

// Params holds the tuned constants of the refiner. All values are empirically
// fitted defaults; callers may override them but should not expect other
// values to be better characterized.
type Params struct {
	Pad       int // ROI padding around the initial rect, so pins are captured
	MinBodyPx int // Refined dimensions below this floor are degenerate

	// Family decision cutoffs
	SquareMaxAspect float64 // Below this aspect ratio: small/square
	DipMinAspect    float64 // Above this aspect ratio: DIP-like
	DipMinSlopeH    float64 // Row-profile slope marking DIP pin rows
	HeavyTailMin    float64 // Tail ratio separating heavy-tail DIPs
	WideMinSlopeW   float64 // Column-profile slope marking wide SOICs

	// Profile threshold ratios per family
	Thresholds map[Family]ThresholdPair
}

// DefaultParams returns the fitted defaults.
func DefaultParams() Params {
	return Params{
		Pad:       50,
		MinBodyPx: 10,

		SquareMaxAspect: 1.35,
		DipMinAspect:    2.7,
		DipMinSlopeH:    1.22,
		HeavyTailMin:    0.25,
		WideMinSlopeW:   1.10,

		Thresholds: map[Family]ThresholdPair{
			FamilySmallSquare:     {Height: 0.80, Width: 0.80},
			FamilyDipStandardTail: {Height: 0.959, Width: 0.70},
			FamilyDipHeavyTail:    {Height: 0.875, Width: 0.58},
			FamilySoicStandard:    {Height: 0.85, Width: 0.80},
			FamilySoicWide:        {Height: 0.92, Width: 0.50},
		},
	}
}
