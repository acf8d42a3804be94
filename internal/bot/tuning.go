package bot

// Tuning holds the thresholds used by StandardBot.
type Tuning struct {
	// OpeningPoints is the high card point count needed to open the auction.
	OpeningPoints int
	// OpeningLevel is the level of the opening call.
	OpeningLevel int
}

// DefaultTuning opens at the one level with an average opening hand.
var DefaultTuning = Tuning{
	OpeningPoints: 12,
	OpeningLevel:  1,
}
