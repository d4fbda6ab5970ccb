package analyser

// Direction selects the spatial ordering applied to query results.
type Direction string

// Supported sort directions.
const (
	DirectionLeftRight  Direction = "left-right"
	DirectionRightLeft  Direction = "right-left"
	DirectionTopBottom  Direction = "top-bottom"
	DirectionBottomTop  Direction = "bottom-top"
	DirectionSmallLarge Direction = "small-large"
	DirectionLargeSmall Direction = "large-small"
)

// AgeClass selects the age band query results are filtered to.
type AgeClass string

// Supported age classes.
const (
	AgeChild  AgeClass = "child"
	AgeTeen   AgeClass = "teen"
	AgeAdult  AgeClass = "adult"
	AgeSenior AgeClass = "senior"
)

// GenderClass selects the gender query results are filtered to.
type GenderClass string

// Supported gender classes.
const (
	GenderMale   GenderClass = "male"
	GenderFemale GenderClass = "female"
)

// Config holds the analyser settings. Selectors left empty are not applied.
type Config struct {
	// ScoreThreshold is the minimum detector confidence.
	ScoreThreshold float32
	// TopK caps the number of detection candidates per frame.
	TopK int
	// DetectorConcurrency bounds simultaneous detector invocations.
	DetectorConcurrency int64
	// Direction, Age and Gender are applied to query results in that order.
	Direction Direction
	Age       AgeClass
	Gender    GenderClass
}

// DefaultConfig returns the analyser defaults.
func DefaultConfig() Config {
	return Config{
		ScoreThreshold:      0.5,
		TopK:                100,
		DetectorConcurrency: 1,
	}
}

// validate rejects unknown selector values up front so a bad configuration is
// reported once at construction instead of degrading every query.
func (c Config) validate() error {
	switch c.Direction {
	case "", DirectionLeftRight, DirectionRightLeft, DirectionTopBottom,
		DirectionBottomTop, DirectionSmallLarge, DirectionLargeSmall:
	default:
		return &SelectorError{Field: "direction", Value: string(c.Direction)}
	}
	switch c.Age {
	case "", AgeChild, AgeTeen, AgeAdult, AgeSenior:
	default:
		return &SelectorError{Field: "age", Value: string(c.Age)}
	}
	switch c.Gender {
	case "", GenderMale, GenderFemale:
	default:
		return &SelectorError{Field: "gender", Value: string(c.Gender)}
	}
	if c.DetectorConcurrency < 1 {
		return &SelectorError{Field: "detector concurrency", Value: "must be at least 1"}
	}
	return nil
}
