// Package stage defines the production stage enumeration shared by the stage
// transition engine and the report queries. Keeping a single ranked type here
// guarantees both sides agree on stage ordering.
package stage

import (
	"encoding/json"

	"prodtrack/internal/pkg/errs"
)

// Stage is a named, ranked point in an item's production lifecycle.
// It implements a state machine over a fixed ordered set:
//
//	NEW → MANUFACTURING → QUALITY_CHECK → PACKAGING → IN_TRANSIT → DELIVERED
//
// Moving to a lower rank is a regression (rework indicator), not an error.
// Stage is a value object that validates membership and provides string
// representations for persistence and display.
type Stage int

const (
	// Unknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	Unknown Stage = iota

	// New is the initial stage of a freshly created item.
	New

	// Manufacturing indicates the item is on the production floor.
	Manufacturing

	// QualityCheck indicates the item is under inspection.
	QualityCheck

	// Packaging indicates the item passed inspection and is being packed.
	Packaging

	// InTransit indicates the item has left the facility.
	InTransit

	// Delivered is the terminal stage.
	Delivered
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		Unknown:       "UNKNOWN",
		New:           "NEW",
		Manufacturing: "MANUFACTURING",
		QualityCheck:  "QUALITY_CHECK",
		Packaging:     "PACKAGING",
		InTransit:     "IN_TRANSIT",
		Delivered:     "DELIVERED",
	}
}

func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Stage]string{
		New:           "NEW",
		Manufacturing: "MANUFACTURING",
		QualityCheck:  "QUALITY_CHECK",
		Packaging:     "PACKAGING",
		InTransit:     "IN_TRANSIT",
		Delivered:     "DELIVERED",
	}
}

// All returns the valid stages in ascending rank order.
func All() []Stage {
	return []Stage{New, Manufacturing, QualityCheck, Packaging, InTransit, Delivered}
}

// Terminal returns the final stage of the lifecycle.
func Terminal() Stage {
	return Delivered
}

// Parse resolves a stage name (for example "QUALITY_CHECK") to its Stage value.
// Returns InvalidStageError for names outside the known set.
func Parse(value string) (Stage, error) {
	for s, name := range getValidStageStrings() {
		if name == value {
			return s, nil
		}
	}
	return Unknown, errs.NewInvalidStageError(value)
}

// Validate checks that the Stage value is a member of the known set.
// Unknown (0) and out-of-range values fail with InvalidStageError.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewInvalidStageError(s.String())
	}
	return nil
}

// String returns the canonical upper-snake name of the stage.
// Implements fmt.Stringer and is safe on any Stage value.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Rank returns the stage's integer position in the lifecycle ordering.
// Higher rank means further along in production.
func (s Stage) Rank() int {
	return int(s)
}

// MarshalJSON encodes the stage as its canonical name.
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a canonical stage name.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Direction classifies a stage transition relative to the current stage.
type Direction int

const (
	// Unchanged means target and current stage have equal rank.
	Unchanged Direction = iota

	// Forward means the target stage is further along the lifecycle.
	Forward

	// Regression means the target stage is earlier in the lifecycle (rework).
	Regression
)

// String returns a lower-case label for the direction.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Regression:
		return "regression"
	default:
		return "unchanged"
	}
}

// DirectionTo classifies the move from s to target by comparing ranks.
func (s Stage) DirectionTo(target Stage) Direction {
	switch {
	case target.Rank() > s.Rank():
		return Forward
	case target.Rank() < s.Rank():
		return Regression
	default:
		return Unchanged
	}
}
