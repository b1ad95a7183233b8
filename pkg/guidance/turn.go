package guidance

import (
	"math"

	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/geo"
)

const (
	STRAIGHT_MAX_DEGREE = 15.0
	SLIGHT_MAX_DEGREE   = 30.0
	TURN_MAX_DEGREE     = 100.0
)

/*
getTurnLabel. classify a signed change of heading (degree). negative = left, positive (and 0) = right.

	|delta| <= 15          go straight
	15 < |delta| <= 30     slight left/right
	30 < |delta| <= 100    turn left/right
	|delta| > 100          sharp left/right
*/
func getTurnLabel(delta float64) datastructure.TurnLabel {
	absDelta := math.Abs(delta)
	switch {
	case absDelta <= STRAIGHT_MAX_DEGREE:
		return datastructure.STRAIGHT
	case absDelta <= SLIGHT_MAX_DEGREE:
		if delta < 0 {
			return datastructure.SLIGHT_LEFT
		}
		return datastructure.SLIGHT_RIGHT
	case absDelta <= TURN_MAX_DEGREE:
		if delta < 0 {
			return datastructure.TURN_LEFT
		}
		return datastructure.TURN_RIGHT
	case delta < 0:
		return datastructure.SHARP_LEFT
	default:
		return datastructure.SHARP_RIGHT
	}
}

// computeDeltaBearing change of heading at the junction between the incoming edge (bearing prevInitialBearing) and
// the outgoing edge (bearing initialBearing).
func computeDeltaBearing(prevInitialBearing, initialBearing float64) float64 {
	return geo.DeltaBearing(prevInitialBearing, initialBearing)
}
