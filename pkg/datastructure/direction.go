package datastructure

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/lintang-b-s/bearmaps/pkg/util"
)

type TurnLabel uint8

const (
	START TurnLabel = iota
	STRAIGHT
	SLIGHT_LEFT
	SLIGHT_RIGHT
	TURN_LEFT
	TURN_RIGHT
	SHARP_LEFT
	SHARP_RIGHT
)

const (
	NUM_TURN_LABELS = 8
	UNKNOWN_ROAD    = "unknown road"
)

var ErrMalformedDirection = errors.New("malformed direction")

func (t TurnLabel) String() string {
	switch t {
	case START:
		return "Start"
	case STRAIGHT:
		return "Go straight"
	case SLIGHT_LEFT:
		return "Slight left"
	case SLIGHT_RIGHT:
		return "Slight right"
	case TURN_LEFT:
		return "Turn left"
	case TURN_RIGHT:
		return "Turn right"
	case SHARP_LEFT:
		return "Sharp left"
	case SHARP_RIGHT:
		return "Sharp right"
	default:
		return fmt.Sprintf("TurnLabel(%d)", uint8(t))
	}
}

// TurnType machine friendly name of the label, used in the http response.
func (t TurnLabel) TurnType() string {
	switch t {
	case START:
		return "START"
	case STRAIGHT:
		return "CONTINUE_ON_STREET"
	case SLIGHT_LEFT:
		return "TURN_SLIGHT_LEFT"
	case SLIGHT_RIGHT:
		return "TURN_SLIGHT_RIGHT"
	case TURN_LEFT:
		return "TURN_LEFT"
	case TURN_RIGHT:
		return "TURN_RIGHT"
	case SHARP_LEFT:
		return "TURN_SHARP_LEFT"
	case SHARP_RIGHT:
		return "TURN_SHARP_RIGHT"
	default:
		return "UNKNOWN"
	}
}

func (t TurnLabel) IsValid() bool {
	return t < NUM_TURN_LABELS
}

// ParseTurnLabel is the inverse of TurnLabel.String.
func ParseTurnLabel(s string) (TurnLabel, error) {
	for t := TurnLabel(0); t < NUM_TURN_LABELS; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, util.WrapErrorf(ErrMalformedDirection, util.ErrBadParamInput, "unknown turn label %q", s)
}

// Direction one instruction of a route: a turn, the road to take and how long to stay on it.
type Direction struct {
	turn     TurnLabel
	roadName string
	distance float64 // miles
}

func NewDirection(turn TurnLabel, roadName string, distance float64) Direction {
	return Direction{
		turn:     turn,
		roadName: roadName,
		distance: distance,
	}
}

func (d Direction) GetTurn() TurnLabel {
	return d.turn
}

func (d Direction) GetRoadName() string {
	return d.roadName
}

func (d Direction) GetDistance() float64 {
	return d.distance
}

// String. "<Label> on <RoadName> and continue for <Distance:.3f> miles."
func (d Direction) String() string {
	return fmt.Sprintf("%s on %s and continue for %.3f miles.", d.turn, d.roadName, d.distance)
}

var directionPattern = regexp.MustCompile(
	`^(Start|Go straight|Slight left|Slight right|Turn left|Turn right|Sharp left|Sharp right) on ([\w ]*) and continue for ([0-9]+(?:\.[0-9]+)?) miles\.$`)

// ParseDirection parses the textual form produced by Direction.String. anything that is not exactly that form is
// rejected with ErrMalformedDirection.
func ParseDirection(s string) (Direction, error) {
	m := directionPattern.FindStringSubmatch(s)
	if m == nil {
		return Direction{}, util.WrapErrorf(ErrMalformedDirection, util.ErrBadParamInput, "invalid direction %q", s)
	}

	turn, err := ParseTurnLabel(m[1])
	if err != nil {
		return Direction{}, err
	}

	dist, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Direction{}, util.WrapErrorf(ErrMalformedDirection, util.ErrBadParamInput, "invalid distance %q", m[3])
	}

	return NewDirection(turn, m[2], dist), nil
}
