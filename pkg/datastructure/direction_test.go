package datastructure

import (
	"testing"

	"github.com/lintang-b-s/bearmaps/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionString(t *testing.T) {
	testCases := []struct {
		name string
		dir  Direction
		want string
	}{
		{
			name: "start",
			dir:  NewDirection(START, "Main Street", 0.1234),
			want: "Start on Main Street and continue for 0.123 miles.",
		},
		{
			name: "sharp right",
			dir:  NewDirection(SHARP_RIGHT, "Oak Street", 12),
			want: "Sharp right on Oak Street and continue for 12.000 miles.",
		},
		{
			name: "unknown road",
			dir:  NewDirection(STRAIGHT, UNKNOWN_ROAD, 0.0006),
			want: "Go straight on unknown road and continue for 0.001 miles.",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dir.String())
		})
	}
}

func TestParseDirectionRoundTrip(t *testing.T) {
	roadNames := []string{
		"Shattuck Avenue",
		"Route 24",
		"I 80",
		"College  Avenue",
		"Telegraph   Avenue 2",
		UNKNOWN_ROAD,
	}

	for label := TurnLabel(0); label < NUM_TURN_LABELS; label++ {
		for _, road := range roadNames {
			t.Run(label.String()+"/"+road, func(t *testing.T) {
				dir := NewDirection(label, road, 3.5)
				got, err := ParseDirection(dir.String())
				require.NoError(t, err)
				assert.Equal(t, dir, got)
				assert.Equal(t, dir.String(), got.String())
			})
		}
	}
}

func TestParseDirectionRejects(t *testing.T) {
	testCases := []struct {
		name string
		s    string
	}{
		{name: "empty", s: ""},
		{name: "unknown label", s: "U turn on Main Street and continue for 1.000 miles."},
		{name: "lowercase label", s: "turn left on Main Street and continue for 1.000 miles."},
		{name: "missing period", s: "Turn left on Main Street and continue for 1.000 miles"},
		{name: "negative distance", s: "Turn left on Main Street and continue for -1.000 miles."},
		{name: "missing distance", s: "Turn left on Main Street and continue for miles."},
		{name: "trailing garbage", s: "Turn left on Main Street and continue for 1.000 miles. now"},
		{name: "punctuation in road", s: "Turn left on Main St. and continue for 1.000 miles."},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDirection(tt.s)
			assert.ErrorIs(t, err, ErrMalformedDirection)
			assert.Equal(t, util.ErrBadParamInput, util.ErrorCode(err))
		})
	}
}

func TestTurnLabel(t *testing.T) {
	assert.True(t, SHARP_RIGHT.IsValid())
	assert.False(t, TurnLabel(NUM_TURN_LABELS).IsValid())
	assert.Equal(t, "TURN_LEFT", TURN_LEFT.TurnType())

	_, err := ParseTurnLabel("Left")
	assert.ErrorIs(t, err, ErrMalformedDirection)
}
