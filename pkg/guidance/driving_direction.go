package guidance

import (
	"errors"

	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/util"
)

var ErrInvalidPath = errors.New("invalid path")

/*
DirectionBuilder. turns a path (vertex ids) into turn by turn directions.

the path is split into segments of consecutive edges that belong to the same road, the road of an edge is the name
of the way that connected its two vertices. every segment becomes one Direction:
  - the first segment is labeled Start.
  - a later segment is labeled from the change of heading at the vertex where the road changes: bearing of the edge
    entering that vertex vs bearing of the edge leaving it. this departs from labeling with the absolute bearing
    between the previous and next vertex, which cannot tell a left turn from a right one.
  - the edge where the road changes belongs to the new segment.
  - distance = sum of the great-circle length of the segment edges, in miles.
*/
type DirectionBuilder struct {
	graph Graph

	directions         []datastructure.Direction
	currentTurn        datastructure.TurnLabel
	currentRoad        string
	cumulativeDistance float64
	prevInitialBearing float64
}

func NewDirectionBuilder(graph Graph) *DirectionBuilder {
	return &DirectionBuilder{
		graph: graph,
	}
}

func (db *DirectionBuilder) reset() {
	db.directions = make([]datastructure.Direction, 0)
	db.currentTurn = datastructure.START
	db.currentRoad = ""
	db.cumulativeDistance = 0
	db.prevInitialBearing = 0
}

// GetDrivingDirections. returns ErrInvalidPath if the path is empty, references a vertex that is not in the graph or
// has two consecutive vertices that are not adjacent.
func (db *DirectionBuilder) GetDrivingDirections(path []datastructure.VertexID) ([]datastructure.Direction, error) {
	if err := db.validate(path); err != nil {
		return nil, err
	}
	db.reset()

	if len(path) == 1 {
		v, _ := db.graph.GetVertex(path[0])
		roadName := datastructure.UNKNOWN_ROAD
		if names := v.GetRoadNames(); len(names) > 0 {
			roadName = roadNameOrUnknown(names[0])
		}
		return []datastructure.Direction{datastructure.NewDirection(datastructure.START, roadName, 0)}, nil
	}

	for i := 1; i < len(path); i++ {
		if err := db.buildInstruction(path[i-1], path[i], i == 1); err != nil {
			return nil, err
		}
	}
	db.buildFinalInstruction()

	return db.directions, nil
}

func (db *DirectionBuilder) buildInstruction(prev, next datastructure.VertexID, first bool) error {
	dist, err := db.graph.DistanceBetween(prev, next)
	if err != nil {
		return err
	}
	initialBearing, err := db.graph.BearingBetween(prev, next)
	if err != nil {
		return err
	}
	roadName, err := db.graph.RoadNameBetween(prev, next)
	if err != nil {
		return err
	}
	roadName = roadNameOrUnknown(roadName)

	switch {
	case first:
		db.currentRoad = roadName
		db.cumulativeDistance = dist
	case roadName == db.currentRoad:
		db.cumulativeDistance += dist
	default:
		db.directions = append(db.directions,
			datastructure.NewDirection(db.currentTurn, db.currentRoad, db.cumulativeDistance))

		db.currentTurn = getTurnLabel(computeDeltaBearing(db.prevInitialBearing, initialBearing))
		db.currentRoad = roadName
		db.cumulativeDistance = dist
	}

	db.prevInitialBearing = initialBearing
	return nil
}

func (db *DirectionBuilder) buildFinalInstruction() {
	db.directions = append(db.directions,
		datastructure.NewDirection(db.currentTurn, db.currentRoad, db.cumulativeDistance))
}

func (db *DirectionBuilder) validate(path []datastructure.VertexID) error {
	if len(path) == 0 {
		return util.WrapErrorf(ErrInvalidPath, util.ErrBadParamInput, "empty path")
	}
	for i, id := range path {
		if _, err := db.graph.GetVertex(id); err != nil {
			return util.WrapErrorf(ErrInvalidPath, util.ErrBadParamInput, "vertex %d at position %d: %v", id, i, err)
		}
		if i > 0 && !db.graph.IsAdjacent(path[i-1], id) {
			return util.WrapErrorf(ErrInvalidPath, util.ErrBadParamInput, "vertex %d and %d are not adjacent",
				path[i-1], id)
		}
	}
	return nil
}

func roadNameOrUnknown(name string) string {
	if name == "" {
		return datastructure.UNKNOWN_ROAD
	}
	return name
}

// RouteDirections builds the directions of path. safe to call concurrently on the same graph.
func RouteDirections(graph Graph, path []datastructure.VertexID) ([]datastructure.Direction, error) {
	return NewDirectionBuilder(graph).GetDrivingDirections(path)
}
