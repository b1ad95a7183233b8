package geo

import "github.com/twpayne/go-polyline"

// PoylineFromCoords encodes coords with the google encoded polyline algorithm (precision 5).
func PoylineFromCoords(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

// CoordsFromPolyline decodes an encoded polyline back to coordinates.
func CoordsFromPolyline(line string) ([]Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(line))
	if err != nil {
		return nil, err
	}
	path := make([]Coordinate, len(coords))
	for i, c := range coords {
		path[i] = NewCoordinate(c[0], c[1])
	}
	return path, nil
}
