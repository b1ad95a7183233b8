package rasterer

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/bearmaps/pkg/util"
	"github.com/spf13/viper"
)

// bounding box of the depth 0 tile of the berkeley tile set.
const (
	ROOT_ULLAT = 37.892195547244356
	ROOT_ULLON = -122.2998046875
	ROOT_LRLAT = 37.82280243352756
	ROOT_LRLON = -122.2119140625

	TILE_SIZE = 256 // pixels
	MAX_DEPTH = 7
)

var (
	ErrInvalidQueryBox = errors.New("invalid query box")
	ErrNoTileInQuery   = errors.New("query box does not intersect any tile")
)

// BoundingBox longitude is the x axis, latitude the y axis. upper left is north west.
type BoundingBox struct {
	UlLon float64
	UlLat float64
	LrLon float64
	LrLat float64
}

func NewBoundingBox(ulLon, ulLat, lrLon, lrLat float64) BoundingBox {
	return BoundingBox{UlLon: ulLon, UlLat: ulLat, LrLon: lrLon, LrLat: lrLat}
}

// Query the area the user looks at and the size in pixels of the viewport.
type Query struct {
	Box    BoundingBox
	Width  float64
	Height float64
}

// Raster the tiles to draw, row by row from the upper left tile, and the area they cover together.
type Raster struct {
	RenderGrid [][]string
	Box        BoundingBox
	Depth      int
}

/*
Rasterer. picks the grid of quadtree tiles that covers a query box.

the depth is the shallowest one whose longitudinal distance per pixel (LonDPP) is at most the query's LonDPP,
capped at maxDepth. every tile at that depth intersecting the query box is returned.
tile at depth d, column x, row y is named d<d>_x<x>_y<y>.png.
*/
type Rasterer struct {
	root     BoundingBox
	tileSize int
	maxDepth int
}

func NewRasterer(root BoundingBox, tileSize, maxDepth int) *Rasterer {
	return &Rasterer{
		root:     root,
		tileSize: tileSize,
		maxDepth: maxDepth,
	}
}

func NewBerkeleyRasterer() *Rasterer {
	return NewRasterer(NewBoundingBox(ROOT_ULLON, ROOT_ULLAT, ROOT_LRLON, ROOT_LRLAT), TILE_SIZE, MAX_DEPTH)
}

// NewRastererFromViper reads the root box and tile parameters from RASTER_* keys, defaulting to the berkeley tiles.
func NewRastererFromViper() *Rasterer {
	viper.SetDefault("RASTER_ROOT_ULLON", ROOT_ULLON)
	viper.SetDefault("RASTER_ROOT_ULLAT", ROOT_ULLAT)
	viper.SetDefault("RASTER_ROOT_LRLON", ROOT_LRLON)
	viper.SetDefault("RASTER_ROOT_LRLAT", ROOT_LRLAT)
	viper.SetDefault("RASTER_TILE_SIZE", TILE_SIZE)
	viper.SetDefault("RASTER_MAX_DEPTH", MAX_DEPTH)

	root := NewBoundingBox(viper.GetFloat64("RASTER_ROOT_ULLON"), viper.GetFloat64("RASTER_ROOT_ULLAT"),
		viper.GetFloat64("RASTER_ROOT_LRLON"), viper.GetFloat64("RASTER_ROOT_LRLAT"))
	return NewRasterer(root, viper.GetInt("RASTER_TILE_SIZE"), viper.GetInt("RASTER_MAX_DEPTH"))
}

func (rs *Rasterer) GetRoot() BoundingBox {
	return rs.root
}

func (rs *Rasterer) GetMapRaster(query Query) (*Raster, error) {
	if err := rs.validate(query); err != nil {
		return nil, err
	}

	depth := rs.findDepth(lonDPP(query.Box.LrLon, query.Box.UlLon, query.Width))
	startX, startY := rs.startTile(query.Box.UlLon, query.Box.UlLat, depth)
	endX, endY := rs.endTile(query.Box.LrLon, query.Box.LrLat, depth)

	ulLon, ulLat := rs.tileCorner(startX, startY, depth)
	lrLon, lrLat := rs.tileCorner(endX+1, endY+1, depth)

	return &Raster{
		RenderGrid: tileGrid(startX, startY, endX, endY, depth),
		Box:        NewBoundingBox(ulLon, ulLat, lrLon, lrLat),
		Depth:      depth,
	}, nil
}

func (rs *Rasterer) validate(query Query) error {
	box := query.Box
	for _, v := range []float64{box.UlLon, box.UlLat, box.LrLon, box.LrLat, query.Width, query.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return util.WrapErrorf(ErrInvalidQueryBox, util.ErrBadParamInput, "query contains a non finite value")
		}
	}
	if query.Width <= 0 || query.Height <= 0 {
		return util.WrapErrorf(ErrInvalidQueryBox, util.ErrBadParamInput, "viewport must be positive, got %vx%v",
			query.Width, query.Height)
	}
	if box.LrLon <= box.UlLon || box.UlLat <= box.LrLat {
		return util.WrapErrorf(ErrInvalidQueryBox, util.ErrBadParamInput, "upper left corner must be north west of lower right corner")
	}
	if box.LrLat >= rs.root.UlLat || box.UlLat <= rs.root.LrLat ||
		box.UlLon >= rs.root.LrLon || box.LrLon <= rs.root.UlLon {
		return util.WrapErrorf(ErrNoTileInQuery, util.ErrNotFound, "query box %s", box)
	}
	return nil
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%f,%f %f,%f]", b.UlLon, b.UlLat, b.LrLon, b.LrLat)
}

func lonDPP(lrLon, ulLon, width float64) float64 {
	return (lrLon - ulLon) / width
}

func (rs *Rasterer) findDepth(queryLonDPP float64) int {
	tileLonDPP := lonDPP(rs.root.LrLon, rs.root.UlLon, float64(rs.tileSize))
	depth := 0
	for queryLonDPP < tileLonDPP && depth < rs.maxDepth {
		tileLonDPP /= 2
		depth++
	}
	return depth
}

func (rs *Rasterer) tileExtent(depth int) (float64, float64) {
	n := math.Pow(2, float64(depth))
	return (rs.root.LrLon - rs.root.UlLon) / n, (rs.root.UlLat - rs.root.LrLat) / n
}

// startTile column & row of the tile containing the upper left corner of the query, clamped to the root.
func (rs *Rasterer) startTile(ulLon, ulLat float64, depth int) (int, int) {
	tileLon, tileLat := rs.tileExtent(depth)
	x, y := 0, 0
	if ulLon > rs.root.UlLon {
		x = int(math.Floor((ulLon - rs.root.UlLon) / tileLon))
	}
	if ulLat < rs.root.UlLat {
		y = int(math.Floor((rs.root.UlLat - ulLat) / tileLat))
	}
	return rs.clamp(x, depth), rs.clamp(y, depth)
}

func (rs *Rasterer) endTile(lrLon, lrLat float64, depth int) (int, int) {
	tileLon, tileLat := rs.tileExtent(depth)
	last := 1<<depth - 1
	x, y := last, last
	if lrLon < rs.root.LrLon {
		x = int(math.Floor((lrLon - rs.root.UlLon) / tileLon))
	}
	if lrLat > rs.root.LrLat {
		y = int(math.Floor((rs.root.UlLat - lrLat) / tileLat))
	}
	return rs.clamp(x, depth), rs.clamp(y, depth)
}

func (rs *Rasterer) clamp(i, depth int) int {
	if i < 0 {
		return 0
	}
	if last := 1<<depth - 1; i > last {
		return last
	}
	return i
}

// tileCorner upper left corner of tile (x, y). (x+1, y+1) gives the lower right corner of tile (x, y).
func (rs *Rasterer) tileCorner(x, y, depth int) (float64, float64) {
	tileLon, tileLat := rs.tileExtent(depth)
	return rs.root.UlLon + tileLon*float64(x), rs.root.UlLat - tileLat*float64(y)
}

func TileName(depth, x, y int) string {
	return fmt.Sprintf("d%d_x%d_y%d.png", depth, x, y)
}

func tileGrid(startX, startY, endX, endY, depth int) [][]string {
	grid := make([][]string, endY-startY+1)
	for row := range grid {
		grid[row] = make([]string, endX-startX+1)
		for col := range grid[row] {
			grid[row][col] = TileName(depth, startX+col, startY+row)
		}
	}
	return grid
}
