package osmparser

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/lintang-b-s/bearmaps/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported map file format")

type osmScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type osmWay struct {
	id    int64
	name  string
	nodes []int64
}

type OsmParser struct {
	logger *zap.Logger

	nodes      map[int64]datastructure.VertexRecord
	ways       []osmWay
	wayNodeSet map[int64]struct{}
	locations  []Location
}

func NewOSMParser(logger *zap.Logger) *OsmParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OsmParser{
		logger: logger,
	}
}

func (p *OsmParser) reset() {
	p.nodes = make(map[int64]datastructure.VertexRecord)
	p.ways = make([]osmWay, 0)
	p.wayNodeSet = make(map[int64]struct{})
	p.locations = make([]Location, 0)
}

// DetectFormat picks the map format and compression from the file name: .osm/.xml, .pbf, optionally followed by .bz2
func DetectFormat(mapFile string) (MapFormat, bool, error) {
	name := strings.ToLower(filepath.Base(mapFile))
	compressed := false
	if strings.HasSuffix(name, ".bz2") {
		compressed = true
		name = strings.TrimSuffix(name, ".bz2")
	}

	switch filepath.Ext(name) {
	case ".osm", ".xml":
		return FORMAT_OSM_XML, compressed, nil
	case ".pbf":
		return FORMAT_OSM_PBF, compressed, nil
	default:
		return 0, false, util.WrapErrorf(ErrUnsupportedFormat, util.ErrBadParamInput, "map file %s", mapFile)
	}
}

// Parse reads an openstreetmap file (.osm, .xml, .pbf, each optionally bzip2 compressed).
func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*MapData, error) {
	format, compressed, err := DetectFormat(mapFile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	p.logger.Info("parsing openstreetmap file", zap.String("file", mapFile), zap.String("format", format.String()),
		zap.Bool("bzip2", compressed))
	return p.ParseReader(ctx, r, format)
}

/*
ParseReader. single pass over the osm objects:
  - every node is kept as a candidate vertex, a node with a name tag is also a Location.
  - a way whose highway tag is an accepted road type becomes a WayRecord named after its name tag.

only the nodes referenced by an accepted way are returned as vertices, the other ones would be pruned by the graph
anyway.
*/
func (p *OsmParser) ParseReader(ctx context.Context, r io.Reader, format MapFormat) (*MapData, error) {
	p.reset()

	var scanner osmScanner
	switch format {
	case FORMAT_OSM_XML:
		scanner = osmxml.New(ctx, r)
	case FORMAT_OSM_PBF:
		pbf := osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
		pbf.SkipRelations = true
		scanner = pbf
	default:
		return nil, util.WrapErrorf(ErrUnsupportedFormat, util.ErrBadParamInput, "format %d", format)
	}
	defer scanner.Close()

	countWays := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			p.processNode(o)
		case *osm.Way:
			if p.processWay(o) {
				countWays++
				if countWays%50000 == 0 {
					p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return p.buildMapData(), nil
}

func (p *OsmParser) processNode(node *osm.Node) {
	id := int64(node.ID)
	name := node.Tags.Find("name")
	p.nodes[id] = datastructure.NewVertexRecord(datastructure.VertexID(id), node.Lat, node.Lon, name)
	if name != "" {
		p.locations = append(p.locations, NewLocation(id, name, node.Lat, node.Lon))
	}
}

func (p *OsmParser) processWay(way *osm.Way) bool {
	if !acceptOsmWay(way) {
		return false
	}

	nodes := make([]int64, len(way.Nodes))
	for i, n := range way.Nodes {
		nodes[i] = int64(n.ID)
		p.wayNodeSet[int64(n.ID)] = struct{}{}
	}
	p.ways = append(p.ways, osmWay{
		id:    int64(way.ID),
		name:  way.Tags.Find("name"),
		nodes: nodes,
	})
	return true
}

func (p *OsmParser) buildMapData() *MapData {
	data := &MapData{
		Vertices:  make([]datastructure.VertexRecord, 0, len(p.wayNodeSet)),
		Ways:      make([]datastructure.WayRecord, 0, len(p.ways)),
		Locations: p.locations,
	}

	missing := 0
	for id := range p.wayNodeSet {
		rec, ok := p.nodes[id]
		if !ok {
			missing++
			continue
		}
		data.Vertices = append(data.Vertices, rec)
	}
	sort.Slice(data.Vertices, func(i, j int) bool {
		return data.Vertices[i].ID < data.Vertices[j].ID
	})

	for _, w := range p.ways {
		ids := make([]datastructure.VertexID, len(w.nodes))
		for i, n := range w.nodes {
			ids[i] = datastructure.VertexID(n)
		}
		data.Ways = append(data.Ways, datastructure.NewWayRecord(w.id, w.name, ids))
	}

	p.logger.Info("openstreetmap file parsed",
		zap.Int("nodes", len(p.nodes)),
		zap.Int("vertices", len(data.Vertices)),
		zap.Int("ways", len(data.Ways)),
		zap.Int("locations", len(data.Locations)),
		zap.Int("missingWayNodes", missing))
	return data
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	_, ok := acceptedHighway[highway]
	return ok
}
