package osmparser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/bearmaps/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="37.8700" lon="-122.2700" version="1">
    <tag k="name" v="Top Dog"/>
  </node>
  <node id="2" lat="37.8700" lon="-122.2690" version="1"/>
  <node id="3" lat="37.8700" lon="-122.2680" version="1"/>
  <node id="4" lat="37.8710" lon="-122.2680" version="1">
    <tag k="name" v="Peet's Coffee"/>
  </node>
  <node id="5" lat="37.8800" lon="-122.2600" version="1">
    <tag k="name" v="Lonely Bench"/>
  </node>
  <node id="6" lat="37.8750" lon="-122.2650" version="1"/>
  <way id="100" version="1">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="name" v="Durant Avenue"/>
  </way>
  <way id="101" version="1">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="tertiary"/>
  </way>
  <way id="102" version="1">
    <nd ref="4"/>
    <nd ref="6"/>
    <tag k="highway" v="footway"/>
    <tag k="name" v="Campus Path"/>
  </way>
</osm>`

func TestParseReader(t *testing.T) {
	p := NewOSMParser(zap.NewNop())
	data, err := p.ParseReader(context.Background(), strings.NewReader(testOSM), FORMAT_OSM_XML)
	require.NoError(t, err)

	ids := make([]datastructure.VertexID, len(data.Vertices))
	for i, v := range data.Vertices {
		ids[i] = v.ID
	}
	assert.Equal(t, []datastructure.VertexID{1, 2, 3, 4}, ids, "only nodes of accepted ways")
	assert.Equal(t, "Top Dog", data.Vertices[0].Name)
	assert.Equal(t, 37.87, data.Vertices[0].Lat)
	assert.Equal(t, -122.27, data.Vertices[0].Lon)

	require.Len(t, data.Ways, 2)
	assert.Equal(t, int64(100), data.Ways[0].ID)
	assert.Equal(t, "Durant Avenue", data.Ways[0].Name)
	assert.Equal(t, []datastructure.VertexID{1, 2, 3}, data.Ways[0].VertexIDs)
	assert.Equal(t, "", data.Ways[1].Name)

	require.Len(t, data.Locations, 3)
	assert.Equal(t, NewLocation(1, "Top Dog", 37.87, -122.27), data.Locations[0])
	assert.Equal(t, "Peet's Coffee", data.Locations[1].Name)
	assert.Equal(t, "Lonely Bench", data.Locations[2].Name)

	g := datastructure.NewGraph(data.Vertices, data.Ways, nil)
	assert.Equal(t, 4, g.NumberOfVertices())
	assert.True(t, g.IsAdjacent(3, 4))
	assert.False(t, g.HasVertex(6))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "map.osm")
	require.NoError(t, os.WriteFile(plain, []byte(testOSM), 0644))

	compressed := filepath.Join(dir, "map.osm.bz2")
	f, err := os.Create(compressed)
	require.NoError(t, err)
	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(testOSM))
	require.NoError(t, err)
	require.NoError(t, bz.Close())
	require.NoError(t, f.Close())

	for _, mapFile := range []string{plain, compressed} {
		t.Run(filepath.Base(mapFile), func(t *testing.T) {
			data, err := NewOSMParser(nil).Parse(context.Background(), mapFile)
			require.NoError(t, err)
			assert.Len(t, data.Vertices, 4)
			assert.Len(t, data.Ways, 2)
			assert.Len(t, data.Locations, 3)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		file           string
		wantFormat     MapFormat
		wantCompressed bool
		wantErr        bool
	}{
		{file: "berkeley.osm", wantFormat: FORMAT_OSM_XML},
		{file: "data/berkeley.OSM.BZ2", wantFormat: FORMAT_OSM_XML, wantCompressed: true},
		{file: "map.xml", wantFormat: FORMAT_OSM_XML},
		{file: "/tmp/solo_jogja.osm.pbf", wantFormat: FORMAT_OSM_PBF},
		{file: "map.pbf.bz2", wantFormat: FORMAT_OSM_PBF, wantCompressed: true},
		{file: "map.json", wantErr: true},
		{file: "map.bz2", wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.file, func(t *testing.T) {
			format, compressed, err := DetectFormat(tt.file)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantCompressed, compressed)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := NewOSMParser(nil).Parse(context.Background(), filepath.Join(t.TempDir(), "nope.osm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
