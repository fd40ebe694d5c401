package render

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/census-dash/internal/chart"
)

// FeatureCollection converts the map points of fig into GeoJSON features.
// Each feature carries name, label, size and color properties.
func FeatureCollection(fig *chart.Figure) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	if fig == nil || fig.Kind != chart.Mapbox {
		return fc, nil
	}

	bounds := geom.NewBounds(geom.XY)
	for _, pt := range fig.Points {
		p, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{float64(pt.Lon), float64(pt.Lat)})
		if err != nil {
			return nil, eris.Wrapf(err, "render: point %q", pt.Label)
		}
		bounds.Extend(p)
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       pt.Label,
			Geometry: p,
			Properties: map[string]any{
				"name":  pt.Name,
				"label": pt.Label,
				"size":  pt.Size,
				"color": pt.Color,
			},
		})
	}
	if len(fc.Features) > 0 {
		fc.BBox = bounds
	}
	return fc, nil
}

// GeoJSON encodes the map points of fig as a FeatureCollection document.
// Figures of other kinds give an empty collection.
func GeoJSON(fig *chart.Figure) ([]byte, error) {
	fc, err := FeatureCollection(fig)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(fc)
	if err != nil {
		return nil, eris.Wrap(err, "render: encode geojson")
	}
	return b, nil
}
