package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/census-dash/internal/census"
)

// DBF field names are limited to ten bytes.
var fieldNames = map[census.Column]string{
	census.State:                    "STATE",
	census.District:                 "DISTRICT",
	census.Population:               "POPULATION",
	census.Male:                     "MALE",
	census.Female:                   "FEMALE",
	census.Literate:                 "LITERATE",
	census.FemaleLiterate:           "FEM_LIT",
	census.MaleLiterate:             "MALE_LIT",
	census.Latitude:                 "LATITUDE",
	census.Longitude:                "LONGITUDE",
	census.TotalPowerParity:         "TOT_PP",
	census.PowerParityAbove545000:   "PP_GT545K",
	census.PowerParity90000To150000: "PP_90_150K",
	census.SexRatio:                 "SEX_RATIO",
	census.LiteracyRate:             "LIT_RATE",
	census.FemaleLiteracyRate:       "FEM_LITR",
	census.MaleLiteracyRate:         "MALE_LITR",
}

// FieldName returns the DBF attribute name used for c.
func FieldName(c census.Column) string {
	if n, ok := fieldNames[c]; ok {
		return n
	}
	n := string(c)
	if len(n) > 10 {
		n = n[:10]
	}
	return n
}

const (
	textWidth  = 64
	floatWidth = 24
	floatPrec  = 4
)

// Shapefile writes one point per row at (Longitude, Latitude) with every
// other column as an attribute. Rows without finite coordinates cannot be
// placed and are skipped; non-finite attribute values are left blank.
func Shapefile(path string, f *census.Frame) error {
	if !f.Has(census.Latitude) || !f.Has(census.Longitude) {
		return eris.New("export: shapefile needs Latitude and Longitude columns")
	}

	cols := f.Columns()
	fields := make([]shp.Field, len(cols))
	for i, c := range cols {
		if c.IsText() {
			fields[i] = shp.StringField(FieldName(c), textWidth)
		} else {
			fields[i] = shp.FloatField(FieldName(c), floatWidth, floatPrec)
		}
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	if err := w.SetFields(fields); err != nil {
		return eris.Wrap(err, "export: shapefile fields")
	}

	lat := f.Float(census.Latitude)
	lon := f.Float(census.Longitude)
	var skipped int
	for row := range f.Len() {
		if !census.Finite(lat[row]) || !census.Finite(lon[row]) {
			skipped++
			continue
		}
		n := int(w.Write(&shp.Point{X: lon[row], Y: lat[row]}))
		for i, c := range cols {
			var value any
			if c.IsText() {
				value = truncate(f.Text(c)[row], textWidth)
			} else if v := f.Float(c)[row]; census.Finite(v) {
				value = v
			} else {
				continue
			}
			if err := w.WriteAttribute(n, i, value); err != nil {
				return eris.Wrapf(err, "export: shapefile row %d field %s", row, FieldName(c))
			}
		}
	}

	if skipped > 0 {
		zap.L().Warn("export: rows without coordinates skipped",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
