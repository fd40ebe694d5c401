// Package export writes a working table to CSV, XLSX or a point shapefile.
package export

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/census-dash/internal/census"
)

// Format is an output file format.
type Format string

// Supported formats.
const (
	FormatCSV       Format = "csv"
	FormatXLSX      Format = "xlsx"
	FormatShapefile Format = "shp"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "shp", "shapefile":
		return FormatShapefile, nil
	}
	return "", eris.Errorf("export: unknown format %q", s)
}

// FormatFor infers the format from a file name.
func FormatFor(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// File writes f to path in the given format. Shapefiles also produce the
// .shx and .dbf companions next to path.
func File(path string, f *census.Frame, format Format) error {
	switch format {
	case FormatShapefile:
		return Shapefile(path, f)
	case FormatCSV, FormatXLSX:
	default:
		return eris.Errorf("export: unknown format %q", format)
	}

	out, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if format == FormatCSV {
		err = CSV(out, f)
	} else {
		err = XLSX(out, f, "data")
	}
	if cerr := out.Close(); err == nil && cerr != nil {
		err = eris.Wrapf(cerr, "export: close %s", path)
	}
	return err
}

// CSV writes a header row and one record per frame row. Missing values are
// empty and infinities are written as inf and -inf.
func CSV(w io.Writer, f *census.Frame) error {
	cols := f.Columns()
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	record := make([]string, len(cols))
	for row := range f.Len() {
		for i, c := range cols {
			record[i] = cell(f, c, row)
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "export: write csv row %d", row)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}
	return nil
}

// XLSX writes the frame to a single worksheet. Non-finite values are left
// blank.
func XLSX(w io.Writer, f *census.Frame, sheetName string) error {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	cols := f.Columns()
	header := sheet.AddRow()
	for _, c := range cols {
		header.AddCell().SetString(string(c))
	}
	for row := range f.Len() {
		r := sheet.AddRow()
		for _, c := range cols {
			xc := r.AddCell()
			if c.IsText() {
				xc.SetString(f.Text(c)[row])
				continue
			}
			if v := f.Float(c)[row]; census.Finite(v) {
				xc.SetFloat(v)
			}
		}
	}

	if err := wb.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

func cell(f *census.Frame, c census.Column, row int) string {
	if c.IsText() {
		return f.Text(c)[row]
	}
	v := f.Float(c)[row]
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
