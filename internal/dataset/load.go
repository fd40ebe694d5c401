// Package dataset loads the census source file into a derived frame.
package dataset

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/fetcher"
)

// Options configures how the source file is parsed.
type Options struct {
	Delimiter rune   // delimited text only; default ','
	Encoding  string // delimited text only; WHATWG label, default utf-8
	Sheet     string // workbook only; default first sheet
}

// Load reads the file at path, keeps the Required columns and appends the
// derived ratio columns. Files ending in .xlsx are read as workbooks, any
// other extension as delimited text.
func Load(ctx context.Context, path string, opts Options) (*census.Frame, error) {
	start := time.Now()

	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}

	var rowCh <-chan []string
	var errCh <-chan error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rowCh, errCh = fetcher.StreamXLSX(ctx, path, fetcher.XLSXOptions{SheetName: opts.Sheet})
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: open %s", path)
		}
		defer func() { _ = f.Close() }()
		rowCh, errCh = streamText(ctx, f, opts)
	}

	frame, err := collect(rowCh, errCh)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: load %s", path)
	}

	zap.L().Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", frame.Len()),
		zap.Int("columns", len(frame.Columns())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return frame, nil
}

// Read parses delimited text from r. It is Load without the file handling.
func Read(ctx context.Context, r io.Reader, opts Options) (*census.Frame, error) {
	frame, err := collect(streamText(ctx, r, opts))
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read")
	}
	return frame, nil
}

func streamText(ctx context.Context, r io.Reader, opts Options) (<-chan []string, <-chan error) {
	return fetcher.StreamCSV(ctx, r, fetcher.CSVOptions{
		Delimiter: opts.Delimiter,
		Encoding:  opts.Encoding,
		TrimSpace: true,
	})
}

// collect drains the row stream. The first row is the header. Cells are
// trimmed here so delimited text and workbooks agree on names.
func collect(rowCh <-chan []string, errCh <-chan error) (*census.Frame, error) {
	var (
		index map[census.Column]int
		recs  []census.Record
		err   error
	)

	for row := range rowCh {
		if err != nil {
			continue // keep draining so the producer can exit
		}
		if index == nil {
			index, err = headerIndex(row)
			continue
		}
		recs = append(recs, parseRecord(row, index))
	}
	for e := range errCh {
		if e != nil && err == nil {
			err = e
		}
	}
	if err != nil {
		return nil, err
	}
	if index == nil {
		return nil, eris.New("dataset: missing header row")
	}
	return census.Derive(census.FromRecords(recs)), nil
}

// parseRecord reads one data row. Missing or unparseable numbers are NaN.
func parseRecord(row []string, index map[census.Column]int) census.Record {
	cell := func(c census.Column) string {
		if i := index[c]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	num := func(c census.Column) float64 { return parseNumber(cell(c)) }

	return census.Record{
		State:                    cell(census.State),
		District:                 cell(census.District),
		Population:               num(census.Population),
		Male:                     num(census.Male),
		Female:                   num(census.Female),
		Literate:                 num(census.Literate),
		FemaleLiterate:           num(census.FemaleLiterate),
		MaleLiterate:             num(census.MaleLiterate),
		Latitude:                 num(census.Latitude),
		Longitude:                num(census.Longitude),
		TotalPowerParity:         num(census.TotalPowerParity),
		PowerParityAbove545000:   num(census.PowerParityAbove545000),
		PowerParity90000To150000: num(census.PowerParity90000To150000),
	}
}

func headerIndex(header []string) (map[census.Column]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	index := make(map[census.Column]int, len(census.Required))
	for _, c := range census.Required {
		i, ok := pos[string(c)]
		if !ok {
			return nil, eris.Errorf("dataset: required column %q not found", c)
		}
		index[c] = i
	}
	return index, nil
}

// parseNumber returns NaN for anything that is not a number.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
