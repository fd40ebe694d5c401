package chart

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Kind is the chart variant a user can pick.
type Kind int

// Chart kinds, in sidebar order. None is the "nothing selected" sentinel.
const (
	None Kind = iota
	Bar
	Line
	Pie
	Histogram
	Mapbox
)

var kindLabels = [...]string{
	None:      "Select Chart",
	Bar:       "Bar Chart",
	Line:      "Line Chart",
	Pie:       "Pie Chart",
	Histogram: "Histogram",
	Mapbox:    "Mapbox",
}

var kindSlugs = [...]string{
	None:      "none",
	Bar:       "bar",
	Line:      "line",
	Pie:       "pie",
	Histogram: "histogram",
	Mapbox:    "mapbox",
}

// Kinds returns every kind in sidebar order.
func Kinds() []Kind {
	return []Kind{None, Bar, Line, Pie, Histogram, Mapbox}
}

// String returns the sidebar label.
func (k Kind) String() string {
	if k < None || k > Mapbox {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindLabels[k]
}

// Slug returns the short lowercase name used in URLs and flags.
func (k Kind) Slug() string {
	if k < None || k > Mapbox {
		return ""
	}
	return kindSlugs[k]
}

// ParseKind accepts a sidebar label or a slug, ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds() {
		if strings.EqualFold(s, kindLabels[k]) || strings.EqualFold(s, kindSlugs[k]) {
			return k, nil
		}
	}
	return None, eris.Errorf("chart: unknown chart type %q", s)
}

// MarshalText encodes the kind as its sidebar label.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts a sidebar label or a slug.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
