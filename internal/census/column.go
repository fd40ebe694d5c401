// Package census holds the column-oriented census frame and the ratio
// metrics derived from its population and literacy counts.
package census

import "strings"

// Column names a census column. Values match the source file header.
type Column string

// Source columns.
const (
	State                    Column = "State"
	District                 Column = "District"
	Population               Column = "Population"
	Male                     Column = "Male"
	Female                   Column = "Female"
	Literate                 Column = "Literate"
	FemaleLiterate           Column = "Female_Literate"
	MaleLiterate             Column = "Male_Literate"
	Latitude                 Column = "Latitude"
	Longitude                Column = "Longitude"
	TotalPowerParity         Column = "Total_Power_Parity"
	PowerParityAbove545000   Column = "Power_Parity_Above_Rs_545000"
	PowerParity90000To150000 Column = "Power_Parity_Rs_90000_150000"
)

// Derived ratio columns.
const (
	SexRatio           Column = "Sex Ratio"
	LiteracyRate       Column = "Literacy Rate"
	FemaleLiteracyRate Column = "Female Literacy Rate"
	MaleLiteracyRate   Column = "Male Literacy Rate"
)

// Required lists the source columns the loader keeps, in frame order.
var Required = []Column{
	State, District, Population, Male, Female,
	Literate, FemaleLiterate, MaleLiterate,
	Latitude, Longitude, TotalPowerParity,
	PowerParityAbove545000, PowerParity90000To150000,
}

// Counts are the additive columns summed by a state rollup.
var Counts = []Column{
	Population, Male, Female,
	Literate, FemaleLiterate, MaleLiterate,
	TotalPowerParity, PowerParityAbove545000, PowerParity90000To150000,
}

// Coordinates are averaged by a state rollup.
var Coordinates = []Column{Latitude, Longitude}

// Intermediates exist only to produce literacy ratios.
var Intermediates = []Column{Literate, FemaleLiterate, MaleLiterate}

// Ratios are the derived columns, in the order Derive appends them.
var Ratios = []Column{SexRatio, LiteracyRate, FemaleLiteracyRate, MaleLiteracyRate}

// Metrics are the columns a user may chart. Raw literacy counts are excluded.
var Metrics = []Column{
	Population, Male, Female,
	SexRatio, LiteracyRate, FemaleLiteracyRate, MaleLiteracyRate,
	TotalPowerParity, Latitude, Longitude,
	PowerParityAbove545000, PowerParity90000To150000,
}

// IsText reports whether the column holds names rather than numbers.
func (c Column) IsText() bool {
	return c == State || c == District
}

// ParseMetric resolves a selectable metric by name. Matching ignores case
// and treats underscores and spaces alike.
func ParseMetric(name string) (Column, bool) {
	want := normalize(name)
	for _, m := range Metrics {
		if normalize(string(m)) == want {
			return m, true
		}
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " "))
}
