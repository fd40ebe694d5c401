package census

// Record is one district row of the source table.
type Record struct {
	State                    string
	District                 string
	Population               float64
	Male                     float64
	Female                   float64
	Literate                 float64
	FemaleLiterate           float64
	MaleLiterate             float64
	Latitude                 float64
	Longitude                float64
	TotalPowerParity         float64
	PowerParityAbove545000   float64
	PowerParity90000To150000 float64
}

func (r Record) value(c Column) float64 {
	switch c {
	case Population:
		return r.Population
	case Male:
		return r.Male
	case Female:
		return r.Female
	case Literate:
		return r.Literate
	case FemaleLiterate:
		return r.FemaleLiterate
	case MaleLiterate:
		return r.MaleLiterate
	case Latitude:
		return r.Latitude
	case Longitude:
		return r.Longitude
	case TotalPowerParity:
		return r.TotalPowerParity
	case PowerParityAbove545000:
		return r.PowerParityAbove545000
	case PowerParity90000To150000:
		return r.PowerParity90000To150000
	}
	return 0
}

// FromRecords builds a frame holding the Required columns.
func FromRecords(recs []Record) *Frame {
	f := NewFrame(len(recs))
	f.columns = append(f.columns, Required...)

	states := make([]string, len(recs))
	districts := make([]string, len(recs))
	for i, r := range recs {
		states[i] = r.State
		districts[i] = r.District
	}
	f.text[State] = states
	f.text[District] = districts

	for _, c := range Required {
		if c.IsText() {
			continue
		}
		vals := make([]float64, len(recs))
		for i, r := range recs {
			vals[i] = r.value(c)
		}
		f.num[c] = vals
	}
	return f
}
