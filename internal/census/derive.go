package census

// Ratio returns num[i]/den[i]*scale for every row. A zero or missing
// denominator yields ±Inf or NaN; nothing is guarded.
func Ratio(num, den []float64, scale float64) []float64 {
	out := make([]float64, len(num))
	for i := range num {
		out[i] = num[i] / den[i] * scale
	}
	return out
}

// Derive returns a copy of f with the four ratio columns computed from
// its own base counts:
//
//	Sex Ratio            = Female / Male * 1000
//	Literacy Rate        = Literate / Population * 100
//	Female Literacy Rate = Female_Literate / Female * 100
//	Male Literacy Rate   = Male_Literate / Male * 100
//
// A base column absent from f produces a NaN ratio column.
func Derive(f *Frame) *Frame {
	out := f.Clone()
	set := func(c Column, vals []float64) {
		out.num[c] = vals
		out.add(c)
	}

	male := f.FloatOrNaN(Male)
	female := f.FloatOrNaN(Female)

	set(SexRatio, Ratio(female, male, 1000))
	set(LiteracyRate, Ratio(f.FloatOrNaN(Literate), f.FloatOrNaN(Population), 100))
	set(FemaleLiteracyRate, Ratio(f.FloatOrNaN(FemaleLiterate), female, 100))
	set(MaleLiteracyRate, Ratio(f.FloatOrNaN(MaleLiterate), male, 100))
	return out
}
