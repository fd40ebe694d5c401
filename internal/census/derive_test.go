package census

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{State: "Kerala", District: "Kollam", Population: 2635375, Male: 1246968, Female: 1388407,
			Literate: 2216479, FemaleLiterate: 1144086, MaleLiterate: 1072393, Latitude: 8.89, Longitude: 76.61},
		{State: "Kerala", District: "Wayanad", Population: 817420, Male: 401684, Female: 415736,
			Literate: 648745, FemaleLiterate: 317591, MaleLiterate: 331154, Latitude: 11.68, Longitude: 76.13},
		{State: "Goa", District: "North Goa", Population: 818008, Male: 416677, Female: 401331,
			Literate: 669779, FemaleLiterate: 319134, MaleLiterate: 350645, Latitude: 15.5, Longitude: 73.9},
	}
}

func TestDerive_RatiosMatchFormulas(t *testing.T) {
	recs := sampleRecords()
	f := Derive(FromRecords(recs))

	for _, c := range Ratios {
		require.True(t, f.Has(c), "missing %s", c)
	}

	sex := f.Float(SexRatio)
	lit := f.Float(LiteracyRate)
	flit := f.Float(FemaleLiteracyRate)
	mlit := f.Float(MaleLiteracyRate)
	for i, r := range recs {
		assert.InDelta(t, r.Female/r.Male*1000, sex[i], 1e-9)
		assert.InDelta(t, r.Literate/r.Population*100, lit[i], 1e-9)
		assert.InDelta(t, r.FemaleLiterate/r.Female*100, flit[i], 1e-9)
		assert.InDelta(t, r.MaleLiterate/r.Male*100, mlit[i], 1e-9)
	}
}

func TestDerive_DoesNotModifyInput(t *testing.T) {
	base := FromRecords(sampleRecords())
	_ = Derive(base)
	assert.False(t, base.Has(SexRatio))
	assert.Len(t, base.Columns(), len(Required))
}

func TestDerive_ZeroDenominatorIsNonFinite(t *testing.T) {
	f := Derive(FromRecords([]Record{
		{State: "X", District: "Empty", Population: 0, Male: 0, Female: 10, Literate: 0},
		{State: "X", District: "Void", Population: 0, Male: 0, Female: 0},
	}))

	assert.True(t, math.IsInf(f.Float(SexRatio)[0], 1))
	assert.True(t, math.IsNaN(f.Float(LiteracyRate)[0]))
	assert.True(t, math.IsNaN(f.Float(SexRatio)[1]))
	assert.False(t, Finite(f.Float(MaleLiteracyRate)[1]))
}

func TestDerive_MissingBaseColumn(t *testing.T) {
	f := FromRecords(sampleRecords()).Drop(Literate)
	out := Derive(f)
	for _, v := range out.Float(LiteracyRate) {
		assert.True(t, math.IsNaN(v))
	}
	assert.InDelta(t, 1388407.0/1246968.0*1000, out.Float(SexRatio)[0], 1e-9)
}

func TestRatio(t *testing.T) {
	got := Ratio([]float64{1, 3, 0}, []float64{2, 0, 0}, 100)
	assert.InDelta(t, 50.0, got[0], 1e-12)
	assert.True(t, math.IsInf(got[1], 1))
	assert.True(t, math.IsNaN(got[2]))
}
