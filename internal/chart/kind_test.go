package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Select Chart", None},
		{"none", None},
		{"Bar Chart", Bar},
		{"bar", Bar},
		{"LINE", Line},
		{"pie chart", Pie},
		{" Histogram ", Histogram},
		{"mapbox", Mapbox},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseKind("scatter")
	assert.Error(t, err)
}

func TestKind_Strings(t *testing.T) {
	assert.Equal(t, "Bar Chart", Bar.String())
	assert.Equal(t, "histogram", Histogram.Slug())
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.Empty(t, Kind(-1).Slug())
}

func TestKind_Text(t *testing.T) {
	b, err := Pie.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Pie Chart", string(b))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("line")))
	assert.Equal(t, Line, k)
	assert.Error(t, k.UnmarshalText([]byte("donut")))
}
