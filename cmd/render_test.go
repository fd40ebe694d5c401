package main

import (
	"bytes"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/dashboard"
)

func renderValues(scopeName, chartName string) url.Values {
	return url.Values{
		"scope":     {scopeName},
		"chart":     {chartName},
		"primary":   {"Population"},
		"secondary": {"Sex Ratio"},
		"plot":      {"1"},
	}
}

func TestRenderPass_SVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPass(&buf, testFrame(), renderValues("Goa", "bar"), "svg", dashboard.Options{}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderPass_GeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPass(&buf, testFrame(), renderValues("Overall India", "mapbox"), "geojson", dashboard.Options{}))

	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 2)

	err := renderPass(&buf, testFrame(), renderValues("Goa", "pie"), "geojson", dashboard.Options{})
	assert.Error(t, err)
}

func TestRenderPass_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPass(&buf, testFrame(), renderValues("Goa", "mapbox"), "html", dashboard.Options{}))
	assert.Contains(t, buf.String(), "<!DOCTYPE html>")
	assert.Contains(t, buf.String(), "leaflet")
}

func TestRenderPass_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPass(&buf, testFrame(), renderValues("Goa", "pie"), "json", dashboard.Options{}))

	var pass struct {
		Phase  string `json:"phase"`
		Result struct {
			Figure struct {
				Title string `json:"title"`
			} `json:"figure"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &pass))
	assert.Equal(t, "rendered", pass.Phase)
	assert.Equal(t, "Population Distribution in Goa", pass.Result.Figure.Title)
}

func TestRenderPass_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPass(&buf, testFrame(), renderValues("Goa", "line"), "yaml", dashboard.Options{}))

	var pass map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &pass))
	assert.Equal(t, "rendered", pass["phase"])
	sel, ok := pass["selection"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Line Chart", sel["chart"])
}

func TestRenderPass_Errors(t *testing.T) {
	var buf bytes.Buffer
	f := testFrame()

	assert.Error(t, renderPass(&buf, f, renderValues("Atlantis", "bar"), "svg", dashboard.Options{}))
	assert.Error(t, renderPass(&buf, f, renderValues("Goa", "bar"), "png", dashboard.Options{}))
	assert.Error(t, renderPass(&buf, f, renderValues("Goa", "none"), "svg", dashboard.Options{}))

	noCoords := f.Drop(census.Latitude, census.Longitude)
	err := renderPass(&buf, noCoords, renderValues("Overall India", "mapbox"), "svg", dashboard.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Latitude and Longitude")
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"":              "svg",
		"chart.svg":     "svg",
		"india.geojson": "geojson",
		"india.html":    "html",
		"pass.json":     "json",
		"pass.yml":      "yaml",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatFromPath(in), in)
	}
}
