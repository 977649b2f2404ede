package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewSARIFReporter(&buf, "", "1.2.3", "")
	require.NoError(t, r.Report(sampleViolations(), nil, ReportMetadata{Files: []string{"Dockerfile", "clean/Dockerfile"}}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc), buf.String())
	assert.Equal(t, "2.1.0", doc["version"])
	assert.NotNil(t, doc["$schema"])

	runs := doc["runs"].([]any)
	require.Len(t, runs, 1)
	run := runs[0].(map[string]any)

	driver := run["tool"].(map[string]any)["driver"].(map[string]any)
	assert.Equal(t, "docklint", driver["name"])
	assert.Equal(t, "1.2.3", driver["version"])
	assert.Equal(t, "https://github.com/wharflab/docklint", driver["informationUri"])

	ruleDefs := driver["rules"].([]any)
	require.Len(t, ruleDefs, 4)
	firstRule := ruleDefs[0].(map[string]any)
	assert.Equal(t, "docklint/bad-parameters", firstRule["id"], "rules are sorted by code")
	assert.Equal(t, "Bad parameters", firstRule["name"])

	artifacts := run["artifacts"].([]any)
	assert.Len(t, artifacts, 2, "clean files are listed as artifacts")

	results := run["results"].([]any)
	require.Len(t, results, 4)

	first := results[0].(map[string]any)
	assert.Equal(t, "docklint/missing-from", first["ruleId"])
	assert.Equal(t, "error", first["level"])
	region := physicalLocation(t, first)["region"].(map[string]any)
	assert.InDelta(t, 1, region["startLine"], 0)

	span := physicalLocation(t, results[1].(map[string]any))["region"].(map[string]any)
	assert.InDelta(t, 3, span["startLine"], 0)
	assert.InDelta(t, 4, span["endLine"], 0)

	withDetail := results[2].(map[string]any)["message"].(map[string]any)
	assert.Equal(t, `Invalid instruction: did you mean "WORKDIR"?`, withDetail["text"])

	missingCmd := results[3].(map[string]any)
	assert.Equal(t, "warning", missingCmd["level"])
	assert.NotContains(t, physicalLocation(t, missingCmd), "region")
}

func physicalLocation(t *testing.T, result map[string]any) map[string]any {
	t.Helper()
	locations := result["locations"].([]any)
	require.Len(t, locations, 1)
	return locations[0].(map[string]any)["physicalLocation"].(map[string]any)
}
