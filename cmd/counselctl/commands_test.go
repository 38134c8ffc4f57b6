package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const profileYAML = `name: Asha
major: Computer Science
gpa: "3.9/4.0"
preferredCountries: [Canada]
budgetRange: "$30,000 - $50,000"
ieltsScore: "8.0"
greScore: "325"
sopStatus: Final
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze(t *testing.T) {
	out, err := run(t, "analyze", "-f", writeFile(t, "p.yaml", profileYAML))
	require.NoError(t, err)

	var got struct {
		Analysis struct {
			OverallScore int `json:"overallScore"`
		} `json:"analysis"`
		ProfileStrength int `json:"profileStrength"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 80, got.Analysis.OverallScore)
	assert.Equal(t, 8, got.ProfileStrength)
}

func TestAnalyze_JSONProfile(t *testing.T) {
	path := writeFile(t, "p.json", `{"name":"Asha","gpa":"3.9/4.0","ieltsScore":"8.0","greScore":"325"}`)
	_, err := run(t, "analyze", "--file", path)
	require.NoError(t, err)
}

func TestAnalyze_RequiresFile(t *testing.T) {
	_, err := run(t, "analyze")
	assert.EqualError(t, err, "--file is required")
}

func TestRecommend_YAMLOutput(t *testing.T) {
	out, err := run(t, "recommend", "-f", writeFile(t, "p.yaml", profileYAML), "-o", "yaml")
	require.NoError(t, err)

	var got map[string][]map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got["safe"], 1)
	assert.Equal(t, "York University", got["safe"][0]["name"])
}

func TestExplain(t *testing.T) {
	profile := writeFile(t, "p.yaml", profileYAML)

	out, err := run(t, "explain", "-f", profile, "--university", "3")
	require.NoError(t, err)
	assert.Contains(t, out, `"affordable": true`)
	assert.Contains(t, out, `"profileCategory": "Safe"`)

	_, err = run(t, "explain", "-f", profile, "--university", "42")
	assert.ErrorContains(t, err, "UNIVERSITY_NOT_FOUND")
}

func TestCategorize_CustomCatalog(t *testing.T) {
	catalogFile := writeFile(t, "catalog.yaml", `- id: "x1"
  name: Test Institute
  country: Canada
  acceptanceChance: High
  tuitionFee: "$10,000"
- id: "x2"
  name: Hard University
  country: Canada
  acceptanceChance: Low
  tuitionFee: "$10,000"
`)
	out, err := run(t, "categorize", "-f", writeFile(t, "p.yaml", profileYAML), "--catalog", catalogFile)
	require.NoError(t, err)

	var got []categorized
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.EqualValues(t, "Safe", got[0].Category)
	assert.EqualValues(t, "Dream", got[1].Category)
}

func TestFilter(t *testing.T) {
	out, err := run(t, "filter", "--countries", "Australia")
	require.NoError(t, err)
	assert.Contains(t, out, "University of Melbourne")
	assert.NotContains(t, out, "York University")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "filter", "-o", "xml")
	assert.EqualError(t, err, `unknown output format "xml"`)
}

func TestActivities(t *testing.T) {
	out, err := run(t, "activities", "send-notification", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "NOTIFICATION_SEND_FAILED")

	_, err = run(t, "activities", "book-flight")
	assert.EqualError(t, err, `unknown task type "book-flight"`)
}
