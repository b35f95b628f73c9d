package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChart(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadChart(t *testing.T) {
	path := writeChart(t, `
name: Example Chart
points:
  - name: Natal Sun
    longitude: 125.5
    class: luminary
  - name: Ascendant
    longitude: 212.3
    class: angle
  - name: Natal Mars
    longitude: 45
`)

	name, points, err := LoadChart(path)
	require.NoError(t, err)
	assert.Equal(t, "Example Chart", name)
	require.Len(t, points, 3)

	assert.Equal(t, domain.ClassLuminary, points[0].Class)
	assert.Equal(t, domain.ClassAngle, points[1].Class)
	assert.Equal(t, domain.ClassStandard, points[2].Class, "class defaults to standard")
	assert.Equal(t, 45.0, points[2].Longitude)
}

func TestLoadChart_Errors(t *testing.T) {
	_, _, err := LoadChart(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, _, err = LoadChart(writeChart(t, "points: []\n"))
	assert.ErrorContains(t, err, "no points")

	_, _, err = LoadChart(writeChart(t, `
points:
  - name: Dup
    longitude: 1
  - name: Dup
    longitude: 2
`))
	assert.ErrorContains(t, err, "duplicate")

	_, _, err = LoadChart(writeChart(t, `
points:
  - name: Bad
    longitude: 1
    class: asteroid
`))
	assert.ErrorContains(t, err, "unknown point class")

	_, _, err = LoadChart(writeChart(t, "{not yaml"))
	assert.Error(t, err)
}
