package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumidera/panostat/cmd/panostat/commands"
)

// writeCorpus lays out a minimal corpus fixture.
func writeCorpus(t *testing.T, annotations map[string]string) string {
	t.Helper()

	root := t.TempDir()
	imgDir := filepath.Join(root, "images")
	annDir := filepath.Join(root, "annotations")

	require.NoError(t, os.MkdirAll(imgDir, 0o750))
	require.NoError(t, os.MkdirAll(annDir, 0o750))

	for id, body := range annotations {
		require.NoError(t, os.WriteFile(filepath.Join(imgDir, id+".png"), []byte("x"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(annDir, id+".json"), []byte(body), 0o600))
	}

	return root
}

// runStats executes the stats command against root with extra args,
// writing the report to a temp file, and returns the report bytes.
func runStats(t *testing.T, root string, extra ...string) []byte {
	t.Helper()

	outPath := filepath.Join(t.TempDir(), "report.out")

	cmd := commands.NewStatsCommand()
	cmd.SetArgs(append([]string{root, "--quiet", "--output", outPath}, extra...))

	require.NoError(t, cmd.Execute())

	data, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)

	return data
}

// TestStats_JSONReport verifies the machine-readable report end to end.
func TestStats_JSONReport(t *testing.T) {
	t.Parallel()

	root := writeCorpus(t, map[string]string{
		"p1": `[{"tooth_id":"11","conditions":{"caries":true}}]`,
		"p2": `[{"tooth_id":"11"},{"tooth_id":"12"}]`,
	})

	out := runStats(t, root, "--format", "json")

	var report struct {
		Root          string         `json:"root"`
		Images        int            `json:"images"`
		Boxes         int            `json:"boxes"`
		BoxesPerImage map[string]any `json:"boxes_per_image"`
		ToothIDs      map[string]int `json:"tooth_ids"`
		Conditions    map[string]int `json:"conditions"`
	}

	require.NoError(t, json.Unmarshal(out, &report))

	assert.Equal(t, 2, report.Images)
	assert.Equal(t, 3, report.Boxes)
	assert.Equal(t, map[string]int{"11": 2, "12": 1}, report.ToothIDs)
	assert.Equal(t, map[string]int{"caries": 1}, report.Conditions)
	assert.InDelta(t, 1.5, report.BoxesPerImage["mean"], 1e-9)
}

// TestStats_TextReport verifies the human-readable sections appear.
func TestStats_TextReport(t *testing.T) {
	t.Parallel()

	root := writeCorpus(t, map[string]string{
		"p1": `[{"tooth_id":"11","image_status":"good"}]`,
	})

	out := string(runStats(t, root, "--no-color", "--top", "5"))

	assert.Contains(t, out, "=== Corpus statistics ===")
	assert.Contains(t, out, "Images")
	assert.Contains(t, out, "--- Image-level status ---")
	assert.Contains(t, out, "--- Top 5 tooth IDs ---")
	assert.Contains(t, out, "--- Top 5 conditions ---")
	assert.Contains(t, out, "good")
}

// TestStats_InvalidFlagValues verifies flag overrides go through config
// validation.
func TestStats_InvalidFlagValues(t *testing.T) {
	t.Parallel()

	root := writeCorpus(t, map[string]string{"p1": `{}`})

	cmd := commands.NewStatsCommand()
	cmd.SetArgs([]string{root, "--quiet", "--top=-1"})
	require.Error(t, cmd.Execute())

	cmd = commands.NewStatsCommand()
	cmd.SetArgs([]string{root, "--quiet", "--format", "xml"})
	require.Error(t, cmd.Execute())
}

// TestStats_EmptyCorpusFails verifies the not-found precondition reaches
// the CLI as an error exit.
func TestStats_EmptyCorpusFails(t *testing.T) {
	t.Parallel()

	cmd := commands.NewStatsCommand()
	cmd.SetArgs([]string{t.TempDir(), "--quiet"})

	require.Error(t, cmd.Execute())
}

// TestStats_YAMLReport verifies the yaml format renders parseable output.
func TestStats_YAMLReport(t *testing.T) {
	t.Parallel()

	root := writeCorpus(t, map[string]string{"p1": `[{"image_status":"poor"}]`})

	out := string(runStats(t, root, "--format", "yaml"))

	assert.Contains(t, out, "images: 1")
	assert.Contains(t, out, "image_status:")
	assert.Contains(t, out, "poor: 1")
}
