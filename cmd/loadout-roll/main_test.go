package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/export"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
)

func writeCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.json"),
		[]byte(`{"PRIMARY": [{"name": "AR-23 Liberator"}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stratagems.json"), []byte(`{
		"EAGLES": [{"name": "Eagle Airstrike"}, {"name": "Eagle 500KG Bomb"}],
		"SUPPORT": [{"name": "RS-422 Railgun"}, {"name": "TX-41 Sterilizer", "warbond": "Chemical Agents"}]
	}`), 0o644))
	return dir
}

func TestRun_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-catalog", writeCatalog(t), "-seed", "3"}, &out))

	assert.Contains(t, out.String(), "AR-23 Liberator")
	assert.Contains(t, out.String(), "Stratagems (4 of 4)")
}

func TestRun_JSONLoadout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-catalog", writeCatalog(t), "-format", "json", "-warbonds", "none"}, &out))

	var loadouts []randomizer.Loadout
	require.NoError(t, json.Unmarshal(out.Bytes(), &loadouts))
	require.Len(t, loadouts, 1)
	l := loadouts[0]
	require.NotNil(t, l.Primary)
	assert.Len(t, l.Stratagems, 3)
	for _, s := range l.Stratagems {
		assert.NotEqual(t, "TX-41 Sterilizer", s.Name)
	}
}

func TestRun_StratagemsOnly(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-catalog", writeCatalog(t), "-format", "json", "-stratagems", "-eagles", "only"}, &out))

	var picked []catalog.Item
	require.NoError(t, json.Unmarshal(out.Bytes(), &picked))
	assert.Len(t, picked, 2)
	for _, s := range picked {
		assert.Equal(t, string(catalog.Eagles), s.Category)
	}
}

func TestRun_Reroll(t *testing.T) {
	dir := writeCatalog(t)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-catalog", dir, "-format", "json", "-reroll", "-eagles", "only",
		"-exclude", "Eagle Airstrike"}, &out))
	var item catalog.Item
	require.NoError(t, json.Unmarshal(out.Bytes(), &item))
	assert.Equal(t, "Eagle 500KG Bomb", item.Name)

	err := run([]string{"-catalog", dir, "-reroll", "-eagles", "only",
		"-exclude", "Eagle Airstrike", "-exclude", "Eagle 500KG Bomb"}, &out)
	assert.ErrorIs(t, err, randomizer.ErrNoCandidates)
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer

	dir := writeCatalog(t)
	assert.Error(t, run([]string{"-catalog", dir, "-eagles", "sometimes"}, &out))
	assert.Error(t, run([]string{"-catalog", dir, "-format", "xml"}, &out))
	assert.Error(t, run([]string{"-catalog", dir, "-format", "csv", "-stratagems"}, &out))
	assert.Error(t, run([]string{"-catalog", dir, "-n", "0"}, &out))
	assert.ErrorIs(t, run([]string{"-catalog", t.TempDir()}, &out), catalog.ErrCatalogFileNotFound)
}

func TestRun_ShippedCatalog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-catalog", filepath.Join("..", "..", "data"), "-format", "json"}, &out))

	var loadouts []randomizer.Loadout
	require.NoError(t, json.Unmarshal(out.Bytes(), &loadouts))
	require.Len(t, loadouts, 1)
	assert.Len(t, loadouts[0].Stratagems, randomizer.DefaultStratagemCount)
	assert.NotNil(t, loadouts[0].SideMission)
}

func TestRun_CSVToFile(t *testing.T) {
	dir := writeCatalog(t)
	path := filepath.Join(t.TempDir(), "rolls.csv")

	var out bytes.Buffer
	require.NoError(t, run([]string{"-catalog", dir, "-format", "csv", "-n", "3", "-out", path}, &out))
	assert.Contains(t, out.String(), "Wrote 3 loadouts")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// header + 3 x (primary + 4 stratagems)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 16)

	assert.ErrorIs(t, run([]string{"-catalog", dir, "-format", "csv", "-out", path}, &out), export.ErrFileExists)
	assert.NoError(t, run([]string{"-catalog", dir, "-format", "csv", "-out", path, "-force"}, &out))
}
