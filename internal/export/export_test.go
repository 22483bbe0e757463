package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/helldivers-loadout/internal/catalog"
	"github.com/ramonehamilton/helldivers-loadout/internal/randomizer"
)

func sampleLoadouts() []*randomizer.Loadout {
	return []*randomizer.Loadout{{
		ID:      "roll-1",
		Primary: &catalog.Item{Name: "SG-8P Punisher Plasma", Warbond: "Cutting Edge"},
		Booster: &catalog.Item{Name: "Vitality Enhancement"},
		Stratagems: []catalog.Item{
			{Name: "Orbital Laser", Category: "ORBITALS"},
			{Name: "RS-422 Railgun", Category: "SUPPORT"},
		},
	}}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestRows(t *testing.T) {
	rows := Rows(sampleLoadouts())

	require.Len(t, rows, 4)
	assert.Equal(t, Row{LoadoutID: "roll-1", Kind: "primary", Name: "SG-8P Punisher Plasma", Warbond: "Cutting Edge"}, rows[0])
	assert.Equal(t, "booster", rows[1].Kind)
	assert.Equal(t, Row{LoadoutID: "roll-1", Kind: "stratagem", Position: 2, Name: "RS-422 Railgun", Category: "SUPPORT"}, rows[3])
}

func TestToWriter_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToWriter(&buf, FormatCSV, sampleLoadouts(), false))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"roll-1", "primary", "", "SG-8P Punisher Plasma", "", "Cutting Edge"}, records[1])
	assert.Equal(t, []string{"roll-1", "stratagem", "1", "Orbital Laser", "ORBITALS", ""}, records[3])
}

func TestToWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ToWriter(&buf, FormatJSON, sampleLoadouts(), true))

	var decoded []randomizer.Loadout
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "roll-1", decoded[0].ID)
	assert.Contains(t, buf.String(), "\n  ")
}

func TestToWriter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ToWriter(&buf, Format("xml"), sampleLoadouts(), false))
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rolls.csv")
	opts := Options{Format: FormatCSV, FilePath: path}

	require.NoError(t, ToFile(opts, sampleLoadouts()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Orbital Laser")

	assert.ErrorIs(t, ToFile(opts, sampleLoadouts()), ErrFileExists)

	opts.Overwrite = true
	assert.NoError(t, ToFile(opts, sampleLoadouts()))

	assert.Error(t, ToFile(Options{Format: FormatCSV}, sampleLoadouts()))
}
