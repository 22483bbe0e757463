package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return &Catalog{
		Stratagems: map[CategoryKey][]Item{
			Defense: {
				{Name: "A/MG-43 Machine Gun Sentry", Category: "DEFENSE"},
				{Name: "A/ARC-3 Tesla Tower", Category: "DEFENSE", Warbond: "Democratic Detonation"},
			},
			Eagles: {
				{Name: "Eagle 500kg Bomb", Category: "EAGLES"},
			},
			Orbitals: {},
			Support: {
				{Name: "MLS-4X Commando", Category: "SUPPORT", Warbond: "Viper Commandos"},
			},
		},
		Equipment: map[Slot][]Item{
			SlotPrimary: {
				{Name: "AR-23 Liberator", Category: "primary"},
				{Name: "SG-8P Punisher Plasma", Category: "primary", Warbond: "Cutting Edge"},
			},
			SlotArmor: {
				{Name: "B-01 Tactical", Class: "Medium", Category: "armor"},
			},
		},
	}
}

func TestParseCategoryKey(t *testing.T) {
	key, err := ParseCategoryKey(" defense ")
	require.NoError(t, err)
	assert.Equal(t, Defense, key)

	key, err = ParseCategoryKey("Orbitals")
	require.NoError(t, err)
	assert.Equal(t, Orbitals, key)

	_, err = ParseCategoryKey("BACKPACKS")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoryKey_Param(t *testing.T) {
	assert.Equal(t, "eagles", Eagles.Param())
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in   string
		want Slot
	}{
		{"primary", SlotPrimary},
		{"GRENADES", SlotGrenade},
		{"side-mission", SlotSideMission},
		{"SIDE MISSIONS", SlotSideMission},
		{"Booster", SlotBooster},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSlot(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSlot("cape")
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestOwnership_Allows(t *testing.T) {
	untagged := Item{Name: "Liberator"}
	tagged := Item{Name: "Punisher Plasma", Warbond: "Cutting Edge"}

	var none Ownership
	assert.True(t, none.Allows(untagged))
	assert.True(t, none.Allows(tagged), "empty ownership places no restriction")

	owned := NewOwnership("Cutting Edge")
	assert.True(t, owned.Allows(untagged))
	assert.True(t, owned.Allows(tagged))

	other := NewOwnership("Polar Patriots")
	assert.True(t, other.Allows(untagged))
	assert.False(t, other.Allows(tagged))
}

func TestParseOwnership(t *testing.T) {
	o := ParseOwnership("Cutting Edge, Polar Patriots,,")
	assert.Len(t, o, 2)
	assert.Contains(t, o, "Cutting Edge")
	assert.Contains(t, o, "Polar Patriots")

	assert.Empty(t, ParseOwnership("  "))
}

func TestCatalog_OwnedDoesNotMutate(t *testing.T) {
	c := testCatalog()

	owned := c.Owned(NewOwnership("Cutting Edge"))

	assert.Len(t, owned.Category(Defense), 1)
	assert.Empty(t, owned.Category(Support))
	assert.Len(t, owned.Pool(SlotPrimary), 2)

	assert.Len(t, c.Category(Defense), 2, "source catalog keeps all items")
	assert.Len(t, c.Category(Support), 1)
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *Catalog
	assert.Nil(t, c.Category(Defense))
	assert.Nil(t, c.Pool(SlotArmor))
	assert.Zero(t, c.StratagemCount())
	assert.Empty(t, c.Warbonds())
	assert.NotNil(t, c.Owned(nil).Stratagems)
}

func TestCatalog_Summarize(t *testing.T) {
	s := testCatalog().Summarize()

	assert.Equal(t, 2, s.Stratagems[Defense])
	assert.Equal(t, 0, s.Stratagems[Orbitals])
	assert.Equal(t, 2, s.Equipment[SlotPrimary])
	assert.Equal(t, 0, s.Equipment[SlotBooster])
	assert.Equal(t, []string{"Cutting Edge", "Democratic Detonation", "Viper Commandos"}, s.Warbonds)
}

func TestCatalog_Search(t *testing.T) {
	c := testCatalog()

	results := c.Search("liberator", DefaultSearchOptions())
	require.NotEmpty(t, results)
	assert.Equal(t, "AR-23 Liberator", results[0].Item.Name)

	results = c.Search("Eagle 500kg Bomb", DefaultSearchOptions())
	require.NotEmpty(t, results)
	assert.Equal(t, 100, results[0].Score)

	results = c.Search("tesla towr", DefaultSearchOptions())
	require.NotEmpty(t, results)
	assert.Equal(t, "A/ARC-3 Tesla Tower", results[0].Item.Name)

	assert.Empty(t, c.Search("", DefaultSearchOptions()))
	assert.Empty(t, c.Search("zzzzzzzzzzzz", DefaultSearchOptions()))
}

func TestCatalog_SearchMaxResults(t *testing.T) {
	c := testCatalog()
	results := c.Search("a", SearchOptions{MaxResults: 2, MinScore: 0})
	assert.Len(t, results, 2)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 100, similarity("breaker", "breaker"))
	assert.Equal(t, 0, similarity("", "breaker"))
	assert.Greater(t, similarity("break", "breaker"), similarity("raker", "breaker"))
	assert.GreaterOrEqual(t, similarity("xyz", "a"), 0)
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, FoldName("EAGLE Airstrike"), FoldName("eagle airstrike "))
}
