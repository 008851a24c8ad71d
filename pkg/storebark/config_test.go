package storebark

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	defaults := DefaultCategories()

	require.Len(t, defaults, 4)
	assert.True(t, defaults[CategoryRevenue].Enabled)
	assert.False(t, defaults[CategoryRefund].Enabled)
	assert.False(t, defaults[CategoryRisk].Enabled)
	assert.False(t, defaults[CategoryStatus].Enabled)
	assert.Equal(t, "calypso", defaults[CategoryRevenue].Sound)
	assert.Equal(t, "Revenue", defaults[CategoryRevenue].Group)

	// Callers own the returned map; mutating it must not leak.
	defaults[CategoryRevenue] = CategoryConfig{}
	assert.True(t, DefaultCategories()[CategoryRevenue].Enabled)
}

func TestResolveCategories(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("no overrides keeps defaults", func(t *testing.T) {
		resolved := ResolveCategories(logger, "", nil, "", nil)
		assert.Equal(t, DefaultCategories(), resolved)
	})

	t.Run("global layer overrides fields, missing fields inherit", func(t *testing.T) {
		blob := `{"REFUND":{"enabled":true,"sound":"bell"},"RISK":{"icon":"https://x/risk.png"}}`
		resolved := ResolveCategories(logger, blob, nil, "", nil)

		assert.True(t, resolved[CategoryRefund].Enabled)
		assert.Equal(t, "bell", resolved[CategoryRefund].Sound)
		assert.Equal(t, "Refund", resolved[CategoryRefund].Group) // inherited
		assert.Equal(t, "https://x/risk.png", resolved[CategoryRisk].Icon)
		assert.Equal(t, "chord", resolved[CategoryRisk].Sound) // inherited
	})

	t.Run("malformed global blob skips the layer only", func(t *testing.T) {
		resolved := ResolveCategories(logger, "{not json", nil, "", nil)
		assert.Equal(t, DefaultCategories(), resolved)
	})

	t.Run("unknown categories never appear", func(t *testing.T) {
		resolved := ResolveCategories(logger, `{"BOGUS":{"enabled":true}}`, nil, "", nil)
		require.Len(t, resolved, 4)
		_, ok := resolved["BOGUS"]
		assert.False(t, ok)
	})

	t.Run("app layer wins over global layer", func(t *testing.T) {
		enabled := true
		disabled := false
		appOverride := map[Category]CategoryOverride{
			CategoryRevenue: {Enabled: &disabled},
			CategoryRisk:    {Enabled: &enabled},
		}
		resolved := ResolveCategories(logger, `{"REVENUE":{"enabled":true}}`, appOverride, "", nil)

		assert.False(t, resolved[CategoryRevenue].Enabled)
		assert.True(t, resolved[CategoryRisk].Enabled)
	})

	t.Run("sound overrides apply last", func(t *testing.T) {
		sound := "json-layer"
		appOverride := map[Category]CategoryOverride{
			CategoryRevenue: {Sound: &sound},
			CategoryRefund:  {Sound: &sound},
		}
		resolved := ResolveCategories(logger, "", appOverride, "fallback", map[Category]string{
			CategoryRevenue: "per-category",
		})

		// Category-specific override wins outright.
		assert.Equal(t, "per-category", resolved[CategoryRevenue].Sound)
		// Default sound override beats the JSON layers.
		assert.Equal(t, "fallback", resolved[CategoryRefund].Sound)
		assert.Equal(t, "fallback", resolved[CategoryRisk].Sound)
	})

	t.Run("without sound overrides the JSON layers stand", func(t *testing.T) {
		sound := "json-layer"
		appOverride := map[Category]CategoryOverride{CategoryRisk: {Sound: &sound}}
		resolved := ResolveCategories(logger, "", appOverride, "", nil)
		assert.Equal(t, "json-layer", resolved[CategoryRisk].Sound)
	})

	t.Run("resolution is pure", func(t *testing.T) {
		blob := `{"STATUS":{"enabled":true,"group":"Ops"}}`
		sounds := map[Category]string{CategoryStatus: "ping"}
		first := ResolveCategories(logger, blob, nil, "base", sounds)
		second := ResolveCategories(logger, blob, nil, "base", sounds)
		assert.Equal(t, first, second)
	})
}

func TestParseCategoryOverrides(t *testing.T) {
	overrides, err := ParseCategoryOverrides(`{"REVENUE":{"enabled":false}}`)
	require.NoError(t, err)
	require.Contains(t, overrides, CategoryRevenue)
	require.NotNil(t, overrides[CategoryRevenue].Enabled)
	assert.False(t, *overrides[CategoryRevenue].Enabled)

	_, err = ParseCategoryOverrides(`nope`)
	assert.Error(t, err)
}
