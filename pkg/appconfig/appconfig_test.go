package appconfig

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihaimyh/storebark/pkg/storebark"
)

func lookupFrom(vars map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestBuildSingleTenant(t *testing.T) {
	env := &Env{
		ProductName:   "iRich",
		BarkKey:       "globalkey",
		BarkIcon:      "https://example.com/icon.png",
		ForwardURL:    "https://example.com/hook",
		EnableSandbox: true,
	}

	reg := Build(env, lookupFrom(nil), zerolog.Nop())

	assert.True(t, reg.SingleTenant())
	assert.Equal(t, []string{""}, reg.Names())

	app, ok := reg.Get("")
	require.True(t, ok)
	assert.Equal(t, "iRich", app.ProductName)
	assert.Equal(t, "globalkey", app.BarkKey)
	assert.Equal(t, "https://example.com/icon.png", app.BarkIcon)
	assert.Equal(t, "https://example.com/hook", app.ForwardURL)
	assert.True(t, app.EnableSandbox)
	assert.True(t, app.Categories[storebark.CategoryRevenue].Enabled)
}

func TestBuildMultiTenant(t *testing.T) {
	env := &Env{
		Apps:    "irich, Ledger ,",
		BarkKey: "globalkey",
	}
	vars := map[string]string{
		"PRODUCT_NAME_irich":   "iRich",
		"BARK_KEY_irich":       "irichkey",
		"BARK_ICON_irich":      "https://example.com/irich.png",
		"FORWARD_URL_irich":    "https://example.com/relay",
		"ENABLE_SANDBOX_irich": "true",
	}

	reg := Build(env, lookupFrom(vars), zerolog.Nop())

	assert.False(t, reg.SingleTenant())
	assert.Equal(t, []string{"irich", "ledger"}, reg.Names())

	irich, ok := reg.Get("irich")
	require.True(t, ok)
	assert.Equal(t, "iRich", irich.ProductName)
	assert.Equal(t, "irichkey", irich.BarkKey)
	assert.Equal(t, "https://example.com/irich.png", irich.BarkIcon)
	assert.Equal(t, "https://example.com/relay", irich.ForwardURL)
	assert.True(t, irich.EnableSandbox)

	// Unset per-app keys: name as product, global bark key, sandbox off.
	ledger, ok := reg.Get("ledger")
	require.True(t, ok)
	assert.Equal(t, "ledger", ledger.ProductName)
	assert.Equal(t, "globalkey", ledger.BarkKey)
	assert.False(t, ledger.EnableSandbox)

	_, ok = reg.Get("unknown")
	assert.False(t, ok)
}

func TestBuildUppercaseSuffixFallback(t *testing.T) {
	env := &Env{Apps: "irich"}
	vars := map[string]string{
		"PRODUCT_NAME_IRICH": "iRich Upper",
		"BARK_KEY_IRICH":     "upperkey",
	}

	reg := Build(env, lookupFrom(vars), zerolog.Nop())

	app, ok := reg.Get("irich")
	require.True(t, ok)
	assert.Equal(t, "iRich Upper", app.ProductName)
	assert.Equal(t, "upperkey", app.BarkKey)
}

func TestBuildCategoryLayers(t *testing.T) {
	env := &Env{
		Apps:             "irich,plain",
		NotificationJSON: `{"REFUND":{"enabled":true}}`,
		Sound:            "fallback",
		SoundRevenue:     "cashregister",
	}
	vars := map[string]string{
		"NOTIFICATION_CONFIG_irich": `{"REFUND":{"enabled":false},"RISK":{"enabled":true}}`,
	}

	reg := Build(env, lookupFrom(vars), zerolog.Nop())

	irich, ok := reg.Get("irich")
	require.True(t, ok)
	assert.False(t, irich.Categories[storebark.CategoryRefund].Enabled)
	assert.True(t, irich.Categories[storebark.CategoryRisk].Enabled)
	assert.Equal(t, "cashregister", irich.Categories[storebark.CategoryRevenue].Sound)
	assert.Equal(t, "fallback", irich.Categories[storebark.CategoryRefund].Sound)

	// The global blob still applies to apps without their own override.
	plain, ok := reg.Get("plain")
	require.True(t, ok)
	assert.True(t, plain.Categories[storebark.CategoryRefund].Enabled)
}

func TestBuildMalformedAppConfigSkipsLayer(t *testing.T) {
	env := &Env{
		Apps:             "irich",
		NotificationJSON: `{"REFUND":{"enabled":true}}`,
	}
	vars := map[string]string{
		"NOTIFICATION_CONFIG_irich": `{broken`,
	}

	reg := Build(env, lookupFrom(vars), zerolog.Nop())

	app, ok := reg.Get("irich")
	require.True(t, ok)
	// The app layer is skipped; the global layer survives.
	assert.True(t, app.Categories[storebark.CategoryRefund].Enabled)
}

func TestSplitApps(t *testing.T) {
	assert.Nil(t, splitApps(""))
	assert.Nil(t, splitApps(" , ,"))
	assert.Equal(t, []string{"a", "b"}, splitApps("A, b"))
}
