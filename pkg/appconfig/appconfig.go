// Package appconfig resolves per-tenant configuration from the process
// environment. Fixed keys load through cleanenv; per-app keys use the
// "<KEY>_<app>" convention and are resolved through an injectable lookup so
// tests never touch the real environment.
package appconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"github.com/mihaimyh/storebark/pkg/storebark"
)

// Env is the fixed-key part of the configuration.
type Env struct {
	ListenAddr  string `env:"LISTEN_ADDR" env-default:":8080"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	BarkBaseURL string `env:"BARK_BASE_URL" env-default:"https://api.day.app"`

	// Apps is the comma-separated tenant list. Empty selects single-tenant
	// mode: one default app built from the global keys below, served at "/".
	Apps string `env:"APPS"`

	ProductName   string `env:"PRODUCT_NAME" env-default:"My App"`
	BarkKey       string `env:"BARK_KEY"`
	BarkIcon      string `env:"BARK_ICON"`
	ForwardURL    string `env:"FORWARD_URL"`
	EnableSandbox bool   `env:"ENABLE_SANDBOX_NOTIFICATIONS" env-default:"false"`

	// NotificationJSON is the global category override blob.
	NotificationJSON string `env:"NOTIFICATION_CONFIG"`

	// Sound overrides, applied after the JSON layers. The per-category
	// variables win over the default.
	Sound        string `env:"BARK_SOUND"`
	SoundRevenue string `env:"BARK_SOUND_REVENUE"`
	SoundRefund  string `env:"BARK_SOUND_REFUND"`
	SoundRisk    string `env:"BARK_SOUND_RISK"`
	SoundStatus  string `env:"BARK_SOUND_STATUS"`
}

// LoadEnv reads the fixed-key configuration from the environment.
func LoadEnv() (*Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return &env, nil
}

// Lookup resolves one raw environment variable.
type Lookup func(name string) (string, bool)

// Registry holds the resolved tenant configurations, in APPS order.
type Registry struct {
	apps  map[string]storebark.AppConfig
	order []string
}

// Build resolves every configured tenant into its effective AppConfig. A nil
// lookup reads the process environment.
func Build(env *Env, lookup Lookup, logger zerolog.Logger) *Registry {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	categorySounds := map[storebark.Category]string{
		storebark.CategoryRevenue: env.SoundRevenue,
		storebark.CategoryRefund:  env.SoundRefund,
		storebark.CategoryRisk:    env.SoundRisk,
		storebark.CategoryStatus:  env.SoundStatus,
	}

	reg := &Registry{apps: make(map[string]storebark.AppConfig)}

	names := splitApps(env.Apps)
	if len(names) == 0 {
		reg.add(storebark.AppConfig{
			Name:          "",
			ProductName:   env.ProductName,
			BarkKey:       env.BarkKey,
			BarkIcon:      env.BarkIcon,
			ForwardURL:    env.ForwardURL,
			EnableSandbox: env.EnableSandbox,
			Categories:    storebark.ResolveCategories(logger, env.NotificationJSON, nil, env.Sound, categorySounds),
		})
		return reg
	}

	for _, name := range names {
		appVar := func(prefix string) string {
			if v, ok := lookup(prefix + "_" + name); ok {
				return v
			}
			if v, ok := lookup(prefix + "_" + strings.ToUpper(name)); ok {
				return v
			}
			return ""
		}

		productName := appVar("PRODUCT_NAME")
		if productName == "" {
			productName = name
		}
		barkKey := appVar("BARK_KEY")
		if barkKey == "" {
			barkKey = env.BarkKey
		}

		var appOverride map[storebark.Category]storebark.CategoryOverride
		if blob := appVar("NOTIFICATION_CONFIG"); blob != "" {
			parsed, err := storebark.ParseCategoryOverrides(blob)
			if err != nil {
				logger.Error().Err(err).Str("app", name).Msg("app notification config is not valid JSON, layer skipped")
			} else {
				appOverride = parsed
			}
		}

		reg.add(storebark.AppConfig{
			Name:          name,
			ProductName:   productName,
			BarkKey:       barkKey,
			BarkIcon:      appVar("BARK_ICON"),
			ForwardURL:    appVar("FORWARD_URL"),
			EnableSandbox: appVar("ENABLE_SANDBOX") == "true",
			Categories:    storebark.ResolveCategories(logger, env.NotificationJSON, appOverride, env.Sound, categorySounds),
		})
	}

	return reg
}

func (r *Registry) add(app storebark.AppConfig) {
	r.apps[app.Name] = app
	r.order = append(r.order, app.Name)
}

// Get returns the tenant with the given name.
func (r *Registry) Get(name string) (storebark.AppConfig, bool) {
	app, ok := r.apps[name]
	return app, ok
}

// Names returns the tenant names in configuration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// SingleTenant reports whether the registry holds only the default app.
func (r *Registry) SingleTenant() bool {
	return len(r.order) == 1 && r.order[0] == ""
}

func splitApps(apps string) []string {
	var names []string
	for _, part := range strings.Split(apps, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
