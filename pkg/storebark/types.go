package storebark

// Category is the coarse classification of a subscription lifecycle event.
// Each category is independently enabled and configured per tenant.
type Category string

const (
	CategoryRevenue Category = "REVENUE"
	CategoryRefund  Category = "REFUND"
	CategoryRisk    Category = "RISK"
	CategoryStatus  Category = "STATUS"
)

// Categories lists every category in display order. The set is fixed:
// configuration resolution can override category fields but never add or
// remove categories.
var Categories = []Category{CategoryRevenue, CategoryRefund, CategoryRisk, CategoryStatus}

// CategoryConfig controls how one category of notifications is delivered.
type CategoryConfig struct {
	Enabled bool   `json:"enabled"`
	Icon    string `json:"icon"`
	Sound   string `json:"sound"`
	Group   string `json:"group"`
}

// AppConfig is the effective configuration for one tenant, resolved before a
// request enters the pipeline and read-only afterwards.
type AppConfig struct {
	// Name is the tenant identifier used in routes and logs. Empty for the
	// single-tenant default app.
	Name string

	// ProductName is the human-readable product name shown in every push.
	ProductName string

	// BarkKey addresses the tenant on the Bark server. Empty disables
	// delivery without being an error.
	BarkKey string

	// BarkIcon is the fallback icon when a category has none of its own.
	BarkIcon string

	// ForwardURL, when set, receives a verbatim copy of every inbound
	// payload in the background.
	ForwardURL string

	// EnableSandbox allows pushes for Sandbox-environment notifications.
	EnableSandbox bool

	// Categories holds the resolved per-category configuration. All four
	// categories are always present.
	Categories map[Category]CategoryConfig
}

const (
	EnvironmentProduction = "Production"
	EnvironmentSandbox    = "Sandbox"
)

// Result statuses reported to the webhook caller. StatusError is reserved
// for outer envelope decode failures; every other non-delivery outcome is
// StatusIgnored with a human-readable reason.
const (
	StatusSuccess = "success"
	StatusIgnored = "ignored"
	StatusError   = "error"
)

// Result is the terminal outcome of processing one webhook delivery.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
