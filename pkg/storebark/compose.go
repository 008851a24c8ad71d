package storebark

import (
	"fmt"
	"strings"
)

// PushOptions are the delivery options attached to an outbound push.
type PushOptions struct {
	Icon  string
	Sound string
	Group string
}

// Decision is the composer's verdict for one notification: either a fully
// composed push or a suppression with its reason.
type Decision struct {
	Send    bool
	Reason  string
	Title   string
	Body    string
	Options PushOptions
}

var categoryTitles = map[Category]string{
	CategoryRevenue: "New Revenue!",
	CategoryRefund:  "Refund Notice",
	CategoryRisk:    "Risk Alert",
	CategoryStatus:  "Status Change",
}

// sandboxEmoji replaces the category emoji for Sandbox notifications so test
// pushes are unmistakable at a glance.
const sandboxEmoji = "🧪"

// Compose joins the classification, transaction view and tenant
// configuration into a push, or decides to suppress. Suppression checks run
// in a fixed order: sandbox policy, unrecognized event, disabled category.
func Compose(event *Event, notificationType, subtype, environment string, app AppConfig, view TransactionView) Decision {
	if environment == EnvironmentSandbox && !app.EnableSandbox {
		return Decision{Reason: "Sandbox notifications disabled"}
	}
	if event == nil {
		return Decision{Reason: fmt.Sprintf("Unknown event: %s|%s", notificationType, subtype)}
	}
	catCfg, ok := app.Categories[event.Category]
	if !ok || !catCfg.Enabled {
		return Decision{Reason: fmt.Sprintf("%s notifications disabled", event.Category)}
	}

	emoji := event.Emoji
	prefix := ""
	if environment == EnvironmentSandbox {
		emoji = sandboxEmoji
		prefix = "[TEST] "
	}
	title := fmt.Sprintf("%s %s%s %s", emoji, prefix, app.ProductName, categoryTitles[event.Category])

	lines := []string{
		"Type: " + event.Name,
		"Product: " + view.ProductID + view.OfferSuffix,
	}
	if view.PriceText != "" && event.Category != CategoryStatus {
		lines = append(lines, "Amount: "+view.PriceText)
	}
	if view.OfferPeriod != "" {
		lines = append(lines, view.OfferPeriod)
	}

	icon := catCfg.Icon
	if icon == "" {
		icon = app.BarkIcon
	}

	return Decision{
		Send:  true,
		Title: title,
		Body:  strings.Join(lines, "\n"),
		Options: PushOptions{
			Icon:  icon,
			Sound: catCfg.Sound,
			Group: app.ProductName + "-" + catCfg.Group,
		},
	}
}
