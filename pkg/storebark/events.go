package storebark

// Event describes how one recognized notification type renders in a push.
type Event struct {
	Name     string
	Category Category
	Emoji    string
}

// eventTable maps "notificationType|subtype" pairs to their display
// configuration. Entries with an empty subtype ("TYPE|") double as the
// fallback for any subtype of that type. See Apple's NotificationType and
// Subtype documentation for the full enumeration.
var eventTable = map[string]Event{
	// Revenue
	"SUBSCRIBED|INITIAL_BUY":     {Name: "New subscription (initial)", Category: CategoryRevenue, Emoji: "🎉"},
	"SUBSCRIBED|RESUBSCRIBE":     {Name: "Resubscribed", Category: CategoryRevenue, Emoji: "🎉"},
	"DID_RENEW|":                 {Name: "Renewal succeeded", Category: CategoryRevenue, Emoji: "🎉"},
	"DID_RENEW|BILLING_RECOVERY": {Name: "Renewal recovered", Category: CategoryRevenue, Emoji: "🎉"},
	"ONE_TIME_CHARGE|":           {Name: "One-time purchase", Category: CategoryRevenue, Emoji: "🎉"},
	"OFFER_REDEEMED|INITIAL_BUY": {Name: "Offer redeemed (initial buy)", Category: CategoryRevenue, Emoji: "🎉"},
	"OFFER_REDEEMED|RESUBSCRIBE": {Name: "Offer redeemed (resubscribe)", Category: CategoryRevenue, Emoji: "🎉"},
	"OFFER_REDEEMED|UPGRADE":     {Name: "Offer redeemed (upgrade)", Category: CategoryRevenue, Emoji: "🎉"},
	"OFFER_REDEEMED|DOWNGRADE":   {Name: "Offer redeemed (downgrade)", Category: CategoryRevenue, Emoji: "🎉"},
	"REFUND_REVERSED|":           {Name: "Refund reversed", Category: CategoryRevenue, Emoji: "🎉"},

	// Refunds
	"REFUND|":                    {Name: "Refund issued", Category: CategoryRefund, Emoji: "💸"},
	"REFUND|CONSUMPTION_REQUEST": {Name: "Refund (consumption request)", Category: CategoryRefund, Emoji: "💸"},
	"CONSUMPTION_REQUEST|":       {Name: "Consumption info request", Category: CategoryRefund, Emoji: "💸"},

	// Risk
	"DID_FAIL_TO_RENEW|":             {Name: "Renewal failed", Category: CategoryRisk, Emoji: "⚠️"},
	"DID_FAIL_TO_RENEW|GRACE_PERIOD": {Name: "Renewal failed (grace period)", Category: CategoryRisk, Emoji: "⚠️"},
	"EXPIRED|VOLUNTARY":              {Name: "Expired (voluntary)", Category: CategoryRisk, Emoji: "⚠️"},
	"EXPIRED|BILLING_RETRY":          {Name: "Expired (billing retry)", Category: CategoryRisk, Emoji: "⚠️"},
	"EXPIRED|PRICE_INCREASE":         {Name: "Expired (price increase declined)", Category: CategoryRisk, Emoji: "⚠️"},
	"EXPIRED|PRODUCT_NOT_FOR_SALE":   {Name: "Expired (product removed)", Category: CategoryRisk, Emoji: "⚠️"},
	"GRACE_PERIOD_EXPIRED|":          {Name: "Grace period ended", Category: CategoryRisk, Emoji: "⚠️"},
	"REVOKE|":                        {Name: "Subscription revoked", Category: CategoryRisk, Emoji: "⚠️"},

	// Status changes
	"DID_CHANGE_RENEWAL_STATUS|AUTO_RENEW_DISABLED": {Name: "Auto-renew disabled", Category: CategoryStatus, Emoji: "ℹ️"},
	"DID_CHANGE_RENEWAL_STATUS|AUTO_RENEW_ENABLED":  {Name: "Auto-renew enabled", Category: CategoryStatus, Emoji: "ℹ️"},
	"DID_CHANGE_RENEWAL_PREF|UPGRADE":               {Name: "Plan upgraded", Category: CategoryStatus, Emoji: "ℹ️"},
	"DID_CHANGE_RENEWAL_PREF|DOWNGRADE":             {Name: "Plan downgraded", Category: CategoryStatus, Emoji: "ℹ️"},
	"PRICE_INCREASE|PENDING":                        {Name: "Price increase pending", Category: CategoryStatus, Emoji: "ℹ️"},
	"PRICE_INCREASE|ACCEPTED":                       {Name: "Price increase accepted", Category: CategoryStatus, Emoji: "ℹ️"},
	"RENEWAL_EXTENDED|":                             {Name: "Renewal extended", Category: CategoryStatus, Emoji: "ℹ️"},
	"RENEWAL_EXTENSION|SUMMARY":                     {Name: "Renewal extension summary", Category: CategoryStatus, Emoji: "ℹ️"},
	"RENEWAL_EXTENSION|FAILURE":                     {Name: "Renewal extension failed", Category: CategoryStatus, Emoji: "ℹ️"},
	"EXTERNAL_PURCHASE_TOKEN|":                      {Name: "External purchase token", Category: CategoryStatus, Emoji: "ℹ️"},
	"TEST|":                                         {Name: "Test notification", Category: CategoryStatus, Emoji: "🧪"},
}

// Classify resolves a (type, subtype) pair against the event table: exact
// match first, then the type-only entry. Unrecognized events return nil and
// are silently ignored downstream, not treated as errors.
func Classify(notificationType, subtype string) *Event {
	if e, ok := eventTable[notificationType+"|"+subtype]; ok {
		return &e
	}
	if e, ok := eventTable[notificationType+"|"]; ok {
		return &e
	}
	return nil
}
