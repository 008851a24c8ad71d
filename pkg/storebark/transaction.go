package storebark

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OfferType identifies the App Store offer behind a purchase. The platform
// sends a numeric code; forwarded and replayed payloads sometimes carry the
// string synonym instead, so both decode to the same value.
type OfferType int

const (
	OfferNone         OfferType = 0
	OfferIntroductory OfferType = 1
	OfferPromotional  OfferType = 2
	OfferWinBack      OfferType = 3
)

// UnmarshalJSON accepts either the numeric code or its string synonym.
// Unrecognized values decode to OfferNone rather than failing the whole
// transaction payload.
func (o *OfferType) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*o = OfferType(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*o = OfferNone
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "introductory":
		*o = OfferIntroductory
	case "promotional":
		*o = OfferPromotional
	case "winback":
		*o = OfferWinBack
	default:
		*o = OfferNone
	}
	return nil
}

// TransactionInfo is the decoded inner transaction payload. Absent fields
// keep their zero values; Price is a pointer so a genuine zero price is
// distinguishable from a missing one.
type TransactionInfo struct {
	ProductID         string    `json:"productId"`
	Price             *int64    `json:"price"`
	Currency          string    `json:"currency"`
	OfferType         OfferType `json:"offerType"`
	OfferDiscountType string    `json:"offerDiscountType"`
	OfferIdentifier   string    `json:"offerIdentifier"`
	OfferPeriod       string    `json:"offerPeriod"`
}

const discountFreeTrial = "FREE_TRIAL"

// unknownProduct is the placeholder when the transaction envelope is absent
// or carries no product id.
const unknownProduct = "unknown product"

// TransactionView is the human-readable projection of a transaction used to
// compose the push body.
type TransactionView struct {
	ProductID   string
	PriceText   string
	OfferSuffix string
	OfferPeriod string
}

// InterpretTransaction projects a decoded transaction into display text.
// A nil transaction yields the placeholder view; the pipeline never fails on
// missing transaction details.
func InterpretTransaction(info *TransactionInfo) TransactionView {
	view := TransactionView{ProductID: unknownProduct}
	if info == nil {
		return view
	}
	if info.ProductID != "" {
		view.ProductID = info.ProductID
	}
	view.PriceText = FormatPrice(info.Price, info.Currency)

	period := ParseOfferPeriod(info.OfferPeriod)
	free := info.OfferDiscountType == discountFreeTrial

	switch info.OfferType {
	case OfferWinBack:
		view.OfferSuffix = " (win-back offer)"
		view.OfferPeriod = offerDuration(period, free)
	case OfferPromotional:
		if info.OfferIdentifier != "" {
			view.OfferSuffix = " (" + info.OfferIdentifier + ")"
		} else {
			view.OfferSuffix = " (promotional offer)"
		}
		view.OfferPeriod = offerDuration(period, free)
	case OfferIntroductory:
		if free {
			view.OfferSuffix = " (free trial)"
			if period != "" {
				view.OfferPeriod = "Trial duration: " + period
			}
		} else {
			view.OfferSuffix = " (introductory offer)"
			view.OfferPeriod = offerDuration(period, false)
		}
	}

	return view
}

func offerDuration(period string, free bool) string {
	if period == "" {
		return ""
	}
	if free {
		return "Offer duration: free " + period
	}
	return "Offer duration: " + period
}

var offerPeriodPattern = regexp.MustCompile(`^P(\d+)([DWMY])$`)

// ParseOfferPeriod renders a simple ISO-8601 duration ("P7D", "P1M") as
// plain text: "7 days", "1 month". Forms it does not recognize pass through
// unchanged; empty input stays empty.
func ParseOfferPeriod(period string) string {
	if period == "" {
		return ""
	}
	m := offerPeriodPattern.FindStringSubmatch(period)
	if m == nil {
		return period
	}
	n, _ := strconv.Atoi(m[1])
	var unit string
	switch m[2] {
	case "D":
		unit = "day"
	case "W":
		unit = "week"
	case "M":
		unit = "month"
	case "Y":
		unit = "year"
	}
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a milliunit price as currency text, e.g. 4990 "USD"
// becomes $4.99. Both price and currency are required; currency codes the
// formatter does not know fall back to "<CODE> <amount>".
func FormatPrice(price *int64, code string) string {
	if price == nil || code == "" {
		return ""
	}
	amount := float64(*price) / 1000
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	return pricePrinter.Sprintf("%v", currency.NarrowSymbol(unit.Amount(amount)))
}
