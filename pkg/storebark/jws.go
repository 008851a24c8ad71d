package storebark

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// DecodeJWS extracts the payload segment of a compact JWS token and returns
// it as raw JSON. The signature is NOT verified: notifications are trusted at
// the network boundary, the same posture as the worker this service replaces.
// Anything that is not a three-part token carrying base64url-encoded JSON
// decodes to nil, never to a partial value.
func DecodeJWS(token string) json.RawMessage {
	parts := strings.Split(token, ".")
	if len(parts) < 3 {
		return nil
	}
	seg := strings.NewReplacer("-", "+", "_", "/").Replace(parts[1])
	if pad := len(seg) % 4; pad != 0 {
		seg += strings.Repeat("=", 4-pad)
	}
	raw, err := base64.StdEncoding.DecodeString(seg)
	if err != nil {
		return nil
	}
	if !json.Valid(raw) {
		return nil
	}
	return raw
}

// NotificationPayload is the decoded outer payload of an App Store server
// notification (V2).
type NotificationPayload struct {
	NotificationType string           `json:"notificationType"`
	Subtype          string           `json:"subtype"`
	Data             NotificationData `json:"data"`
}

// NotificationData carries the notification's environment and the nested
// transaction envelope.
type NotificationData struct {
	Environment           string `json:"environment"`
	SignedTransactionInfo string `json:"signedTransactionInfo"`
}

// Environment returns the notification's environment, defaulting to
// Production when the payload omits it.
func (p *NotificationPayload) Environment() string {
	if p.Data.Environment == "" {
		return EnvironmentProduction
	}
	return p.Data.Environment
}

// DecodeNotification decodes the outer signed envelope into its typed
// payload, or nil if the envelope is malformed.
func DecodeNotification(token string) *NotificationPayload {
	raw := DecodeJWS(token)
	if raw == nil {
		return nil
	}
	var p NotificationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

// DecodeTransaction decodes the nested transaction envelope. A missing or
// malformed envelope yields nil; the pipeline continues with placeholder
// fields since transaction details are supplementary.
func DecodeTransaction(token string) *TransactionInfo {
	if token == "" {
		return nil
	}
	raw := DecodeJWS(token)
	if raw == nil {
		return nil
	}
	var info TransactionInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil
	}
	return &info
}
