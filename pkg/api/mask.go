package api

import "net/url"

// MaskKey hides the middle of a push key, keeping four characters on each
// end. Keys too short to mask safely render as "****".
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// MaskURL reduces a URL to its host, replacing any path with "/****" so the
// admin page never exposes forwarding endpoints. Unparseable values are
// truncated instead.
func MaskURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		if len(raw) > 20 {
			return raw[:20] + "..."
		}
		return raw
	}
	if u.Path != "" && u.Path != "/" {
		return u.Host + "/****"
	}
	return u.Host
}
