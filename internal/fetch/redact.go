// internal/fetch/redact.go
package fetch

import "net/url"

var secretParams = []string{"api-key", "api_key", "apikey", "token"}

// RedactURL скрывает ключи API в query-параметрах для вывода в лог
func RedactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.RawQuery == "" {
		return raw
	}

	query := parsed.Query()
	changed := false
	for _, name := range secretParams {
		if query.Has(name) {
			query.Set(name, "redacted")
			changed = true
		}
	}
	if !changed {
		return raw
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}
