package common

import "strings"

// ParseBearer extracts the token from an Authorization header value of the
// form "Bearer <token>". The scheme comparison is case-insensitive.
func ParseBearer(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(BearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
