package services

import (
	"fmt"
	"strings"
)

// IsAuthorized reports whether senderIdentity may use the bridge. Both sides
// are compared in string form, so a numeric chat id matches its configured
// text. An empty allowedIdentity leaves the bridge open.
func IsAuthorized(senderIdentity interface{}, allowedIdentity string) bool {
	allowed := strings.TrimSpace(allowedIdentity)
	if allowed == "" {
		return true
	}
	if senderIdentity == nil {
		return false
	}
	return strings.TrimSpace(fmt.Sprint(senderIdentity)) == allowed
}
