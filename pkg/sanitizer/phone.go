package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const DefaultRegion = "IN"

// NormalizePhone formats phone as E.164 when it parses as a valid number in
// region (or carries its own country code). Anything else is kept as given.
func NormalizePhone(phone, region string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if region == "" {
		region = DefaultRegion
	}

	parsed, err := phonenumbers.Parse(phone, region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
