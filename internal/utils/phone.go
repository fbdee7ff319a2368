package utils

import (
	"fmt"
	"regexp"
	"strings"

	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	lookupsv2 "github.com/twilio/twilio-go/rest/lookups/v2"
)

var e164Regex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`) // ITU-T E.164

var nonDigit = regexp.MustCompile(`\D`)

// IsE164 reports basic E.164 compliance.
func IsE164(number string) bool { return e164Regex.MatchString(number) }

// NormalizeUSPhone converts common US phone formats ("(555) 123-4567",
// "555.123.4567", "1-555-123-4567", "+15551234567") to E.164. Anything
// that does not reduce to a 10-digit US number (or 11 with leading 1)
// is rejected with ErrInvalidPhone.
func NormalizeUSPhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidPhone
	}
	if IsE164(trimmed) {
		return trimmed, nil
	}

	digits := nonDigit.ReplaceAllString(trimmed, "")
	switch {
	case len(digits) == 10:
		return "+1" + digits, nil
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits, nil
	default:
		return "", ErrInvalidPhone
	}
}

// VerifyPhoneNumber optionally confirms the (already E.164) number against
// Twilio Lookups V2. A nil client skips the remote check, which is how dev
// and test environments run. A 404 from Twilio means "no such number".
func VerifyPhoneNumber(number string, country string, tw *twilio.RestClient) (bool, error) {
	if !IsE164(number) {
		return false, nil
	}
	if tw == nil {
		return true, nil
	}

	var params *lookupsv2.FetchPhoneNumberParams
	if country != "" {
		params = &lookupsv2.FetchPhoneNumberParams{CountryCode: &country}
	}
	_, err := tw.LookupsV2.FetchPhoneNumber(number, params)
	if err == nil {
		return true, nil
	}
	if restErr, ok := err.(*twilioclient.TwilioRestError); ok {
		if restErr.Status == 404 {
			return false, nil
		}
		return false, fmt.Errorf("twilio lookup failed: %d %s", restErr.Status, restErr.Error())
	}
	return false, err
}
