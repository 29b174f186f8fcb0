package validate

import "regexp"

var (
	amountRe     = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	instrumentRe = regexp.MustCompile(`^\d{13,19}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2}|\d{4})$`)
	codeRe       = regexp.MustCompile(`^\d{3,4}$`)
)

func IsAmount(s string) bool {
	return amountRe.MatchString(s)
}

func IsInstrumentNumber(s string) bool {
	return instrumentRe.MatchString(s)
}

// IsExpiry accepts MM/YY and MM/YYYY.
func IsExpiry(s string) bool {
	return expiryRe.MatchString(s)
}

func IsVerificationCode(s string) bool {
	return codeRe.MatchString(s)
}
