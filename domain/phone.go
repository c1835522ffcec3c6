package domain

// operatorPrefixes lists the mobile operator codes accepted for local numbers
var operatorPrefixes = map[string]struct{}{
	"90": {}, "91": {}, "93": {}, "94": {}, "95": {}, "97": {}, "98": {}, "99": {},
	"20": {}, "33": {}, "50": {}, "77": {}, "88": {},
}

// ValidPhone reports whether phone is a 9-digit local number with a known operator prefix
func ValidPhone(phone string) bool {
	if len(phone) != 9 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, ok := operatorPrefixes[phone[:2]]
	return ok
}
