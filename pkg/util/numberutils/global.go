package numberutils

// IsDigits reports whether str is non-empty and made only of ASCII digits (0-9).
// Other Unicode digits do not count.
func IsDigits(str string) bool {
	if str == "" {
		return false
	}
	for i := 0; i < len(str); i++ {
		if str[i] < '0' || str[i] > '9' {
			return false
		}
	}
	return true
}
