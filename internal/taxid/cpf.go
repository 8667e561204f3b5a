package taxid

// validCPF reports whether an 11-digit personal tax identifier passes
// the weighted check-digit algorithm. Sequences of a single repeated
// digit are syntactically well formed but known invalid.
func validCPF(digits string) bool {
	if len(digits) != 11 || allIdentical(digits) {
		return false
	}

	// Two passes: the 10th digit checks the first 9, the 11th checks
	// the first 10. Weights descend from t+1 down to 2.
	for t := 9; t < 11; t++ {
		sum := 0
		for c := 0; c < t; c++ {
			sum += int(digits[c]-'0') * (t + 1 - c)
		}
		check := ((10 * sum) % 11) % 10
		if int(digits[t]-'0') != check {
			return false
		}
	}
	return true
}

func allIdentical(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// stripNonDigits removes every byte outside 0-9.
func stripNonDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
