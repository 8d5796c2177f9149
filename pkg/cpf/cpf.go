// Package cpf validates Brazilian CPF numbers (the 11-digit national ID used
// as the login credential and the employee document in ToolCare).
package cpf

// Valido reports whether raw is a valid CPF. Formatting characters
// ("123.456.789-09") are tolerated; any other non-digit rejects the input.
// Repeated-digit sequences such as "11111111111" are rejected even when the
// check digits happen to match.
func Valido(raw string) bool {
	digits := make([]int, 0, 11)
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == '.' || r == '-' || r == ' ':
			// formatting, ignore
		default:
			return false
		}
	}
	if len(digits) != 11 {
		return false
	}

	repeated := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}

	return digits[9] == checkDigit(digits[:9]) && digits[10] == checkDigit(digits[:10])
}

// checkDigit computes one verification digit: weights run from len(ds)+1
// down to 2, and the result is 0 when the weighted sum mod 11 is below 2,
// otherwise 11 minus the remainder.
func checkDigit(ds []int) int {
	sum := 0
	for i, d := range ds {
		sum += d * (len(ds) + 1 - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

// Normalizar strips formatting and returns the bare 11 digits, or the input
// unchanged when it is not a valid CPF shape. Callers should validate first.
func Normalizar(raw string) string {
	out := make([]byte, 0, 11)
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return string(out)
}
