package validators

import "strings"

// NormalizePhone mantém só os dígitos: "(11) 98765-4321" → "11987654321".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsPhone(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= 8 && n <= 15
}
