package validators

import (
	"net/mail"
	"strings"
)

// NormalizeEmail devolve o email em minúsculas; vazio continua vazio.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmail aceita apenas o endereço puro, sem nome de exibição.
func IsEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@"):], ".")
}
