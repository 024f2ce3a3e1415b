package utils

import (
	"net/mail"
	"strings"
)

// NormalizeEmail remove espaços e passa para minúsculas; é a forma armazenada.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail aceita apenas o endereço puro, sem nome ("Ana <a@b.c>" é rejeitado).
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}
