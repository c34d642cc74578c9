package auth

import "unicode"

// ValidPassword reports whether senha satisfies the signup policy: at
// least 6 characters containing an uppercase letter, a digit and a
// symbol. Underscore counts as a symbol.
func ValidPassword(senha string) bool {
	if len(senha) < 6 {
		return false
	}
	var temMaiuscula, temDigito, temSimbolo bool
	for _, ch := range senha {
		switch {
		case unicode.IsUpper(ch):
			temMaiuscula = true
		case unicode.IsDigit(ch):
			temDigito = true
		case ch == '_' || (!unicode.IsLetter(ch) && !unicode.IsNumber(ch)):
			temSimbolo = true
		}
	}
	return temMaiuscula && temDigito && temSimbolo
}
