package auth

import "testing"

func TestValidPassword_Valid(t *testing.T) {
	testCases := []string{
		"Senha1!",
		"Abc12#",
		"Plano_2024",
		"X9$aaa",
		"MUITO_FORTE_123",
	}

	for _, senha := range testCases {
		if !ValidPassword(senha) {
			t.Errorf("ValidPassword(%q) = false, want true", senha)
		}
	}
}

func TestValidPassword_TooShort(t *testing.T) {
	testCases := []string{"", "A1!", "Ab1!x"}

	for _, senha := range testCases {
		if ValidPassword(senha) {
			t.Errorf("ValidPassword(%q) = true, want false", senha)
		}
	}
}

func TestValidPassword_MissingUppercase(t *testing.T) {
	if ValidPassword("senha1!") {
		t.Error(`ValidPassword("senha1!") = true, want false`)
	}
}

func TestValidPassword_MissingDigit(t *testing.T) {
	if ValidPassword("Senhas!") {
		t.Error(`ValidPassword("Senhas!") = true, want false`)
	}
}

func TestValidPassword_MissingSymbol(t *testing.T) {
	if ValidPassword("Senha123") {
		t.Error(`ValidPassword("Senha123") = true, want false`)
	}
}

func TestValidPassword_UnderscoreIsSymbol(t *testing.T) {
	if !ValidPassword("Senha_1") {
		t.Error(`ValidPassword("Senha_1") = false, want true`)
	}
}
