package lib

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	// Small parameters keep the test fast; production uses DefaultArgonParams.
	params := *DefaultArgonParams
	params.Memory = 16 * 1024

	encoded, err := HashPassword("correct horse battery staple", &params)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", encoded)
	}

	match, err := VerifyPassword("correct horse battery staple", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !match {
		t.Error("correct password did not verify")
	}

	match, err = VerifyPassword("wrong password", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if match {
		t.Error("wrong password verified")
	}
}

func TestHashesAreSalted(t *testing.T) {
	params := *DefaultArgonParams
	params.Memory = 16 * 1024

	first, err := HashPassword("same password", &params)
	if err != nil {
		t.Fatal(err)
	}
	second, err := HashPassword("same password", &params)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestDecodeArgon2HashRejectsGarbage(t *testing.T) {
	for _, encoded := range []string{
		"",
		"not a hash",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$c2FsdA", // missing hash segment
	} {
		if _, err := DecodeArgon2Hash(encoded); err == nil {
			t.Errorf("DecodeArgon2Hash(%q) should fail", encoded)
		}
	}
}
