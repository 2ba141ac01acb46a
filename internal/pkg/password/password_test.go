package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if hashed == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !Verify("secret123", hashed) {
		t.Error("expected correct password to verify")
	}
	if Verify("secret124", hashed) {
		t.Error("expected wrong password to fail")
	}
}

// Verify takes the plaintext first and the stored hash second; passing
// them the other way around must never authenticate.
func TestVerifyArgumentOrder(t *testing.T) {
	hashed, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}

	if Verify(hashed, "secret123") {
		t.Error("expected verification to fail when the hash is passed as the plaintext")
	}
}

func TestHashPinAndVerify(t *testing.T) {
	hashed, err := HashPin("1234")
	if err != nil {
		t.Fatalf("HashPin() error: %v", err)
	}

	if !Verify("1234", hashed) {
		t.Error("expected correct PIN to verify")
	}
	if Verify("4321", hashed) {
		t.Error("expected wrong PIN to fail")
	}
}
