package validate

import "testing"

func TestTelephone(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0781234567", true},
		{"0712345678", true},
		{"078123456", false},   // 9 digits
		{"07812345678", false}, // 11 digits
		{"0881234567", false},  // wrong prefix
		{"078123456a", false},
		{"+250781234567", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Telephone(tt.input); got != tt.want {
			t.Errorf("Telephone(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPin(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1234", true},
		{"0000", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Pin(tt.input); got != tt.want {
			t.Errorf("Pin(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAdminPassword(t *testing.T) {
	if AdminPassword("12345") {
		t.Error("expected 5-char password to be rejected")
	}
	if !AdminPassword("123456") {
		t.Error("expected 6-char password to be accepted")
	}
}
