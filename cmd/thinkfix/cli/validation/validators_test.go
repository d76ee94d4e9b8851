package validation

import "testing"

func TestValidateSessionID(t *testing.T) {
	valid := []string{
		"abc123",
		"f47ac10b-58cc-4372-a567-0e02b2c3d479",
		"session_1",
		"A-B_c-9",
	}
	for _, id := range valid {
		if err := ValidateSessionID(id); err != nil {
			t.Errorf("ValidateSessionID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{
		"",
		"../etc/passwd",
		"abc/def",
		"abc\\def",
		"abc def",
		"abc.jsonl",
		"id\x00null",
	}
	for _, id := range invalid {
		if err := ValidateSessionID(id); err == nil {
			t.Errorf("ValidateSessionID(%q) = nil, want error", id)
		}
	}
}
