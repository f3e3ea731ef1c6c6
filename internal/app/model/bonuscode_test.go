package model

import "testing"

func TestGenerateBonusCode(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		code, err := GenerateBonusCode()
		if err != nil {
			t.Fatal(err)
		}
		if !ValidBonusCode(code) {
			t.Fatalf("generated code %q fails its own validation", code)
		}
		seen[code] = struct{}{}
	}

	if len(seen) < 2 {
		t.Error("generator produced no variety across 50 codes")
	}
}

func TestValidBonusCode(t *testing.T) {
	code, err := GenerateBonusCode()
	if err != nil {
		t.Fatal(err)
	}

	// Flipping the check digit must break the code.
	last := code[len(code)-1]
	flipped := code[:len(code)-1] + string('0'+(last-'0'+1)%10)
	if ValidBonusCode(flipped) {
		t.Errorf("code %q with flipped check digit %q still validates", code, flipped)
	}

	if ValidBonusCode("12345") {
		t.Error("short code must not validate")
	}
	if ValidBonusCode("ABCDEFGHIJKL") {
		t.Error("non-numeric code must not validate")
	}
}
