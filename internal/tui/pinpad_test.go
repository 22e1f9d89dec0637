package tui

import "testing"

func TestApplyPinKeyDigits(t *testing.T) {
	state, pin := pinIdle, ""

	for _, key := range []string{"1", "2", "3", "4"} {
		state, pin = applyPinKey(state, pin, key)
	}
	if pin != "1234" {
		t.Fatalf("pin = %q, want %q", pin, "1234")
	}

	// A fifth digit must not grow the buffer.
	state, pin = applyPinKey(state, pin, "5")
	if pin != "1234" {
		t.Errorf("pin grew past %d digits: %q", pinLength, pin)
	}
	if state != pinIdle {
		t.Errorf("state = %v, want pinIdle", state)
	}
}

func TestApplyPinKeyBackspaceAndClear(t *testing.T) {
	_, pin := applyPinKey(pinIdle, "123", keyBackspace)
	if pin != "12" {
		t.Errorf("backspace: pin = %q, want %q", pin, "12")
	}

	_, pin = applyPinKey(pinIdle, "", keyBackspace)
	if pin != "" {
		t.Errorf("backspace on empty: pin = %q, want empty", pin)
	}

	_, pin = applyPinKey(pinIdle, "123", keyClear)
	if pin != "" {
		t.Errorf("clear: pin = %q, want empty", pin)
	}
}

func TestApplyPinKeyIgnoresNonDigits(t *testing.T) {
	state, pin := applyPinKey(pinIdle, "12", "x")
	if pin != "12" || state != pinIdle {
		t.Errorf("non-digit changed pad: state=%v pin=%q", state, pin)
	}
}

func TestApplyPinKeyBlockedStates(t *testing.T) {
	for _, state := range []pinState{pinFetching, pinLoading, pinSuccess} {
		gotState, gotPin := applyPinKey(state, "12", "3")
		if gotState != state || gotPin != "12" {
			t.Errorf("state %v accepted input: state=%v pin=%q", state, gotState, gotPin)
		}
	}
}

func TestApplyPinKeyErrorRecovers(t *testing.T) {
	state, pin := applyPinKey(pinError, "", "7")
	if state != pinIdle {
		t.Errorf("keypress in error state should return to idle, got %v", state)
	}
	if pin != "7" {
		t.Errorf("pin = %q, want %q", pin, "7")
	}

	// Even a clear leaves the error state.
	state, _ = applyPinKey(pinError, "12", keyClear)
	if state != pinIdle {
		t.Errorf("clear in error state should return to idle, got %v", state)
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		state pinState
		pin   string
		want  bool
	}{
		{pinIdle, "1234", true},
		{pinIdle, "123", false},
		{pinIdle, "", false},
		{pinLoading, "1234", false},
		{pinSuccess, "1234", false},
		{pinError, "1234", false},
		{pinFetching, "1234", false},
	}

	for _, tt := range tests {
		if got := canSubmit(tt.state, tt.pin); got != tt.want {
			t.Errorf("canSubmit(%v, %q) = %v, want %v", tt.state, tt.pin, got, tt.want)
		}
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Maria Silva", "MS"},
		{"José dos Santos", "JS"},
		{"Ana", "AN"},
		{"X", "X"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Initials(tt.name); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
