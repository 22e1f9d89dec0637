package qr

import (
	"errors"
	"testing"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Payload
		wantErr bool
	}{
		{
			name: "json credentials",
			text: `{"restaurantId":"rest-1","apiKey":"key-abc"}`,
			want: Payload{RestaurantID: "rest-1", APIKey: "key-abc"},
		},
		{
			name: "semicolon credentials",
			text: "rest-1;key-abc",
			want: Payload{RestaurantID: "rest-1", APIKey: "key-abc"},
		},
		{
			name: "bare employee id",
			text: "emp-42",
			want: Payload{EmployeeID: "emp-42"},
		},
		{
			name: "surrounding whitespace",
			text: "  rest-1;key-abc\n",
			want: Payload{RestaurantID: "rest-1", APIKey: "key-abc"},
		},
		{
			name:    "empty",
			text:    "   ",
			wantErr: true,
		},
		{
			name:    "json missing api key",
			text:    `{"restaurantId":"rest-1"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			text:    `{"restaurantId":`,
			wantErr: true,
		},
		{
			name:    "semicolon with empty field",
			text:    "rest-1;",
			wantErr: true,
		},
		{
			name:    "too many semicolon fields",
			text:    "a;b;c",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePayload(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPayload) {
					t.Fatalf("expected ErrInvalidPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePayload(%q) failed: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParsePayload(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

// Both credential formats must configure the terminal identically.
func TestParsePayloadFormatsAgree(t *testing.T) {
	fromJSON, err := ParsePayload(`{"restaurantId":"rest-9","apiKey":"key-9"}`)
	if err != nil {
		t.Fatalf("json payload failed: %v", err)
	}
	fromPair, err := ParsePayload("rest-9;key-9")
	if err != nil {
		t.Fatalf("pair payload failed: %v", err)
	}

	if fromJSON != fromPair {
		t.Errorf("payloads disagree: %+v vs %+v", fromJSON, fromPair)
	}
	if !fromJSON.IsCredentials() {
		t.Error("credentials payload should report IsCredentials")
	}
	if (Payload{EmployeeID: "emp-1"}).IsCredentials() {
		t.Error("employee payload must not report IsCredentials")
	}
}
