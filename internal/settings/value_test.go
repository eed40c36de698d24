package settings

import (
	"encoding/json"
	"testing"
)

func TestTagOf(t *testing.T) {
	cases := []struct {
		value any
		want  ValueType
	}{
		{nil, TypeNull},
		{"dark", TypeString},
		{true, TypeBoolean},
		{float64(42), TypeNumber},
		{json.Number("7"), TypeNumber},
		{map[string]any{"a": 1}, TypeObject},
		{[]any{"x"}, TypeObject},
	}
	for _, tc := range cases {
		if got := TagOf(tc.value); got != tc.want {
			t.Fatalf("TagOf(%v) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	encoded, errEncode := EncodeValue(map[string]any{"name": "github", "enabled": true})
	if errEncode != nil {
		t.Fatalf("encode: %v", errEncode)
	}

	var envelope TaggedValue
	if errUnmarshal := json.Unmarshal(encoded, &envelope); errUnmarshal != nil {
		t.Fatalf("unmarshal envelope: %v", errUnmarshal)
	}
	if envelope.Type != TypeObject {
		t.Fatalf("expected object tag, got %s", envelope.Type)
	}

	value, errDecode := DecodeValue(encoded)
	if errDecode != nil {
		t.Fatalf("decode: %v", errDecode)
	}
	obj, ok := value.(map[string]any)
	if !ok || obj["name"] != "github" {
		t.Fatalf("unexpected value %v", value)
	}
}

func TestDecodeValueRejectsMalformedPayload(t *testing.T) {
	if _, errDecode := DecodeValue([]byte("not-json")); errDecode == nil {
		t.Fatalf("expected an error for malformed payload")
	}
}

func TestKeyClasses(t *testing.T) {
	if !IsPublicBootstrapKey("theme") {
		t.Fatalf("theme must be a public bootstrap key")
	}
	if IsPublicBootstrapKey("mainModelId") {
		t.Fatalf("mainModelId must not be public")
	}
	if !IsUserPreferenceKey("textFoldLength") {
		t.Fatalf("textFoldLength must be a user preference key")
	}
	if IsUserPreferenceKey("isAllowRegister") {
		t.Fatalf("isAllowRegister must be global, not per-user")
	}
	if !IsKnownKey("oauth2Providers") || !IsKnownKey("theme") {
		t.Fatalf("known keys must include both classes")
	}
	if IsKnownKey("definitely-not-a-key") {
		t.Fatalf("unknown keys must be rejected")
	}
}
