package models

import (
	"encoding/json"
	"testing"
)

// TestActionPair_MarshalJSON tests the [key, value] wire encoding
func TestActionPair_MarshalJSON(t *testing.T) {
	pair := ActionPair{
		Key:    "reciclar",
		Action: ClimateAction{Action: "Separar y reciclar correctamente", Icon: "recycle"},
	}

	data, err := json.Marshal(pair)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `["reciclar",{"action":"Separar y reciclar correctamente","icon":"recycle"}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

// TestClimateActions tests catalog integrity
func TestClimateActions(t *testing.T) {
	if len(ClimateActions) == 0 {
		t.Fatal("catalog must not be empty")
	}

	for key, action := range ClimateActions {
		if action.Action == "" {
			t.Errorf("catalog entry %q has empty action text", key)
		}
		if action.Icon == "" {
			t.Errorf("catalog entry %q has empty icon", key)
		}
	}
}
