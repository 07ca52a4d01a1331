package server

import (
	"encoding/json"
	"testing"

	"orc/props"
)

func TestSolveEvaporator(t *testing.T) {
	h := NewHub()
	h.oracle = props.NewRefOracle()
	content := h.solveEvaporator()
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out["error"]; ok {
		t.Fatalf("solve failed: %s", content)
	}
	if out["flag"].(float64) <= 0 {
		t.Fatalf("unexpected flag: %v", out["flag"])
	}
}

func TestSolveExpander(t *testing.T) {
	h := NewHub()
	h.oracle = props.NewRefOracle()
	content := h.solveExpander()
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out["error"]; ok {
		t.Fatalf("solve failed: %s", content)
	}
	if out["w_shaft"].(float64) <= 0 {
		t.Fatalf("unexpected shaft power: %v", out["w_shaft"])
	}
}
