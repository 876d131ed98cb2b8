package util

import (
	"path/filepath"
	"testing"
)

func TestJSONFileRoundTrip(t *testing.T) {
	type payload struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}
	file := filepath.Join(t.TempDir(), "out.json")

	want := payload{Name: "coverage", Value: 0.75}
	if err := WriteJSONToFile(want, file); err != nil {
		t.Fatalf("WriteJSONToFile: %v", err)
	}
	got, err := ReadJSONFromFile[payload](file)
	if err != nil {
		t.Fatalf("ReadJSONFromFile: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v; want %+v", got, want)
	}
}

func TestReadJSONFromFileMissing(t *testing.T) {
	_, err := ReadJSONFromFile[int](filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Errorf("ReadJSONFromFile on missing file returned nil error")
	}
}
