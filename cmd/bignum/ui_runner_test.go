package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestShouldUseTUI(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		mode uiMode
		want bool
	}{
		{uiModeOn, true},
		{uiModeOff, false},
		{uiModeAuto, false},
	}
	for _, tt := range tests {
		if got := shouldUseTUI(tt.mode, f); got != tt.want {
			t.Fatalf("shouldUseTUI(%s, file) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
