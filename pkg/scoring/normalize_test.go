package scoring

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Fed Announces", "fed announces"},
		{"punctuation stripped", "S&P 500 rallies, again!", "sp 500 rallies again"},
		{"newlines collapse", "rate\ncut\r\nfears", "rate cut fears"},
		{"accents destroyed", "café précis", "caf prcis"},
		{"whitespace collapses", "  too   many    spaces ", "too many spaces"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeText(t *testing.T) {
	got := TokenizeText("rate hike fears")
	want := []string{"rate", "hike", "fears", "rate hike", "hike fears"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokenizeText = %v, want %v", got, want)
	}
}

func TestTokenizeTextSingleWord(t *testing.T) {
	got := TokenizeText("inflation")
	want := []string{"inflation"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TokenizeText = %v, want %v", got, want)
	}
}

func TestTokenizeTextEmpty(t *testing.T) {
	if got := TokenizeText(""); got != nil {
		t.Errorf("TokenizeText(\"\") = %v, want nil", got)
	}
}
