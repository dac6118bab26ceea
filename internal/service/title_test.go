package service

import (
	"strings"
	"testing"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "short content", content: "buy milk", want: "buy milk"},
		{name: "exactly twenty", content: "12345678901234567890", want: "12345678901234567890"},
		{name: "twenty one", content: "123456789012345678901", want: "12345678901234567890..."},
		{name: "long content", content: "Meeting notes from the quarterly planning session", want: "Meeting notes from t..."},
		{name: "multibyte runes", content: strings.Repeat("日", 25), want: strings.Repeat("日", 20) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.content); got != tt.want {
				t.Errorf("DeriveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
