package models

import "testing"

func TestCertificateShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"uuid takes uppercased last six", "0b994bcd-c34a-459a-b0c9-9b53a7a1a8ef", "A1A8EF"},
		{"short id is returned whole", "ab12", "AB12"},
		{"exactly six", "abc123", "ABC123"},
		{"empty id", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Certificate{ID: tt.id}
			if got := c.ShortID(); got != tt.want {
				t.Errorf("ShortID() = %q, want %q", got, tt.want)
			}
		})
	}
}
