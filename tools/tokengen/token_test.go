package main

import "testing"

func TestSignInCommand(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{
			name: "plain base",
			base: "http://localhost:8000",
			want: "curl -X POST -H 'Accept: application/json' -H 'Authorization: Bearer tok' http://localhost:8000/api/v1/session",
		},
		{
			name: "trailing slash",
			base: "http://localhost:8000/",
			want: "curl -X POST -H 'Accept: application/json' -H 'Authorization: Bearer tok' http://localhost:8000/api/v1/session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := signInCommand(tt.base, "tok"); got != tt.want {
				t.Errorf("signInCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}
