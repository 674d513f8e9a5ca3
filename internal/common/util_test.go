package common

import "testing"

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "canonical", header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{name: "lowercase scheme", header: "bearer tok", want: "tok", ok: true},
		{name: "surrounding spaces", header: "  Bearer   tok  ", want: "tok", ok: true},
		{name: "empty", header: "", ok: false},
		{name: "scheme only", header: "Bearer ", ok: false},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", ok: false},
		{name: "no scheme", header: "tok", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBearer(tt.header)
			if ok != tt.ok {
				t.Fatalf("ParseBearer(%q) ok = %v, want %v", tt.header, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("ParseBearer(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
