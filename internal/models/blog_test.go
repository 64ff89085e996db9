package models

import "testing"

func TestBlogSlugURL(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.24 Released!", "go-1-24-released"},
		{"  Spaces   Everywhere  ", "spaces-everywhere"},
		{"Ünïcödé Tïtle", "unicode-title"},
	}
	for _, tc := range cases {
		b := Blog{Title: tc.title}
		if got := b.SlugURL(); got != tc.want {
			t.Errorf("SlugURL(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
