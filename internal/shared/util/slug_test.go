package util

import "testing"

func TestCropImageSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Wheat", want: "wheat"},
		{name: "multi word", in: "Black Gram", want: "black-gram"},
		{name: "parenthetical stripped", in: "Sorghum (Jowar)", want: "sorghum"},
		{name: "trailing parenthetical", in: "Urad (Black Gram)", want: "urad"},
		{name: "extra whitespace", in: "  Finger   Millet  ", want: "finger-millet"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CropImageSlug(tc.in); got != tc.want {
				t.Fatalf("CropImageSlug(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCropImageFallbackURL(t *testing.T) {
	got := CropImageFallbackURL("Black Gram")
	want := "https://source.unsplash.com/400x250/?black-gram,crop,field,farm"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
