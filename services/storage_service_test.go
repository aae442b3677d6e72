package services

import "testing"

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{"bare key", "products/abc123.jpg", "products/abc123.jpg"},
		{"leading slash", "/products/abc123.jpg", "products/abc123.jpg"},
		{
			"path-style URL with bucket segment",
			"https://s3.example.com/anritvox-media/products/abc123.jpg",
			"products/abc123.jpg",
		},
		{
			"virtual-host URL",
			"https://anritvox-media.s3.example.com/products/abc123.jpg",
			"products/abc123.jpg",
		},
		{
			"signed URL keeps only the object path",
			"https://s3.example.com/anritvox-media/products/abc123.jpg?X-Amz-Signature=deadbeef",
			"products/abc123.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractKey(tt.stored); got != tt.want {
				t.Errorf("ExtractKey(%q) = %q, want %q", tt.stored, got, tt.want)
			}
		})
	}
}
