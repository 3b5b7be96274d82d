package database

import "testing"

func TestFolderPattern(t *testing.T) {
	tests := []struct {
		folder   string
		expected string
	}{
		{"class-10", "/class-10/"},
		{"/class-10/", "/class-10/"},
		{"a/b", "/a/b/"},
	}

	for _, tt := range tests {
		if got := FolderPattern(tt.folder); got != tt.expected {
			t.Errorf("FolderPattern(%q) = %q, want %q", tt.folder, got, tt.expected)
		}
	}
}

func TestBlobKey(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			"s3 virtual host",
			"https://bucket.s3.us-east-1.amazonaws.com/class-10/abc.jpg",
			"class-10/abc.jpg",
		},
		{
			"path style",
			"https://minio.local:9000/faces/class-10/abc.jpg",
			"faces/class-10/abc.jpg",
		},
		{"no scheme", "host/folder/file.jpg", "folder/file.jpg"},
		{"no path", "https://host", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlobKey(tt.url); got != tt.expected {
				t.Errorf("BlobKey(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}
