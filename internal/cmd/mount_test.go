package cmd

import (
	"testing"
)

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		path1    string
		path2    string
		expected bool
	}{
		{
			name:     "identical paths",
			path1:    "/tmp/tree",
			path2:    "/tmp/tree",
			expected: true,
		},
		{
			name:     "path1 contains path2",
			path1:    "/tmp/tree/0-0A",
			path2:    "/tmp/tree",
			expected: true,
		},
		{
			name:     "path2 contains path1",
			path1:    "/tmp/tree",
			path2:    "/tmp/tree/mnt",
			expected: true,
		},
		{
			name:     "completely separate paths",
			path1:    "/tmp/tree",
			path2:    "/mnt/data",
			expected: false,
		},
		{
			name:     "sibling directories",
			path1:    "/tmp/tree",
			path2:    "/tmp/mnt",
			expected: false,
		},
		{
			name:     "shared name prefix is not nesting",
			path1:    "/tmp/tree",
			path2:    "/tmp/treeview",
			expected: false,
		},
		{
			name:     "trailing slash and dot segments",
			path1:    "/tmp/tree/",
			path2:    "/tmp/./tree/mnt",
			expected: true,
		},
		{
			name:     "relative paths - overlapping",
			path1:    "tree",
			path2:    "tree/mnt",
			expected: true,
		},
		{
			name:     "relative paths - separate",
			path1:    "tree",
			path2:    "mnt",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pathsOverlap(tt.path1, tt.path2)
			if result != tt.expected {
				t.Errorf("pathsOverlap(%q, %q) = %v, expected %v", tt.path1, tt.path2, result, tt.expected)
			}
		})
	}
}
