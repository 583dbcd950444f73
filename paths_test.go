package intenttext

import (
	"path/filepath"
	"testing"
)

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		itPath string
		want   string
	}{
		{
			name:   "simple",
			itPath: "doc.it",
			want:   "doc.html",
		},
		{
			name:   "with_path",
			itPath: "/home/user/notes/doc.it",
			want:   "/home/user/notes/doc.html",
		},
		{
			name:   "different_extension",
			itPath: "doc.intent",
			want:   "doc.html",
		},
		{
			name:   "nested_path",
			itPath: "notes/work/plan.it",
			want:   "notes/work/plan.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOutputPath(tt.itPath)

			// Use filepath.Clean to normalize paths for comparison
			if filepath.Clean(got) != filepath.Clean(tt.want) {
				t.Errorf("ResolveOutputPath() = %v, want %v", got, tt.want)
			}
		})
	}
}
