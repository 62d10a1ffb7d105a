package video

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "movie.mp4")

	got := GenerateOutputPath(input)
	want := filepath.Join(dir, "movie_output.mp4")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestGenerateOutputPathDeduplicates(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "movie.mp4")

	taken := []string{"movie_output.mp4", "movie_output(1).mp4"}
	for _, name := range taken {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0600); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	got := GenerateOutputPath(input)
	want := filepath.Join(dir, "movie_output(2).mp4")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestGenerateOutputPathNoExtension(t *testing.T) {
	dir := t.TempDir()
	got := GenerateOutputPath(filepath.Join(dir, "movie"))
	want := filepath.Join(dir, "movie_output")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
