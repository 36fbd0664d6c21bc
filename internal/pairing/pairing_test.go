package pairing_test

import (
	"os"
	"path/filepath"
	"testing"

	"sentrim/internal/pairing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("riff"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestDiscoverMatchesPairsByBase(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"alpha_original.wav",
		"alpha_part1.wav",
		"beta_original.mp3",
		"gamma_part1.flac",
		"notes.txt",
		"unmarked.wav",
	)

	pairs, err := pairing.Discover(dir, "_original", "_part1")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d: %+v", len(pairs), pairs)
	}

	alpha := pairs[0]
	if alpha.Base != "alpha" || !alpha.Complete() {
		t.Fatalf("expected complete alpha pair, got %+v", alpha)
	}
	if filepath.Base(alpha.OriginalPath) != "alpha_original.wav" {
		t.Fatalf("unexpected original path %q", alpha.OriginalPath)
	}
	if filepath.Base(alpha.DiarizedPath) != "alpha_part1.wav" {
		t.Fatalf("unexpected diarized path %q", alpha.DiarizedPath)
	}

	beta := pairs[1]
	if beta.Base != "beta" || beta.Complete() || beta.DiarizedPath != "" {
		t.Fatalf("expected solo original beta, got %+v", beta)
	}
	if beta.Primary() != beta.OriginalPath {
		t.Fatalf("expected primary to be the original, got %q", beta.Primary())
	}

	gamma := pairs[2]
	if gamma.Base != "gamma" || gamma.OriginalPath != "" || gamma.DiarizedPath == "" {
		t.Fatalf("expected solo diarized gamma, got %+v", gamma)
	}
	if gamma.Primary() != gamma.DiarizedPath {
		t.Fatalf("expected primary to fall back to diarized, got %q", gamma.Primary())
	}
}

func TestDiscoverIgnoresNonAudioAndUnmarked(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "report_original.pdf", "plain.wav")

	pairs, err := pairing.Discover(dir, "_original", "_part1")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("expected no pairs, got %+v", pairs)
	}
}

func TestDiscoverRejectsBlankMarkers(t *testing.T) {
	if _, err := pairing.Discover(t.TempDir(), "", "_part1"); err == nil {
		t.Fatal("expected error for blank marker")
	}
}

func TestDiscoverMissingDirectory(t *testing.T) {
	if _, err := pairing.Discover(filepath.Join(t.TempDir(), "absent"), "_original", "_part1"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestIsAudioFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.wav":  true,
		"a.MP3":  true,
		"a.opus": true,
		"a.txt":  false,
		"a":      false,
	} {
		if got := pairing.IsAudioFile(name); got != want {
			t.Errorf("IsAudioFile(%q) = %v, expected %v", name, got, want)
		}
	}
}
