// Package pairing resolves original/diarized recording pairs from an input
// directory by filename convention.
//
// A recording named "talk_original.wav" pairs with "talk_part1.wav" when both
// markers are at their defaults; the shared base identifier ("talk") keys the
// association. Pairing is 1-to-0-or-1: files without a counterpart are
// returned as solo pairs and processed on their own. The trimming core never
// sees filenames, only resolved pairs.
package pairing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pair associates an original recording with its optional diarized
// counterpart. Exactly one of the two paths may be empty.
type Pair struct {
	Base         string
	OriginalPath string
	DiarizedPath string
}

// Complete reports whether both members of the pair were found.
func (p Pair) Complete() bool {
	return p.OriginalPath != "" && p.DiarizedPath != ""
}

// Primary returns the path processing starts from: the original when
// present, otherwise the unpaired diarized file.
func (p Pair) Primary() string {
	if p.OriginalPath != "" {
		return p.OriginalPath
	}
	return p.DiarizedPath
}

var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
	".opus": {},
	".aac":  {},
}

// IsAudioFile reports whether the filename carries a recognized audio
// extension.
func IsAudioFile(name string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Discover scans dir for audio files carrying either marker and resolves
// them into pairs keyed by base identifier. Files without either marker are
// ignored; they are not part of the trimming corpus. Results are ordered by
// base for deterministic batch processing.
func Discover(dir, originalMarker, diarizedMarker string) ([]Pair, error) {
	if strings.TrimSpace(originalMarker) == "" || strings.TrimSpace(diarizedMarker) == "" {
		return nil, fmt.Errorf("pairing markers must be set")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	byBase := make(map[string]*Pair)
	for _, entry := range entries {
		if entry.IsDir() || !IsAudioFile(entry.Name()) {
			continue
		}
		name := entry.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		path := filepath.Join(dir, name)

		switch {
		case strings.Contains(stem, originalMarker):
			base := strings.Replace(stem, originalMarker, "", 1)
			pair := byBase[base]
			if pair == nil {
				pair = &Pair{Base: base}
				byBase[base] = pair
			}
			pair.OriginalPath = path
		case strings.Contains(stem, diarizedMarker):
			base := strings.Replace(stem, diarizedMarker, "", 1)
			pair := byBase[base]
			if pair == nil {
				pair = &Pair{Base: base}
				byBase[base] = pair
			}
			pair.DiarizedPath = path
		}
	}

	pairs := make([]Pair, 0, len(byBase))
	for _, pair := range byBase {
		pairs = append(pairs, *pair)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Base < pairs[j].Base })
	return pairs, nil
}
