package voice

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const dedupDir = ".spoken"

// DedupTracker remembers which text each audio file was synthesized from.
// Markers live in a hidden directory next to the audio files.
type DedupTracker struct {
	dir string
}

// NewDedupTracker creates a tracker for audio files written to outDir.
func NewDedupTracker(outDir string) *DedupTracker {
	return &DedupTracker{dir: filepath.Join(outDir, dedupDir)}
}

// IsDuplicate returns true if audioPath exists and was synthesized from
// the same key.
func (dt *DedupTracker) IsDuplicate(audioPath, key string) bool {
	if _, err := os.Stat(audioPath); err != nil {
		return false
	}
	stored, err := os.ReadFile(dt.markerPath(audioPath))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(stored)) == hashText(key)
}

// Record stores the key hash for audioPath.
func (dt *DedupTracker) Record(audioPath, key string) {
	if err := os.MkdirAll(dt.dir, 0755); err != nil {
		log.Debug().Err(err).Msg("Failed to create dedup directory")
		return
	}
	if err := os.WriteFile(dt.markerPath(audioPath), []byte(hashText(key)), 0644); err != nil {
		log.Debug().Err(err).Msg("Failed to write dedup marker")
	}
}

// Forget drops the marker for audioPath; called before the file is rewritten.
func (dt *DedupTracker) Forget(audioPath string) {
	if err := os.Remove(dt.markerPath(audioPath)); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("Failed to remove dedup marker")
	}
}

func (dt *DedupTracker) markerPath(audioPath string) string {
	return filepath.Join(dt.dir, filepath.Base(audioPath)+".sha256")
}

// fingerprint covers everything that changes the synthesized audio
func fingerprint(provider string, opts SynthesizeOptions, text string) string {
	return strings.Join([]string{
		provider, opts.Voice, opts.Model, opts.Format, opts.Engine,
		fmt.Sprintf("%.2f", opts.Speed), text,
	}, "\x00")
}

func hashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", h)
}
