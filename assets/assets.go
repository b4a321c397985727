// Package assets resolves sound files by assets-relative path, preferring
// files on disk under Dir over the embedded copy.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/splashfx/sound"
)

//go:embed *
var assetsFS embed.FS

var Dir = "assets"

// LoadFile reads an asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	if b, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return b, nil
	}
	return assetsFS.ReadFile(clean)
}

// LoadClip decodes a wav asset into a clip named name.
func LoadClip(name, path string) (*sound.Clip, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	clip, err := sound.DecodeWAV(name, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return clip, nil
}

func cleanAssetPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	return strings.TrimPrefix(s, "/")
}
