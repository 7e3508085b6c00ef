package assets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/svgphysics/svgdoc"
)

//go:embed *.svg
var assetsFS embed.FS

// DemoScene is the document loaded when no -svg file is given.
const DemoScene = "scene.svg"

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadDocument parses the SVG at path, reading it from disk when it exists
// and from the embedded assets otherwise. An empty path loads DemoScene.
func LoadDocument(path string) (*svgdoc.Document, error) {
	if path == "" {
		path = DemoScene
	}
	if _, err := os.Stat(path); err == nil {
		return svgdoc.Load(path)
	}
	b, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", path, err)
	}
	return svgdoc.Parse(b)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
