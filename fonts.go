package feedbackcards

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// faceKey identifies a cached face by weight and size.
type faceKey struct {
	bold bool
	size float64
}

// FontSet holds the two TrueType fonts of a card, bold for the author line
// and avatar letter, regular for the feedback body, plus a face cache per
// size. A font that cannot be loaded degrades to the built-in bitmap face so
// a batch never aborts over fonts.
type FontSet struct {
	mu    sync.RWMutex
	bold  *truetype.Font
	reg   *truetype.Font
	faces map[faceKey]font.Face

	degraded bool
}

// maxFontScanDepth limits recursive traversal of the system font directories.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

// LoadFonts resolves the configured font paths. An empty path triggers a scan
// of the system font directories for a stock sans-serif.
func LoadFonts(cfg *Config, log *zap.Logger) *FontSet {
	if log == nil {
		log = zap.NewNop()
	}
	fs := &FontSet{faces: make(map[faceKey]font.Face)}
	fs.bold = resolveFont(cfg.BoldFontPath, boldFontCandidates, log)
	fs.reg = resolveFont(cfg.RegularFontPath, regularFontCandidates, log)
	if fs.bold == nil || fs.reg == nil {
		fs.degraded = true
		log.Warn("TrueType fonts unavailable, using built-in bitmap face",
			zap.Bool("bold_loaded", fs.bold != nil),
			zap.Bool("regular_loaded", fs.reg != nil))
	}
	return fs
}

// Degraded reports whether any lookup will fall back to the bitmap face.
func (fs *FontSet) Degraded() bool { return fs.degraded }

// Face returns a render face of the requested weight and size. The same face
// is used for measuring and drawing, so wrapped lines cannot overflow the
// card.
func (fs *FontSet) Face(bold bool, size float64) font.Face {
	key := faceKey{bold: bold, size: size}

	fs.mu.RLock()
	if face, ok := fs.faces[key]; ok {
		fs.mu.RUnlock()
		return face
	}
	fs.mu.RUnlock()

	f := fs.reg
	if bold {
		f = fs.bold
	}
	var face font.Face
	if f == nil {
		face = basicfont.Face7x13
	} else {
		face = truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	fs.mu.Lock()
	fs.faces[key] = face
	fs.mu.Unlock()
	return face
}

func resolveFont(path string, candidates []string, log *zap.Logger) *truetype.Font {
	if path == "" {
		path = findSystemFont(candidates)
		if path == "" {
			return nil
		}
	}
	f, err := loadTTF(path)
	if err != nil {
		log.Warn("font not usable", zap.String("path", path), zap.Error(err))
		return nil
	}
	log.Debug("loaded font", zap.String("path", path))
	return f
}

// loadTTF reads and parses a TrueType font file.
func loadTTF(path string) (*truetype.Font, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFontFileSize {
		return nil, fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Stock sans-serif files to look for when no path is configured, in
// preference order. Filenames are compared lowercased.
var (
	boldFontCandidates = []string{
		"dejavusans-bold.ttf",
		"liberationsans-bold.ttf",
		"freesansbold.ttf",
		"notosans-bold.ttf",
		"arialbd.ttf",
		"arial bold.ttf",
	}
	regularFontCandidates = []string{
		"dejavusans.ttf",
		"liberationsans-regular.ttf",
		"freesans.ttf",
		"notosans-regular.ttf",
		"arial.ttf",
	}
)

func findSystemFont(candidates []string) string {
	index := make(map[string]string)
	for _, dir := range systemFontDirs() {
		indexFontDir(dir, 0, index)
	}
	for _, name := range candidates {
		if path, ok := index[name]; ok {
			return path
		}
	}
	return ""
}

// indexFontDir maps lowercased .ttf filenames to their first-seen path.
func indexFontDir(dir string, depth int, index map[string]string) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			indexFontDir(filepath.Join(dir, entry.Name()), depth+1, index)
			continue
		}
		lower := strings.ToLower(entry.Name())
		if !strings.HasSuffix(lower, ".ttf") {
			continue
		}
		if _, ok := index[lower]; !ok {
			index[lower] = filepath.Join(dir, entry.Name())
		}
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		dirs := []string{filepath.Join(windir, "Fonts")}
		if localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default: // linux, freebsd, etc.
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
