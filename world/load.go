package world

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Format names a world file encoding.
type Format string

// Supported world file formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

//go:embed demo/mall.toml
var demoMall []byte

// Demo returns the built-in four-floor mall.
func Demo() *World {
	w, err := Decode(bytes.NewReader(demoMall), FormatTOML)
	if err != nil {
		panic(fmt.Sprintf("world: embedded demo is broken: %v", err))
	}
	return w
}

// Load reads a world file, choosing the decoder from the file extension
// (.toml, .json).
func Load(path string) (*World, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("world: open %s: %w", path, err)
	}
	defer f.Close()

	w, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("world: load %s: %w", path, err)
	}
	return w, nil
}

// Decode parses a world description from r and indexes it with New.
func Decode(r io.Reader, format Format) (*World, error) {
	var file File
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("world: decode toml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("world: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return New(file.Areas, file.Nodes)
}

// Encode writes w to out in the given format.
func Encode(out io.Writer, w *World, format Format) error {
	file := File{Areas: w.Areas(), Nodes: w.Nodes()}
	switch format {
	case FormatTOML:
		return toml.NewEncoder(out).Encode(file)
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(file)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}
