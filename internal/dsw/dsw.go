// Package dsw has functions for loading game data using the DSW (Dark Star
// World) file format. A DSW file is either TOML or YAML, chosen by file
// extension, and is used to define the ship that the engine runs.
package dsw

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/darkstar/internal/game"
	"gopkg.in/yaml.v3"
)

const MaxManifestRecursionDepth = 32

const (
	formatName   = "DSW"
	typeData     = "DATA"
	typeManifest = "MANIFEST"
)

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recursion level
	// of MaxManifestRecursionDepth is reached and an additional manifest is
	// then specified.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest includes a
	// chain of files that leads back to itself.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Manifest contains data loaded from a DSW manifest file.
type Manifest struct {
	Files []string
}

// FileInfo contains the header every DSW file must carry.
type FileInfo struct {
	Format string `toml:"format" yaml:"format"`
	Type   string `toml:"type" yaml:"type"`
}

// encoding is the syntax a DSW file is written in.
type encoding int

const (
	encTOML encoding = iota
	encYAML
)

func encodingFor(path string) encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return encYAML
	default:
		return encTOML
	}
}

func (enc encoding) unmarshal(data []byte, v interface{}) error {
	if enc == encYAML {
		return yaml.Unmarshal(data, v)
	}
	return toml.Unmarshal(data, v)
}

// LoadResourceBundle loads a world from the DSW file at path. The file's type
// is auto-detected; if it is a manifest, every file listed in it is loaded
// too, relative to the manifest. All data is combined before it is checked,
// so a record in one file may refer to records in any other.
func LoadResourceBundle(path string) (*game.World, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return nil, err
	}

	return parseWorldData(unmarshaled)
}

// LoadManifestFile loads manifest data from a DSW file.
func LoadManifestFile(path string) (manif Manifest, err error) {
	manifestData, err := os.ReadFile(path)
	if err != nil {
		return manif, err
	}

	unmarshaled, err := unmarshalManifest(encodingFor(path), manifestData)
	if err != nil {
		return manif, fmt.Errorf("%q: %w", path, err)
	}
	return Manifest{Files: unmarshaled.Files}, nil
}

// LoadWorldDataFile loads a world from a single DSW data file.
func LoadWorldDataFile(path string) (*game.World, error) {
	worldData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	unmarshaled, err := unmarshalWorldData(encodingFor(path), worldData)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return parseWorldData(unmarshaled)
}

// ScanFileInfo reads the DSW header from TOML data. Only the bytes before the
// first table header are parsed, so the rest of the file may be invalid.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-level table
	topLevelEnd := -1
	onNewLine := true
	for b := range data {
		if onNewLine && data[b] == '[' {
			topLevelEnd = b
			break
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}

// scanFileInfo reads the header of a file in either encoding.
func scanFileInfo(enc encoding, data []byte) (FileInfo, error) {
	if enc == encTOML {
		return ScanFileInfo(data)
	}

	// yaml has no cheap prefix to cut at; decoding into the header struct
	// skips every other key.
	var info FileInfo
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&info); err != nil {
		return info, err
	}
	return info, nil
}
