package dsw

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// manifStack is for two reasons ->
// * detect circular deps (not an error, but we need to know to avoid them)
// * avoid infinite recursion (allow up to MaxManifestRecursionDepth levels)
//
// Returns ErrManifestEmpty if and only if the first manifest in the stack is
// empty, otherwise it is not an error.
func recursiveUnmarshalResource(path string, manifStack []string) (data topLevelWorldData, err error) {
	path = filepath.Clean(path)
	enc := encodingFor(path)

	fileData, err := os.ReadFile(path)
	if err != nil {
		return topLevelWorldData{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	fileInfo, err := scanFileInfo(enc, fileData)
	if err != nil {
		return topLevelWorldData{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if strings.ToUpper(fileInfo.Format) != formatName {
		return topLevelWorldData{}, fmt.Errorf("%q: file does not have a 'format = \"DSW\"' entry", path)
	}

	switch strings.ToUpper(fileInfo.Type) {
	case typeData:
		unmarshaled, err := unmarshalWorldData(enc, fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("world data file %q: %w", path, err)
		}
		return unmarshaled, nil
	case typeManifest:
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		manif, err := unmarshalManifest(enc, fileData)
		if err != nil {
			return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, err)
		}

		// an empty manifest is only a problem for the very first one.
		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelWorldData{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)
		combined := topLevelWorldData{}
		processedFiles := 0

		for _, manifRelPath := range manif.Files {
			includedFilePath := filepath.Join(manifDir, manifRelPath)

			fileData, err := recursiveUnmarshalResource(includedFilePath, manifSubStack)
			if err != nil {
				// circular references are skipped, not fatal.
				if errors.Is(err, ErrManifestCircularRef) {
					continue
				}
				return topLevelWorldData{}, fmt.Errorf("in file referred to by manifest file:\n    %q\n%w", path, err)
			}

			if err := combined.merge(fileData); err != nil {
				return topLevelWorldData{}, fmt.Errorf("world data file %q: %w", includedFilePath, err)
			}
			processedFiles++
		}

		if len(manifStack) == 0 && processedFiles == 0 {
			return combined, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}
		return combined, nil
	default:
		return topLevelWorldData{}, fmt.Errorf("%q: file does not have 'type' entry set to either \"DATA\" or \"MANIFEST\"", path)
	}
}

func errDuplicateWorldKey(key, existing string) error {
	return fmt.Errorf("duplicate world %s; %s has already been defined as %q", key, key, existing)
}

// unmarshalWorldData unmarshals world data from the given bytes. It does not
// check the data beyond the header.
func unmarshalWorldData(enc encoding, data []byte) (topLevelWorldData, error) {
	var dsw topLevelWorldData
	if err := enc.unmarshal(data, &dsw); err != nil {
		return dsw, err
	}

	if strings.ToUpper(dsw.Format) != formatName {
		return dsw, fmt.Errorf("in header: 'format' key must exist and be set to 'DSW'")
	}
	if strings.ToUpper(dsw.Type) != typeData {
		return dsw, fmt.Errorf("in header: 'type' must exist and be set to 'DATA'")
	}

	return dsw, nil
}

// unmarshalManifest unmarshals a DSW manifest from the given bytes.
func unmarshalManifest(enc encoding, data []byte) (topLevelManifest, error) {
	var dsw topLevelManifest
	if err := enc.unmarshal(data, &dsw); err != nil {
		return dsw, err
	}

	if strings.ToUpper(dsw.Format) != formatName {
		return dsw, fmt.Errorf("in header: 'format' key must exist and be set to 'DSW'")
	}
	if strings.ToUpper(dsw.Type) != typeManifest {
		return dsw, fmt.Errorf("in header: 'type' must exist and be set to 'MANIFEST'")
	}

	return dsw, nil
}
