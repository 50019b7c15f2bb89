package loader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// ReadDotenv parses the dotenv files and merges them into one map.
// Later files override earlier ones. Missing files are silently ignored to
// support optional .env.local patterns. The process environment is not
// modified.
func ReadDotenv(fsys afero.Fs, files ...string) (map[string]string, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	merged := make(map[string]string)
	for _, name := range files {
		vars, err := readDotenvFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		for k, v := range vars {
			merged[k] = v
		}
	}

	return merged, nil
}

func readDotenvFile(fsys afero.Fs, name string) (map[string]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", name, err)
	}

	return vars, nil
}
