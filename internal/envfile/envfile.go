// Package envfile loads API keys and endpoints from dotenv files.
// Variables already set to a non-empty value in the environment win.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a dotenv file and sets any variables that are unset or empty.
// A missing file is not an error.
func Load(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, value := range values {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// LoadAll loads each path in order; earlier files take precedence because
// later ones never overwrite a variable that is already set.
func LoadAll(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if err := Load(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
