package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadSave reads the battery save at path. A missing file is not an
// error, nil is returned so the cartridge RAM is left as it is.
func LoadSave(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return b, err
}

// WriteSave writes data to path through a temporary file in the same
// directory, which is renamed over path once fully written. An
// interrupted write leaves the previous save intact.
func WriteSave(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), fmt.Sprintf("%s.*", filepath.Base(path)))
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write to temporary save file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}
