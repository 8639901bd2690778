package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("archive is empty")

// LoadFile loads the given file and performs decompression if
// necessary. Archives (.zip and .7z) yield their first file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filepath.Ext(filename), data)
}

// Decompress decodes data according to the file extension ext. Data
// with an extension that isn't recognised as compressed is returned
// as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	var (
		decoder io.ReadCloser
		err     error
	)
	switch strings.ToLower(ext) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		var zr *zip.Reader
		zr, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			break
		}
		if len(zr.File) == 0 {
			return nil, ErrEmptyArchive
		}
		decoder, err = zr.File[0].Open()
	case ".7z":
		var r *sevenzip.Reader
		r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			break
		}
		if len(r.File) == 0 {
			return nil, ErrEmptyArchive
		}
		decoder, err = r.File[0].Open()
	default:
		// .gb, .bin and anything unknown
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", ext, err)
	}
	defer decoder.Close()

	// read the decompressed data into a byte slice
	out, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", ext, err)
	}
	return out, nil
}
