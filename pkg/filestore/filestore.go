// Package filestore uploads product images and returns their public URL.
package filestore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"sportshop/internal/apperror"
)

// ErrUnsupportedType is returned for files that are not jpg, jpeg or png.
var ErrUnsupportedType = fmt.Errorf("only jpg, jpeg and png images are accepted: %w", apperror.ErrValidation)

// FileStore accepts a binary payload and returns a publicly resolvable URL.
type FileStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

func imageExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedType
	}
	return ext, nil
}
