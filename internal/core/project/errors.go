package project

import "errors"

var (
	ErrInvalidManifest   = errors.New("invalid manifest")
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
	ErrManifestNotFound  = errors.New("manifest not found")
)
