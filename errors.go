package blaster

import "errors"

var (
	ErrSceneNotRegistered = errors.New("scene not registered")
	ErrTextureNotLoaded   = errors.New("texture not loaded")
	ErrUnsupportedImage   = errors.New("unsupported image format")
)
