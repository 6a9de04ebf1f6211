//go:build !((linux && cgo) || (darwin && cgo) || windows)

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard needs cgo on this platform")

func WriteImage(image.Image) error {
	return errUnsupported
}
