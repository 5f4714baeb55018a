//go:build !linux

package uinput

import (
	"errors"

	"github.com/korewaChino/midkb/sdk/contracts"
)

// ErrUnsupportedOS is returned on systems without the uinput subsystem.
var ErrUnsupportedOS = errors.New("virtual input devices require Linux uinput")

// New is not available outside Linux. It fails rather than returning a stub:
// silently dropping output actions would leave the translation engine and
// the host input state out of sync.
func New(name string) (contracts.OutputDevice, error) {
	return nil, ErrUnsupportedOS
}
