package midkb

import (
	"github.com/korewaChino/midkb/internal/logger"
	"github.com/korewaChino/midkb/sdk/contracts"
)

// Tunable defaults. The wrap threshold is the consecutive-value jump beyond
// which a CC delta is read as encoder wrap-around rather than a real step;
// 64 is half the value range, splitting the two interpretations evenly.
const (
	DefaultClientName    = "midkb"
	DefaultMouseSpeed    = 10
	DefaultWrapThreshold = 64
)

// applyDefaultOptions sets default values for Options not explicitly
// provided.
func applyDefaultOptions(opts ...contracts.Option) contracts.Options {
	options := &contracts.Options{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.ClientName == "" {
		options.ClientName = DefaultClientName
	}
	if options.MouseSpeed == 0 {
		options.MouseSpeed = DefaultMouseSpeed
	}
	if options.WrapThreshold == 0 {
		options.WrapThreshold = DefaultWrapThreshold
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options
}
