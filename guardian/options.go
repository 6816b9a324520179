package guardian

import (
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/gsg"
)

// Option configures a Guardian during creation.
//
// Example:
//
//	g, err := guardian.New(b,
//		guardian.WithClearColor(gputypes.ColorBlack),
//		guardian.WithTexturePoolSize(64),
//	)
type Option func(*options)

type options struct {
	logger     *slog.Logger
	clearColor gputypes.Color
	poolSize   int
}

// defaultOptions returns the default guardian options.
func defaultOptions() options {
	return options{
		clearColor: gputypes.ColorBlack,
	}
}

// WithLogger sets the logger of the guardian. By default the guardian
// logs through gsg.Logger at creation time.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClearColor sets the color clear value Reset restores. Only the red,
// green and blue components are used; the reset alpha is always 0.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithTexturePoolSize limits the number of textures the guardian's
// TexturePool keeps. 0 means unlimited.
func WithTexturePoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = max(n, 0)
	}
}

func (o *options) loggerOrDefault() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return gsg.Logger()
}
