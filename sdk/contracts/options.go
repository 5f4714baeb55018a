package contracts

// Options holds the configuration knobs shared by the transport and the
// translation engine.
type Options struct {
	Logger        Logger   // Logger for events and errors.
	LogLevel      LogLevel // Level of logging to use.
	ClientName    string   // Name under which the MIDI port is opened.
	MouseSpeed    int32    // Pointer nudge magnitude per Mouse-mode CC event.
	WrapThreshold uint8    // Consecutive-value jump treated as encoder wrap-around.
	NoteChannel   *uint8   // Optional 1-based channel filter for note events.
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithClientName sets the name under which the MIDI input port is opened.
func WithClientName(name string) Option {
	return func(opts *Options) {
		opts.ClientName = name
	}
}

// WithMouseSpeed sets the pointer nudge magnitude emitted per Mouse-mode
// CC event.
func WithMouseSpeed(speed int32) Option {
	return func(opts *Options) {
		opts.MouseSpeed = speed
	}
}

// WithWrapThreshold sets how large a jump between consecutive CC values is
// treated as encoder wrap-around rather than a real delta.
func WithWrapThreshold(threshold uint8) Option {
	return func(opts *Options) {
		opts.WrapThreshold = threshold
	}
}

// WithNoteChannel restricts note events to a single 1-based MIDI channel.
func WithNoteChannel(channel uint8) Option {
	return func(opts *Options) {
		opts.NoteChannel = &channel
	}
}
