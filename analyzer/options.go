package analyzer

import "github.com/google/uuid"

// Config holds the analyzer configuration.
type Config struct {
	// Logger is used for logging decode activity (optional)
	Logger Logger

	// MessageHandler is called for every decoded frame (optional)
	MessageHandler MessageHandler

	// ErrorHandler is called for every frame that fails to decode (optional)
	ErrorHandler ErrorHandler

	// Reassembly enables joining chunked extended message payloads
	Reassembly bool

	// StopOnError makes Run return at the first frame that fails to decode
	StopOnError bool

	// Fallback decodes frames whose typed parse hits an unsupported variant
	// (such as an Augmented PDO) as generic messages instead of failing them
	Fallback bool

	// CRC makes Decode check and strip the CRC-32 that ends each frame
	CRC bool

	// SessionID identifies the run in logs and exported captures
	SessionID uuid.UUID
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Reassembly: true,
		Fallback:   true,
	}
}

// Option is a functional option for configuring the Analyzer.
type Option func(*Config)

// WithLogger sets a logger for analyzer operations.
//
// Example:
//
//	a := analyzer.New(analyzer.WithLogger(analyzer.NewSlogLogger(slog.Default())))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMessageHandler sets a callback invoked for every decoded frame.
//
// Example:
//
//	a := analyzer.New(analyzer.WithMessageHandler(func(r analyzer.Result) {
//	    fmt.Println(r.Frame)
//	}))
func WithMessageHandler(handler MessageHandler) Option {
	return func(c *Config) {
		c.MessageHandler = handler
	}
}

// WithErrorHandler sets a callback invoked for every frame that fails to decode.
//
// Example:
//
//	a := analyzer.New(analyzer.WithErrorHandler(func(err *analyzer.FrameError) {
//	    fmt.Fprintln(os.Stderr, err)
//	}))
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *Config) {
		c.ErrorHandler = handler
	}
}

// WithReassembly enables or disables chunked extended message reassembly.
// Default is true.
func WithReassembly(enabled bool) Option {
	return func(c *Config) {
		c.Reassembly = enabled
	}
}

// WithStopOnError makes Run stop at the first decode failure.
// Default is false: failures are counted and reported, and the run continues.
func WithStopOnError(stop bool) Option {
	return func(c *Config) {
		c.StopOnError = stop
	}
}

// WithFallback enables or disables generic decoding of frames with an
// unsupported variant. Default is true.
func WithFallback(enabled bool) Option {
	return func(c *Config) {
		c.Fallback = enabled
	}
}

// WithCRC enables checking the trailing CRC-32 of every frame, for sources
// that capture frames with their CRC. Default is false.
func WithCRC(enabled bool) Option {
	return func(c *Config) {
		c.CRC = enabled
	}
}

// WithSessionID sets the session ID. By default New generates a random one.
//
// Example:
//
//	a := analyzer.New(analyzer.WithSessionID(uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")))
func WithSessionID(id uuid.UUID) Option {
	return func(c *Config) {
		c.SessionID = id
	}
}
