package internal

import "io"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	stdout io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithStdout redirects the startup banner, which goes to os.Stdout by
// default.
func WithStdout(w io.Writer) Option {
	return func(a *application) {
		a.stdout = w
	}
}
