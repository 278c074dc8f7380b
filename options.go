package eventbag

import "go.uber.org/zap"

type config struct {
	name   string
	logger *zap.Logger
}

// Option configures a Bag or BagOnce.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithName labels the bag in log output.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
