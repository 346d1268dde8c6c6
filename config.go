package recordkit

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Config holds resolver-level configuration
type Config struct {
	// TableName is the store table records live in
	TableName string

	// Region and Endpoint configure the DynamoDB client. An empty Endpoint
	// uses the SDK default resolution.
	Region   string
	Endpoint string

	// TimestampLayout formats createdAt. Must keep at least second precision.
	TimestampLayout string
}

// DefaultConfig provides sensible defaults
var DefaultConfig = Config{
	TableName:       "records",
	TimestampLayout: TimestampLayout,
}

// ConfigFromEnv reads RECORDS_TABLE, AWS_REGION and DYNAMODB_ENDPOINT on top
// of DefaultConfig
func ConfigFromEnv() Config {
	cfg := DefaultConfig
	if v := os.Getenv("RECORDS_TABLE"); v != "" {
		cfg.TableName = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Region = v
	}
	if v := os.Getenv("DYNAMODB_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	return cfg
}

// normalize fills empty fields from DefaultConfig
func (c Config) normalize() Config {
	if c.TableName == "" {
		c.TableName = DefaultConfig.TableName
	}
	if c.TimestampLayout == "" {
		c.TimestampLayout = DefaultConfig.TimestampLayout
	}
	return c
}

// Option allows functional configuration of the resolver and its builder
type Option func(*options)

type options struct {
	config     Config
	logger     zerolog.Logger
	clock      Clock
	serializer Serializer
}

func defaultOptions() *options {
	return &options{
		config: DefaultConfig,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger().
			Level(zerolog.InfoLevel),
		clock:      SystemClock(),
		serializer: AttributeValueSerializer{},
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	o.config = o.config.normalize()
	return o
}

// WithConfig sets a custom configuration
func WithConfig(config Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// WithTableName sets the target table
func WithTableName(name string) Option {
	return func(o *options) {
		o.config.TableName = name
	}
}

// WithLogger sets a custom logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock sets the clock used to assign createdAt
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithSerializer sets the attribute-value serializer
func WithSerializer(serializer Serializer) Option {
	return func(o *options) {
		if serializer != nil {
			o.serializer = serializer
		}
	}
}
