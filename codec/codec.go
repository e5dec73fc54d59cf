// file: stuff/codec/codec.go
package codec

import (
	"time"

	"github.com/rskv-p/stuff/constant"
)

// ----------------------------------------------------
// Strategies
// ----------------------------------------------------

type dateKind int

const (
	dateDeferred dateKind = iota
	dateISO8601
	dateEpochSeconds
	dateEpochMillis
	dateFormatted
)

// DateStrategy controls how time.Time values are written and read.
type DateStrategy struct {
	kind   dateKind
	layout string
}

var (
	// DateDeferred leaves time.Time to its own MarshalJSON (RFC 3339 with nanoseconds).
	DateDeferred = DateStrategy{kind: dateDeferred}
	// DateISO8601 writes RFC 3339 in UTC with second precision.
	DateISO8601 = DateStrategy{kind: dateISO8601, layout: time.RFC3339}
	// DateEpochSeconds writes seconds since the Unix epoch, keeping fractions.
	DateEpochSeconds = DateStrategy{kind: dateEpochSeconds}
	// DateEpochMillis writes whole milliseconds since the Unix epoch.
	DateEpochMillis = DateStrategy{kind: dateEpochMillis}
)

// DateFormat writes dates as strings using a Go time layout.
func DateFormat(layout string) DateStrategy {
	return DateStrategy{kind: dateFormatted, layout: layout}
}

func (d DateStrategy) String() string {
	switch d.kind {
	case dateISO8601:
		return "iso8601"
	case dateEpochSeconds:
		return "epoch_seconds"
	case dateEpochMillis:
		return "epoch_millis"
	case dateFormatted:
		return "format(" + d.layout + ")"
	default:
		return "deferred"
	}
}

// BinaryStrategy controls how []byte values are written and read.
type BinaryStrategy int

const (
	BinaryBase64 BinaryStrategy = iota
	BinaryRaw
)

// KeyCasing controls conversion between Go field names and JSON keys.
type KeyCasing int

const (
	KeysAsIs KeyCasing = iota
	// KeysSnakeCase writes snake_case keys and maps them back to camelCase on decode.
	KeysSnakeCase
)

// NonFinitePolicy controls NaN and ±Inf handling.
type NonFinitePolicy int

const (
	NonFiniteFail NonFinitePolicy = iota
	NonFiniteAsString
)

// ----------------------------------------------------
// Options
// ----------------------------------------------------

// Options holds per-call settings. The zero value is not valid; use NewOptions.
type Options struct {
	Pretty    bool
	Dates     DateStrategy
	Binary    BinaryStrategy
	Keys      KeyCasing
	NonFinite NonFinitePolicy
	KeyPath   string
	UseNumber bool
	Engine    Engine
}

// Option is a functional codec setting.
type Option func(*Options)

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Dates:  DateDeferred,
		Binary: BinaryBase64,
		Engine: StdEngine{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.Engine == nil {
		o.Engine = StdEngine{}
	}
	return o
}

// WithPretty toggles indented output.
func WithPretty(pretty bool) Option {
	return func(o *Options) { o.Pretty = pretty }
}

// Pretty is shorthand for WithPretty(true).
func Pretty() Option { return WithPretty(true) }

func WithDates(d DateStrategy) Option {
	return func(o *Options) { o.Dates = d }
}

func WithBinary(b BinaryStrategy) Option {
	return func(o *Options) { o.Binary = b }
}

func WithKeys(k KeyCasing) Option {
	return func(o *Options) { o.Keys = k }
}

func WithNonFinite(p NonFinitePolicy) Option {
	return func(o *Options) { o.NonFinite = p }
}

// WithKeyPath selects a nested value ("user.profile") before decoding.
func WithKeyPath(path string) Option {
	return func(o *Options) { o.KeyPath = path }
}

// WithUseNumber keeps json.Number for numbers decoded into interface values.
func WithUseNumber() Option {
	return func(o *Options) { o.UseNumber = true }
}

func WithEngine(e Engine) Option {
	return func(o *Options) { o.Engine = e }
}

func (o *Options) indent() string {
	if o.Pretty {
		return constant.JSONIndent
	}
	return ""
}
