package lnk

import (
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/andrewstucki/shortcut/internal"
)

type options struct {
	logger   *zap.Logger
	text     internal.Text
	codePage int
}

// Option configures Decode and Parse.
type Option func(*options)

// WithLogger logs every contained decoding error at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRawStrings disables the printable range normalization applied to every
// decoded string. UTF-16 strings are then decoded in full and 8-bit strings are
// decoded with the configured code page (Windows-1252 unless WithCodePage is
// given).
func WithRawStrings() Option {
	return func(o *options) {
		o.text.Normalize = false
	}
}

// WithCodePage selects the code page used for 8-bit strings when raw strings
// are enabled. Unknown code pages fall back to Windows-1252.
func WithCodePage(id int) Option {
	return func(o *options) {
		o.codePage = id
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		text:   internal.DefaultText,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.text.Charset = charmap.Windows1252
	if enc, ok := internal.CodePage(o.codePage); ok {
		o.text.Charset = enc
	}
	return o
}
