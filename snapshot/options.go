package snapshot

import (
	"github.com/hupe1980/sparsetable"
	"github.com/hupe1980/sparsetable/codec"
	"github.com/hupe1980/sparsetable/resource"
)

type options struct {
	codec        codec.Codec
	compression  Compression
	controller   *resource.Controller
	tableOptions []sparsetable.Option
}

// Option configures encoding, decoding and table reconstruction.
type Option func(*options)

func newOptions(optFns []Option) options {
	o := options{
		codec:       codec.Default,
		compression: CompressionZSTD,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.codec == nil {
		o.codec = codec.Default
	}
	return o
}

// WithCodec sets the codec used to encode values. Decoding always uses the
// codec recorded in the blob.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithCompression sets the payload compression. The default is zstd.
func WithCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithResourceController paces snapshot IO with the controller's IO limit.
// Load charges each ranged read against the blob store, Save charges the
// blob before it is put, and Write/Read charge the stream as it moves.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) { o.controller = rc }
}

// WithTableOptions passes options to the table constructors used by
// LoadMin and LoadMax.
func WithTableOptions(optFns ...sparsetable.Option) Option {
	return func(o *options) { o.tableOptions = append(o.tableOptions, optFns...) }
}
