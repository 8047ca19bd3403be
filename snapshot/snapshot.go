package snapshot

import (
	"cmp"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/sparsetable"
	"github.com/hupe1980/sparsetable/blobstore"
	"github.com/hupe1980/sparsetable/codec"
	"github.com/hupe1980/sparsetable/internal/conv"
	"github.com/hupe1980/sparsetable/internal/hash"
	"github.com/hupe1980/sparsetable/resource"
)

// Encode serializes values into a self-describing snapshot blob.
func Encode[T any](values []T, optFns ...Option) ([]byte, error) {
	o := newOptions(optFns)

	raw, err := codec.Encode(o.codec, values)
	if err != nil {
		return nil, err
	}
	payload, err := compress(o.compression, raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot: compress %s: %w", o.compression, err)
	}

	count, err := conv.To[uint64](len(values))
	if err != nil {
		return nil, err
	}
	payloadLen, err := conv.To[uint32](len(payload))
	if err != nil {
		return nil, fmt.Errorf("snapshot: payload of %d bytes: %w", len(payload), err)
	}

	h := header{
		compression: o.compression,
		codec:       o.codec.Name(),
		count:       count,
		payloadLen:  payloadLen,
		checksum:    hash.CRC32C(payload),
	}
	out, err := h.appendTo(make([]byte, 0, h.size()+len(payload)))
	if err != nil {
		return nil, err
	}
	return append(out, payload...), nil
}

// Decode parses a snapshot blob produced by Encode.
func Decode[T any](data []byte) ([]T, error) {
	h, payload, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := hash.Verify(payload, h.checksum); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	c, ok := codec.ByName(h.codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, h.codec)
	}
	raw, err := decompress(h.compression, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress %s: %w", ErrCorrupt, h.compression, err)
	}

	values, err := codec.Decode[T](c, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if uint64(len(values)) != h.count {
		return nil, fmt.Errorf("%w: decoded %d values, header says %d", ErrCorrupt, len(values), h.count)
	}
	return values, nil
}

// Write encodes values and writes the blob to w.
func Write[T any](ctx context.Context, w io.Writer, values []T, optFns ...Option) error {
	o := newOptions(optFns)
	data, err := Encode(values, optFns...)
	if err != nil {
		return err
	}
	if o.controller != nil {
		w = resource.NewRateLimitedWriter(ctx, w, o.controller)
	}
	_, err = w.Write(data)
	return err
}

// Read reads a whole blob from r and decodes it.
func Read[T any](ctx context.Context, r io.Reader, optFns ...Option) ([]T, error) {
	o := newOptions(optFns)
	if o.controller != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.controller)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode[T](data)
}

// Save encodes values and stores them under name. With a resource
// controller the blob is charged against the IO limit before it is written.
func Save[T any](ctx context.Context, store blobstore.BlobStore, name string, values []T, optFns ...Option) error {
	o := newOptions(optFns)
	data, err := Encode(values, optFns...)
	if err != nil {
		return err
	}
	return putBlob(ctx, store, name, data, o.controller)
}

// Load reads the blob stored under name and decodes it. With a resource
// controller the blob is fetched in chunks paced by the IO limit.
func Load[T any](ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) ([]T, error) {
	o := newOptions(optFns)
	data, err := readBlob(ctx, store, name, o.controller)
	if err != nil {
		return nil, err
	}
	return Decode[T](data)
}

// LoadMin loads a snapshot and rebuilds a range-minimum table from it.
func LoadMin[T cmp.Ordered](ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*sparsetable.OverlapIndexedTable[T], error) {
	values, err := Load[T](ctx, store, name, optFns...)
	if err != nil {
		return nil, err
	}
	return sparsetable.NewMin(values, newOptions(optFns).tableOptions...)
}

// LoadMax loads a snapshot and rebuilds a range-maximum table from it.
func LoadMax[T cmp.Ordered](ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*sparsetable.OverlapIndexedTable[T], error) {
	values, err := Load[T](ctx, store, name, optFns...)
	if err != nil {
		return nil, err
	}
	return sparsetable.NewMax(values, newOptions(optFns).tableOptions...)
}
