package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/sparsetable/internal/conv"
)

// Format: magic "SPTB" | version u8 | compression u8 | name len u8 | codec name |
// count u64 | payload len u32 | crc32c u32 | payload. Integers are little endian.
const (
	magic   = "SPTB"
	version = 1

	// fixed bytes before the codec name
	prefixSize = len(magic) + 3
	// fixed bytes after the codec name
	suffixSize = 8 + 4 + 4
)

var (
	// ErrCorrupt is returned when a blob is truncated, fails its checksum or
	// disagrees with its own header.
	ErrCorrupt = errors.New("snapshot: corrupt")
	// ErrUnsupportedVersion is returned for blobs written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	// ErrUnknownCodec is returned when the recorded codec is not built in.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
	// ErrUnknownCompression is returned for an unrecognized compression byte.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
)

type header struct {
	compression Compression
	codec       string
	count       uint64
	payloadLen  uint32
	checksum    uint32
}

func (h header) size() int {
	return prefixSize + len(h.codec) + suffixSize
}

func (h header) appendTo(dst []byte) ([]byte, error) {
	nameLen, err := conv.To[uint8](len(h.codec))
	if err != nil {
		return nil, fmt.Errorf("snapshot: codec name %q: %w", h.codec, err)
	}
	dst = append(dst, magic...)
	dst = append(dst, version, byte(h.compression), nameLen)
	dst = append(dst, h.codec...)
	dst = binary.LittleEndian.AppendUint64(dst, h.count)
	dst = binary.LittleEndian.AppendUint32(dst, h.payloadLen)
	dst = binary.LittleEndian.AppendUint32(dst, h.checksum)
	return dst, nil
}

// parseHeader decodes the header at the start of data and returns it together
// with the payload it describes.
func parseHeader(data []byte) (header, []byte, error) {
	var h header
	if len(data) < prefixSize {
		return h, nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	if !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return h, nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[:len(magic)])
	}
	if v := data[len(magic)]; v != version {
		return h, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	h.compression = Compression(data[len(magic)+1])
	nameLen := int(data[len(magic)+2])

	rest := data[prefixSize:]
	if len(rest) < nameLen+suffixSize {
		return h, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	h.codec = string(rest[:nameLen])
	rest = rest[nameLen:]
	h.count = binary.LittleEndian.Uint64(rest[0:])
	h.payloadLen = binary.LittleEndian.Uint32(rest[8:])
	h.checksum = binary.LittleEndian.Uint32(rest[12:])
	rest = rest[suffixSize:]

	n, err := conv.To[int](h.payloadLen)
	if err != nil {
		return h, nil, fmt.Errorf("%w: payload length: %w", ErrCorrupt, err)
	}
	if len(rest) != n {
		return h, nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(rest), n)
	}
	return h, rest, nil
}
