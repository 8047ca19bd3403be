package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/sparsetable/blobstore"
	"github.com/hupe1980/sparsetable/internal/conv"
	"github.com/hupe1980/sparsetable/resource"
)

// maxReadChunk bounds a single ranged read against a blob store.
const maxReadChunk = 1 << 20

// readChunkSize never exceeds one second of IO budget, so every chunk is
// charged with a single limiter wait before it is fetched.
func readChunkSize(rc *resource.Controller) int {
	if limit := rc.IOLimit(); limit > 0 && limit < maxReadChunk {
		return int(limit)
	}
	return maxReadChunk
}

// readBlob fetches the named blob in chunks, charging rc before each ReadAt.
// Without a controller it falls back to blobstore.ReadAll.
func readBlob(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) ([]byte, error) {
	if rc.IOLimit() == 0 {
		return blobstore.ReadAll(ctx, store, name)
	}

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	size, err := conv.To[int](b.Size())
	if err != nil {
		return nil, fmt.Errorf("snapshot: blob %q size: %w", name, err)
	}

	out := make([]byte, size)
	chunk := readChunkSize(rc)
	for off := 0; off < size; off += chunk {
		end := min(off+chunk, size)
		if err := rc.AcquireIO(ctx, end-off); err != nil {
			return nil, err
		}
		n, err := b.ReadAt(ctx, out[off:end], int64(off))
		if err != nil && !(errors.Is(err, io.EOF) && n == end-off) {
			return nil, fmt.Errorf("snapshot: read %q at %d: %w", name, off, err)
		}
		if n != end-off {
			return nil, fmt.Errorf("snapshot: read %q at %d: got %d of %d bytes", name, off, n, end-off)
		}
	}
	return out, nil
}

// putBlob charges the whole blob against rc and then stores it.
func putBlob(ctx context.Context, store blobstore.BlobStore, name string, data []byte, rc *resource.Controller) error {
	if err := rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("snapshot: put %q: %w", name, err)
	}
	return nil
}
