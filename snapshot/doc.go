// Package snapshot persists the source sequence of a sparse table.
//
// Tables are immutable and cheap to rebuild relative to the IO needed to
// fetch their input, so a snapshot stores only the sequence. Loading always
// constructs a fresh table.
//
//	err := snapshot.Save(ctx, store, "latency", tbl.Values(),
//	    snapshot.WithCompression(snapshot.CompressionLZ4))
//
//	tbl, err := snapshot.LoadMin[int64](ctx, store, "latency")
//
// Each blob carries a header naming its codec and compression, the element
// count and a CRC32-C of the payload. Decode rejects anything that does not
// check out with an error matching ErrCorrupt.
package snapshot
