// Package mmap maps snapshot files read-only into memory.
//
// LocalStore opens blobs through this package so that decoding a snapshot
// reads directly from the page cache instead of copying through a buffer.
//
//	m, err := mmap.Open(path)
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// On Unix the file is mapped with mmap(2) and hints are passed to madvise(2).
// Other platforms read the file into memory and ignore hints.
//
// A Mapping is safe for concurrent reads. Close is idempotent; callers must
// not use slices returned by Bytes after Close.
package mmap
