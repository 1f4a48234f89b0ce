// Package mmap wraps a raw mapped region in an opaque handle.
//
// # Overview
//
// The region itself is created and destroyed elsewhere, through whatever C
// library the caller has bound. This package only holds the start address and
// length returned by mmap(2) and turns them into zero-copy byte slices.
//
// # Usage
//
//	v := mmap.NewView(addr, length)
//
//	// Zero-copy access to the mapped bytes
//	data := v.Bytes()
//
//	// A bounds-checked window into the mapping
//	window, _ := v.Region(offset, size)
//
// # Ownership
//
// A View does not own the memory. The zero View is the invalid handle and
// yields nil slices. Slices obtained from a View must not be used after the
// owner unmaps the region.
package mmap
