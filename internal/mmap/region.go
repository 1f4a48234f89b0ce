package mmap

// Region returns the bytes [offset, offset+size) of the view.
// It does not own the memory; the owner of the View does.
func (v View) Region(offset, size int) ([]byte, error) {
	if !v.Valid() {
		return nil, ErrUnmapped
	}
	if offset < 0 || size < 0 || offset+size > v.size {
		return nil, ErrOutOfBounds
	}
	return v.Bytes()[offset : offset+size], nil
}
