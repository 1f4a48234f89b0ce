package mmapffi

import (
	"context"
	"errors"
)

// Use maps path, calls fn with the File and its bytes, and closes the File
// on every exit path, including a panic in fn. The Close error is joined to
// the returned error.
func Use(ctx context.Context, path string, fn func(f *File, data []byte) error, opts ...Option) (err error) {
	f, err := New(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	data, err := f.Map(ctx)
	if err != nil {
		return err
	}
	return fn(f, data)
}
