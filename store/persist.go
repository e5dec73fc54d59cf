package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nats-io/nuid"

	"github.com/rskv-p/stuff/codec"
	"github.com/rskv-p/stuff/constant"
)

// Persist encodes v with the default options and writes it to path
// atomically. Readers see either the previous content or the new one.
func Persist(path string, v any) error {
	data, err := codec.Encode(v)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// Restore reads path and decodes its content into a new T.
func Restore[T any](path string, opts ...codec.Option) (T, error) {
	data, err := ReadFile(path)
	if err != nil {
		var zero T
		return zero, err
	}
	return codec.Decode[T](data, opts...)
}

// ReadFile reads the whole file, wrapping failures in constant.ErrIO.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	return data, nil
}

// WriteFile writes data to a uniquely named temp file in the target
// directory, syncs it and renames it over path. Concurrent writers race and
// the last rename wins.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constant.DirMode); err != nil {
		return ioError("create dir", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+nuid.Next()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constant.FileMode)
	if err != nil {
		return ioError("create", tmp, err)
	}

	if err := writeAndSync(f, data); err != nil {
		_ = os.Remove(tmp)
		return ioError("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return ioError("rename", path, err)
	}
	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	_, werr := f.Write(data)
	var serr error
	if werr == nil {
		serr = f.Sync()
	}
	return errors.Join(werr, serr, f.Close())
}

func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", constant.ErrIO, op, path, err)
}
