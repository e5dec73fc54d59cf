package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rskv-p/stuff/codec"
	"github.com/rskv-p/stuff/constant"
	"github.com/rskv-p/stuff/logger"
)

// Store saves and loads named JSON documents in the cache and documents
// directories.
type Store struct {
	dirs  Dirs
	codec codec.JSON
	log   *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithDirs overrides the resolved directories.
func WithDirs(d Dirs) Option {
	return func(s *Store) { s.dirs = d }
}

// WithCodec sets the codec used by Save and Load.
func WithCodec(c codec.JSON) Option {
	return func(s *Store) { s.codec = c }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Store over DefaultDirs unless WithDirs says otherwise.
func New(opts ...Option) *Store {
	s := &Store{
		dirs:  DefaultDirs(constant.DefaultAppName),
		codec: codec.NewJSON(),
		log:   logger.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) Dirs() Dirs { return s.dirs }

// Path returns the file backing name in loc.
func (s *Store) Path(loc Location, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	dir, err := s.dirs.For(loc)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// Save encodes v and writes it atomically as name in loc.
func (s *Store) Save(loc Location, name string, v any) error {
	path, err := s.Path(loc, name)
	if err != nil {
		s.log.Warn(fmt.Errorf("store: save %s/%s: %w", loc, name, err))
		return err
	}
	data, err := s.codec.Marshal(v)
	if err != nil {
		s.log.Warn(fmt.Errorf("store: encode %s: %w", path, err))
		return err
	}
	if err := WriteFile(path, data); err != nil {
		s.log.Warn(err)
		return err
	}
	s.log.Debug(fmt.Sprintf("store: saved %s (%d bytes)", path, len(data)))
	return nil
}

// SaveRaw validates data as JSON and writes it unchanged as name in loc.
func (s *Store) SaveRaw(loc Location, name string, data []byte) error {
	if _, err := codec.Decode[any](data); err != nil {
		return err
	}
	path, err := s.Path(loc, name)
	if err != nil {
		return err
	}
	if err := WriteFile(path, data); err != nil {
		s.log.Warn(err)
		return err
	}
	s.log.Debug(fmt.Sprintf("store: saved %s (%d bytes)", path, len(data)))
	return nil
}

// Load reads name from loc and decodes it into out.
func (s *Store) Load(loc Location, name string, out any) error {
	data, err := s.LoadRaw(loc, name)
	if err != nil {
		return err
	}
	if err := s.codec.Unmarshal(data, out); err != nil {
		s.log.Warn(fmt.Errorf("store: decode %s/%s: %w", loc, name, err))
		return err
	}
	return nil
}

// LoadRaw returns the stored bytes of name in loc.
func (s *Store) LoadRaw(loc Location, name string) ([]byte, error) {
	path, err := s.Path(loc, name)
	if err != nil {
		return nil, err
	}
	data, err := ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn(err)
		}
		return nil, err
	}
	s.log.Debug(fmt.Sprintf("store: loaded %s (%d bytes)", path, len(data)))
	return data, nil
}

// Remove deletes name from loc. Removing a missing document is not an error.
func (s *Store) Remove(loc Location, name string) error {
	path, err := s.Path(loc, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioError("remove", path, err)
	}
	return nil
}
