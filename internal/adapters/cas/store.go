// Package cas implements the session store for encoded component results.
package cas

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/graphcache/internal/codec"
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/serialize"
	"go.trai.ch/zerr"
)

// Store implements ports.ResultStore using a file-per-session strategy.
//
// Every session is encoded with a freshly reset serializer, so a session file never
// refers to descriptions written in another session and can be decoded on its own.
type Store struct {
	codecs      *codecs
	compress    bool
	serializers sync.Pool
}

// Option configures a Store.
type Option func(*Store)

// WithoutCompression stores session bodies uncompressed.
func WithoutCompression() Option {
	return func(s *Store) {
		s.compress = false
	}
}

// NewStore creates a new ResultStore.
func NewStore(opts ...Option) (*Store, error) {
	c, err := newCodecs()
	if err != nil {
		return nil, err
	}
	s := &Store{
		codecs:   c,
		compress: true,
		serializers: sync.Pool{
			New: func() any { return codec.NewComponentResultSerializer(nil) },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// acquire returns a serializer with empty session state.
func (s *Store) acquire() *codec.ComponentResultSerializer {
	cs, _ := s.serializers.Get().(*codec.ComponentResultSerializer)
	if cs == nil {
		cs = codec.NewComponentResultSerializer(nil)
	}
	cs.Reset()
	return cs
}

func (s *Store) release(cs *codec.ComponentResultSerializer) {
	cs.Reset()
	s.serializers.Put(cs)
}

// Get reads back the results of a session.
func (s *Store) Get(root, session string) ([]domain.DetachedComponentResult, error) {
	if session == "" {
		return nil, domain.ErrInvalidSessionName
	}

	filename := s.getFilename(root, session)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(errors.Join(domain.ErrStoreReadFailed, err), "session", session)
	}

	f, err := s.codecs.decodeFrame(data)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "session", session), "file", filename)
	}
	if f.session != session {
		err := zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, "session name mismatch"), "session", session)
		return nil, zerr.With(err, "stored_session", f.session)
	}

	results, err := s.decodeBody(f.body)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrStoreDecodeFailed, err), "session", session)
	}
	return results, nil
}

func (s *Store) decodeBody(body []byte) ([]domain.DetachedComponentResult, error) {
	cs := s.acquire()
	defer s.release(cs)

	dec := serialize.NewDecoder(bytes.NewReader(body))
	count, err := dec.ReadSmallInt()
	if err != nil {
		return nil, err
	}

	results := make([]domain.DetachedComponentResult, 0, min(count, 1024))
	for i := range count {
		r, err := cs.Read(dec)
		if err != nil {
			return nil, zerr.With(err, "record", i)
		}
		results = append(results, r)
	}
	if rest := int64(len(body)) - dec.Position(); rest != 0 {
		return nil, zerr.With(dec.Malformed("trailing bytes after last record"), "trailing", rest)
	}
	return results, nil
}

// Put replaces the stored results of a session.
func (s *Store) Put(root, session string, results []domain.ComponentResult) error {
	if session == "" {
		return domain.ErrInvalidSessionName
	}

	body, err := s.encodeBody(results)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrStoreEncodeFailed, err), "session", session)
	}

	data, err := s.codecs.encodeFrame(session, body, s.compress)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrStoreEncodeFailed, err), "session", session)
	}

	filename := s.getFilename(root, session)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreCreateFailed, err), "dir", dir)
	}

	if err := writeFileAtomic(filename, data); err != nil {
		return zerr.With(errors.Join(domain.ErrStoreWriteFailed, err), "session", session)
	}
	return nil
}

func (s *Store) encodeBody(results []domain.ComponentResult) ([]byte, error) {
	cs := s.acquire()
	defer s.release(cs)

	var buf bytes.Buffer
	enc := serialize.NewEncoder(&buf)
	if err := enc.WriteSmallInt(len(results)); err != nil {
		return nil, err
	}
	for i, r := range results {
		if err := cs.Write(enc, r); err != nil {
			return nil, zerr.With(err, "record", i)
		}
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data next to filename and renames it into place,
// so readers never observe a partially written session.
func writeFileAtomic(filename string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func (s *Store) getFilename(root, session string) string {
	hash := sha256.Sum256([]byte(session))
	hexHash := hex.EncodeToString(hash[:])
	storeDir := filepath.Join(root, domain.DefaultStorePath())
	return filepath.Join(storeDir, hexHash+domain.SessionFileExt)
}
