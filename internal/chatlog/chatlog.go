package chatlog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrBadRoomName is returned when a room name cannot be mapped to a log file.
var ErrBadRoomName = errors.New("room name must be a plain file name")

// Store keeps one append-only text file per room under a single directory.
// Appends to the same room are serialized; different rooms never contend.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex // room -> append/read lock
}

// New creates the log directory if it does not exist yet.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Append writes one record to the room's log. The file is opened, written and
// closed on every call; a failure on any step is returned to the caller and
// leaves the process running.
func (s *Store) Append(room string, line []byte) error {
	path, err := s.path(room)
	if err != nil {
		return err
	}

	lock := s.roomLock(room)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	record := make([]byte, 0, len(line)+1)
	record = append(record, line...)
	record = append(record, '\n')

	if _, err := f.Write(record); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Tail returns the last n non-blank lines of the room's log in append order.
// A room that was never written to yields an empty result, not an error.
func (s *Store) Tail(room string, n int) ([][]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	path, err := s.path(room)
	if err != nil {
		return nil, err
	}

	lock := s.roomLock(room)
	lock.Lock()
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines [][]byte
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func (s *Store) roomLock(room string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[room]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[room] = lock
	}
	return lock
}

// path rejects room names that would resolve outside the log directory.
func (s *Store) path(room string) (string, error) {
	if room == "" || room == "." || room == ".." || strings.ContainsAny(room, `/\`) {
		return "", ErrBadRoomName
	}
	return filepath.Join(s.dir, room+".txt"), nil
}
