package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local stores attachment files on disk, one directory per ticket. Stored
// names are prefixed with a random id so uploads never collide or escape
// the ticket directory.
type Local struct {
	root string
}

// NewLocal creates the store rooted at dir.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Local{root: dir}, nil
}

func (l *Local) ticketDir(ticketID int64) string {
	return filepath.Join(l.root, fmt.Sprintf("ticket_%d", ticketID))
}

// Save writes the content under the ticket's directory and returns the
// stored name to persist alongside the message.
func (l *Local) Save(ticketID int64, filename string, r io.Reader) (string, error) {
	dir := l.ticketDir(ticketID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create ticket dir: %w", err)
	}

	storedName := uuid.NewString() + "_" + sanitize(filename)
	f, err := os.Create(filepath.Join(dir, storedName))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return storedName, nil
}

// Open returns the stored file for streaming.
func (l *Local) Open(ticketID int64, storedName string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(l.ticketDir(ticketID), sanitize(storedName)))
}

// Remove deletes a stored file; missing files are not an error.
func (l *Local) Remove(ticketID int64, storedName string) error {
	err := os.Remove(filepath.Join(l.ticketDir(ticketID), sanitize(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitize strips any path components from a client-supplied name.
func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "file"
	}
	return name
}
