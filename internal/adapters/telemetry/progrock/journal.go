package progrock

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/zerr"
	"google.golang.org/protobuf/encoding/protojson"
)

// Journal is a progrock.Writer that appends every status update to w as one
// line of protojson.
type Journal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJournal creates a Journal writing to w.
func NewJournal(w io.Writer) *Journal {
	return &Journal{w: w}
}

// OpenJournal creates or truncates the journal file at path.
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrJournalOpenFailed.Error()), "path", path)
	}
	f, err := os.Create(path) //nolint:gosec // path derives from configuration
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrJournalOpenFailed.Error()), "path", path)
	}
	return NewJournal(f), nil
}

// WriteStatus implements progrock.Writer.
func (j *Journal) WriteStatus(update *progrock.StatusUpdate) error {
	data, err := protojson.Marshal(update)
	if err != nil {
		return zerr.Wrap(err, domain.ErrJournalWriteFailed.Error())
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := j.w.Write(append(data, '\n')); err != nil {
		return zerr.Wrap(err, domain.ErrJournalWriteFailed.Error())
	}
	return nil
}

// Close closes the underlying writer when it is closable.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if c, ok := j.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ progrock.Writer = (*Journal)(nil)
