package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"youthmind-portal/internal/apperr"
)

// Kind identifies the role of a stored CSV artifact.
type Kind string

const (
	KindRaw     Kind = "raw"
	KindCleaned Kind = "cleaned"
	KindHistory Kind = "history"
)

// filePrefixes keeps the artifact naming scheme the dashboard has always
// used, so operators can tell raw, cleaned and history files apart in the
// upload directory.
var filePrefixes = map[Kind]string{
	KindRaw:     "csv_",
	KindCleaned: "csv_cleaned_",
	KindHistory: "history_",
}

// Store manages CSV artifacts under a shared upload directory. Files are
// written once and never mutated, so no locking is needed; uniqueness of
// names is what keeps concurrent uploads from clobbering each other.
type Store struct {
	Root string
}

// NewStore creates a store rooted at dir. The directory itself is created
// lazily on first allocation.
func NewStore(dir string) *Store {
	return &Store{Root: dir}
}

// AllocatePath returns a fresh, collision-free path for an artifact of the
// given kind. The token is a UUID rather than a timestamp so concurrent
// uploads can never race to the same name.
func (s *Store) AllocatePath(kind Kind) (string, error) {
	prefix, ok := filePrefixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown artifact kind: %q", kind)
	}
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	return filepath.Join(s.Root, prefix+uuid.NewString()+".csv"), nil
}

// SaveRaw persists an uploaded CSV body as a raw artifact and returns its
// path.
func (s *Store) SaveRaw(r io.Reader) (string, error) {
	path, err := s.AllocatePath(KindRaw)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return path, nil
}

// WriteDataset serializes rows to path with standard CSV quoting.
func (s *Store) WriteDataset(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write dataset row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush dataset: %w", err)
	}
	return nil
}

// ReadDataset parses the CSV at path into rows. Rows may have uneven
// widths here; the cleaner decides what to do with them. A missing file
// is a NotFound error so handlers can answer 404.
func (s *Store) ReadDataset(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.NotFound, "CSV file not found", err)
		}
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return rows, nil
}
