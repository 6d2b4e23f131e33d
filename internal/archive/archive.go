// Package archive persists run summaries in a LevelDB database
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/ducminhle1904/genetic-trace/pkg/reporting"
)

const runPrefix = "run/"

// ErrNotFound is returned when no summary is stored under a run id
var ErrNotFound = errors.New("run not found")

// Archive stores one JSON summary per run id
type Archive struct {
	db   *leveldb.DB
	stor storage.Storage
}

// Open opens or creates the archive at path
func Open(path string) (*Archive, error) {
	stor, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	a, err := OpenStorage(stor)
	if err != nil {
		stor.Close()
		return nil, err
	}
	a.stor = stor
	return a, nil
}

// OpenStorage opens an archive on an arbitrary leveldb storage, e.g. storage.NewMemStorage()
func OpenStorage(stor storage.Storage) (*Archive, error) {
	db, err := leveldb.Open(stor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return &Archive{db: db}, nil
}

func runKey(id string) []byte {
	return []byte(runPrefix + id)
}

// PutAll stores every summary in a single batch, replacing previous entries with the same run id
func (a *Archive) PutAll(summaries []reporting.Summary) error {
	batch := new(leveldb.Batch)
	for _, s := range summaries {
		if strings.TrimSpace(s.RunID) == "" {
			return errors.New("summary has no run id")
		}
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		batch.Put(runKey(s.RunID), data)
	}
	return a.db.Write(batch, nil)
}

// Get loads the summary stored under id
func (a *Archive) Get(id string) (reporting.Summary, error) {
	var s reporting.Summary
	data, err := a.db.Get(runKey(id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return s, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to decode run %s: %w", id, err)
	}
	return s, nil
}

// Delete removes the summary stored under id
func (a *Archive) Delete(id string) error {
	ok, err := a.db.Has(runKey(id), nil)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return a.db.Delete(runKey(id), nil)
}

// List returns stored summaries ordered by finish time; an empty problem lists all
func (a *Archive) List(problem string) ([]reporting.Summary, error) {
	iter := a.db.NewIterator(util.BytesPrefix([]byte(runPrefix)), nil)
	defer iter.Release()

	out := []reporting.Summary{}
	for iter.Next() {
		var s reporting.Summary
		if err := json.Unmarshal(iter.Value(), &s); err != nil {
			continue
		}
		if problem != "" && s.Problem != problem {
			continue
		}
		out = append(out, s)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, func(x, y reporting.Summary) int {
		return x.FinishedAt.Compare(y.FinishedAt)
	})
	return out, nil
}

// Close closes the database, and its file storage when the archive was opened by path
func (a *Archive) Close() error {
	err := a.db.Close()
	if a.stor != nil {
		if serr := a.stor.Close(); err == nil {
			err = serr
		}
	}
	return err
}
