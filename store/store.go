// Package store keeps a library of named parameter objects in a bbolt
// database, one bucket per parameter object library. Entries are stored as
// json, keyed by name; the specification is always the canonical Repr of the
// parameter object, so every stored entry can be created again.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/vsariola/pogen/po"
	bolt "go.etcd.io/bbolt"
)

type (
	Store struct {
		Debug bool
		db    *bolt.DB
	}

	Entry struct {
		ID       uuid.UUID  `json:"id"`
		Name     string     `json:"-"`
		Library  po.Library `json:"-"`
		Spec     string     `json:"spec"`
		Doc      string     `json:"doc,omitempty"`
		Created  time.Time  `json:"created"`
		Modified time.Time  `json:"modified"`
	}
)

var ErrNotFound = errors.New("no such entry")

// Open opens or creates the database file, waiting at most a second for the
// file lock.
func Open(filename string) (*Store, error) {
	db, err := bolt.Open(filename, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open database %v: %v", filename, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("store."+format, args...)
	}
}

// Add creates the parameter object with the factory, to validate it, and
// stores its Repr under name. An existing entry keeps its ID and creation
// time.
func (s *Store) Add(f *po.Factory, lib po.Library, name, spec, doc string) (Entry, error) {
	p, err := f.New(spec, lib)
	if err != nil {
		return Entry{}, err
	}
	return s.Put(Entry{Name: name, Library: lib, Spec: p.Repr(), Doc: doc})
}

// Put stores an entry as is.
func (s *Store) Put(e Entry) (Entry, error) {
	if e.Name == "" {
		return Entry{}, errors.New("entry name cannot be empty")
	}
	s.logf("Put %v/%v %v", e.Library, e.Name, e.Spec)
	now := time.Now().UTC()
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(e.Library.String()))
		if err != nil {
			return err
		}
		var old Entry
		if bs := b.Get([]byte(e.Name)); bs != nil && json.Unmarshal(bs, &old) == nil {
			e.ID, e.Created = old.ID, old.Created
		} else {
			e.ID, e.Created = uuid.New(), now
		}
		e.Modified = now
		js, err := json.Marshal(&e)
		if err != nil {
			return err
		}
		return b.Put([]byte(e.Name), js)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("could not store %v: %v", e.Name, err)
	}
	return e, nil
}

func (s *Store) Get(lib po.Library, name string) (Entry, error) {
	var e Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(lib.String()))
		if b == nil {
			return ErrNotFound
		}
		bs := b.Get([]byte(name))
		if bs == nil {
			return ErrNotFound
		}
		return json.Unmarshal(bs, &e)
	})
	if err != nil {
		return Entry{}, err
	}
	e.Name, e.Library = name, lib
	return e, nil
}

// List returns the entries of a library, sorted by name.
func (s *Store) List(lib po.Library) ([]Entry, error) {
	ret := make([]Entry, 0, 32)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(lib.String()))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, bs := c.First(); k != nil; k, bs = c.Next() {
			var e Entry
			if err := json.Unmarshal(bs, &e); err != nil {
				return fmt.Errorf("corrupt entry %s: %v", k, err)
			}
			e.Name, e.Library = string(k), lib
			ret = append(ret, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logf("List %v found %d entries", lib, len(ret))
	return ret, nil
}

func (s *Store) Delete(lib po.Library, name string) error {
	s.logf("Delete %v/%v", lib, name)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(lib.String()))
		if b == nil || b.Get([]byte(name)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(name))
	})
}

// New creates the parameter object of an entry.
func (e Entry) New(f *po.Factory) (po.PO, error) {
	return f.New(e.Spec, e.Library)
}
