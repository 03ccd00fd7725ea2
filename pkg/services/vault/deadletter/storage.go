package deadletter

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	vaultsvc "github.com/nspcc-dev/infovault/pkg/services/vault"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Storage is a persistent storage of envelopes the dispatcher could not
// handle. It implements [vaultsvc.DeadLetterHandler].
type Storage struct {
	*cfg

	db *bbolt.DB
}

// Letter is a stored envelope.
type Letter struct {
	Received time.Time          `json:"received"`
	Envelope *vaultsvc.Envelope `json:"envelope"`
}

// ErrNotFound is returned when requested letter is missing.
var ErrNotFound = errors.New("dead letter not found")

var letterBucket = []byte("letters")

// Open opens or creates bbolt database at path with 0o600 rights.
func Open(path string, opts ...Option) (*Storage, error) {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{
		Timeout: c.timeout,
		NoSync:  c.noSync,
	})
	if err != nil {
		return nil, fmt.Errorf("can't open bbolt at %s: %w", path, err)
	}

	return &Storage{cfg: c, db: db}, nil
}

// DeadLetter implements vaultsvc.DeadLetterHandler. Envelope is stored with
// the current time, failures are logged.
func (s *Storage) DeadLetter(e *vaultsvc.Envelope) {
	err := s.Put(Letter{
		Received: time.Now().UTC(),
		Envelope: e,
	})
	if err != nil {
		s.log.Error("could not store dead letter",
			zap.Stringer("id", e.ID),
			zap.String("operation", string(e.Operation)),
			zap.Error(err))
		return
	}

	s.log.Warn("envelope moved to dead letters",
		zap.Stringer("id", e.ID),
		zap.String("operation", string(e.Operation)))
}

// Put saves the letter replacing the one with the same envelope ID.
func (s *Storage) Put(l Letter) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("can't encode letter: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(letterBucket)
		if err != nil {
			return fmt.Errorf("can't create letter bucket: %w", err)
		}

		return b.Put(l.Envelope.ID[:], data)
	})
}

// Get returns the letter by envelope ID.
func (s *Storage) Get(id uuid.UUID) (Letter, error) {
	var l Letter

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(letterBucket)
		if b == nil {
			return ErrNotFound
		}

		v := b.Get(id[:])
		if v == nil {
			return ErrNotFound
		}

		return json.Unmarshal(v, &l)
	})

	return l, err
}

// Iterate passes all stored letters to f. Handler's error is forwarded.
func (s *Storage) Iterate(f func(Letter) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(letterBucket)
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var l Letter
			if err := json.Unmarshal(v, &l); err != nil {
				return fmt.Errorf("can't decode letter %x: %w", k, err)
			}

			return f(l)
		})
	})
}

// Delete removes the letter by envelope ID. Missing letter is not an error.
func (s *Storage) Delete(id uuid.UUID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(letterBucket)
		if b == nil {
			return nil
		}

		return b.Delete(id[:])
	})
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}
