package cursor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

// -------------------- State --------------------

// State tracks where a consumer's ship attempt stands.
type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// -------------------- Entry --------------------

// Entry is one consumer's durable position in the log. Offset is the next
// log offset the consumer should read from, i.e. the end offset of the
// last record it fully applied.
type Entry struct {
	Offset      int64
	State       State
	Retries     uint32
	LastAttempt int64
}

const entrySize = 8 + 1 + 4 + 8

// binary encoding: [offset:8][state:1][retries:4][lastAttempt:8]
func encodeEntry(e Entry) []byte {
	buf := make([]byte, entrySize)
	binary.BigEndian.PutUint64(buf[0:8], uint64(e.Offset))
	buf[8] = byte(e.State)
	binary.BigEndian.PutUint32(buf[9:13], e.Retries)
	binary.BigEndian.PutUint64(buf[13:21], uint64(e.LastAttempt))
	return buf
}

func decodeEntry(b []byte) (Entry, error) {
	if len(b) != entrySize {
		return Entry{}, errors.New("cursor: invalid entry length")
	}
	return Entry{
		Offset:      int64(binary.BigEndian.Uint64(b[0:8])),
		State:       State(b[8]),
		Retries:     binary.BigEndian.Uint32(b[9:13]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[13:21])),
	}, nil
}

// -------------------- Store --------------------

// Store keeps consumer cursors in a pebble keyspace, synced on every
// mutation so a crashed consumer resumes exactly where it acked.
type Store struct {
	db *pebble.DB
}

func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		DisableWAL: false, // we WANT durability
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// -------------------- API --------------------

// Put stores the full entry for a consumer.
func (s *Store) Put(consumer string, e Entry) error {
	return s.db.Set(keyFor(consumer), encodeEntry(e), pebble.Sync)
}

// Get returns the entry for a consumer. A consumer never seen before gets
// a zero entry: start of the log, nothing in flight.
func (s *Store) Get(consumer string) (Entry, error) {
	val, closer, err := s.db.Get(keyFor(consumer))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return Entry{State: StateNew}, nil
		}
		return Entry{}, err
	}
	defer closer.Close()

	return decodeEntry(val)
}

// MarkSent records that a ship attempt is in flight. The position only
// moves on ack, so a crash here re-ships rather than skips.
func (s *Store) MarkSent(consumer string) error {
	e, err := s.Get(consumer)
	if err != nil {
		return err
	}
	e.State = StateSent
	e.LastAttempt = time.Now().UnixNano()
	return s.Put(consumer, e)
}

// Advance acknowledges everything before offset: the consumer durably
// applied it downstream and will resume from offset after a crash.
func (s *Store) Advance(consumer string, offset int64) error {
	e, err := s.Get(consumer)
	if err != nil {
		return err
	}
	if offset < e.Offset {
		return fmt.Errorf("cursor: advance would move %s backwards (%d < %d)",
			consumer, offset, e.Offset)
	}
	e.Offset = offset
	e.State = StateAcked
	e.Retries = 0
	e.LastAttempt = time.Now().UnixNano()
	return s.Put(consumer, e)
}

// MarkFailed bumps the retry count after a failed ship attempt.
func (s *Store) MarkFailed(consumer string) error {
	e, err := s.Get(consumer)
	if err != nil {
		return err
	}
	e.State = StateFailed
	e.Retries++
	e.LastAttempt = time.Now().UnixNano()
	return s.Put(consumer, e)
}

// -------------------- Scan --------------------

// Each iterates every stored cursor. Used by tooling and by shippers
// looking for stalled consumers.
func (s *Store) Each(fn func(consumer string, e Entry) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyPrefix + "~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		e, err := decodeEntry(iter.Value())
		if err != nil {
			return err
		}
		consumer := string(iter.Key()[len(keyPrefix):])
		if err := fn(consumer, e); err != nil {
			return err
		}
	}
	return iter.Error()
}

const keyPrefix = "consumer/"

func keyFor(consumer string) []byte {
	return []byte(keyPrefix + consumer)
}
