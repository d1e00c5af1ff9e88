package common

import "errors"

var (
	ErrKeyNotFound = errors.New("Key not found")
)

type ReadBatch interface {
	Get(key []byte) ([]byte, error)    // returns a fresh copy of the value
	GetRef(key []byte) ([]byte, error) // reference only valid inside the View call
}

type WriteBatch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Flush() error
	Close()
}

// KVDB is the durable backing store for every indexed collection. Each
// call is a complete transaction.
type KVDB interface {
	DropAll() error
	DropPrefix([]byte) error

	Read(key []byte) ([]byte, error)
	Write(key, value []byte) error
	Delete(key []byte) error
	Close() error

	NewWriteBatch() WriteBatch

	// prefix scan
	BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error

	// consistent multi-read
	View(func(ReadBatch) error) error
}
