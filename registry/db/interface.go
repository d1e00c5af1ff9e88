package db

import (
	"github.com/mint-labs/nft-registry/common"
)

var ErrKeyNotFound = common.ErrKeyNotFound

type (
	KVDB       = common.KVDB
	ReadBatch  = common.ReadBatch
	WriteBatch = common.WriteBatch
)

// NewKVDB opens the backing store for the registry. The driver is part of
// the deployment config; pebble is the default.
func NewKVDB(driver, path string) KVDB {
	switch driver {
	case "leveldb":
		return NewLevelDB(path)
	case "badger":
		return NewBadgerDB(path)
	default:
		return NewPebbleDB(path)
	}
}
