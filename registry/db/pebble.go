package db

import (
	"bytes"
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/mint-labs/nft-registry/common"
)

type pebbleDB struct {
	path string
	db   *pebble.DB
}

func buildOptions() *pebble.Options {
	cache := pebble.NewCache(512 << 20)

	return &pebble.Options{
		Cache:        cache,
		MaxOpenFiles: 10000,

		MemTableSize:                64 << 20,
		MemTableStopWritesThreshold: 3,

		L0CompactionThreshold: 6,
		L0StopWritesThreshold: 12,

		LBaseMaxBytes: 1 << 30,

		MaxConcurrentCompactions: func() int { return 1 },

		Levels: func() []pebble.LevelOptions {
			lvls := make([]pebble.LevelOptions, 7)
			for i := range lvls {
				lvls[i] = pebble.LevelOptions{
					TargetFileSize: 128 << 20,
					BlockSize:      8 << 10, // registry records are small point lookups
					FilterPolicy:   bloom.FilterPolicy(10),
					FilterType:     pebble.TableFilter,
				}
			}
			return lvls
		}(),
	}
}

func openPebbleDB(filepath string, o *pebble.Options) (*pebble.DB, error) {
	if o == nil {
		o = buildOptions()
	}
	return pebble.Open(filepath, o)
}

func NewPebbleDB(path string) common.KVDB {
	db, err := initPebbleDB(path)
	if err != nil {
		common.Log.Errorf("initPebbleDB failed, %v", err)
		return nil
	}
	kvdb := pebbleDB{path: path, db: db}
	return &kvdb
}

func initPebbleDB(path string) (*pebble.DB, error) {
	if path == "" {
		path = "./data/db"
	}
	return openPebbleDB(path, nil)
}

func (p *pebbleDB) get(key []byte) ([]byte, error) {
	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, common.ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return append([]byte{}, val...), nil
}

func (p *pebbleDB) Read(key []byte) ([]byte, error) {
	return p.get(key)
}

func (p *pebbleDB) Write(key, value []byte) error {
	return p.db.Set(key, value, pebble.Sync)
}

func (p *pebbleDB) Delete(key []byte) error {
	return p.db.Delete(key, pebble.Sync)
}

func (p *pebbleDB) DropPrefix(prefix []byte) error {
	wb := p.NewWriteBatch()
	defer wb.Close()

	err := p.BatchRead(prefix, false, func(k, v []byte) error {
		return wb.Delete(k)
	})
	if err != nil {
		return err
	}
	return wb.Flush()
}

func (p *pebbleDB) DropAll() error {
	return p.DropPrefix(nil)
}

func (p *pebbleDB) Close() error {
	return p.db.Close()
}

// nextPrefix returns the smallest key lexically above every key carrying
// prefix, usable as an open upper bound. A prefix of all 0xFF has no upper
// bound; callers must then re-check HasPrefix.
func nextPrefix(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	out := append([]byte{}, prefix...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != 0xFF {
			out[i]++
			return out[:i+1]
		}
	}
	return nil
}

func (p *pebbleDB) iter(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	var lower, upper []byte
	if len(prefix) > 0 {
		lower = prefix
		upper = nextPrefix(prefix)
	}

	it, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return err
	}
	defer it.Close()

	var ok bool
	if reverse {
		ok = it.Last()
	} else if len(prefix) > 0 {
		ok = it.SeekGE(prefix)
	} else {
		ok = it.First()
	}
	for ok {
		k := it.Key()
		if len(prefix) > 0 && upper == nil && !bytes.HasPrefix(k, prefix) {
			break
		}
		if err := r(append([]byte{}, k...), append([]byte{}, it.Value()...)); err != nil {
			return err
		}
		if reverse {
			ok = it.Prev()
		} else {
			ok = it.Next()
		}
	}
	return it.Error()
}

func (p *pebbleDB) BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	return p.iter(prefix, reverse, r)
}

type pebbleReadBatch struct {
	snap *pebble.Snapshot
}

func (p *pebbleReadBatch) get(key []byte) ([]byte, error) {
	val, closer, err := p.snap.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, common.ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return append([]byte{}, val...), nil
}

func (p *pebbleReadBatch) Get(key []byte) ([]byte, error) {
	return p.get(key)
}

func (p *pebbleReadBatch) GetRef(key []byte) ([]byte, error) {
	return p.get(key)
}

func (p *pebbleDB) View(fn func(txn common.ReadBatch) error) error {
	snap := p.db.NewSnapshot()
	defer snap.Close()

	rb := pebbleReadBatch{snap: snap}
	return fn(&rb)
}

type pebbleWriteBatch struct {
	db     *pebble.DB
	batch  *pebble.Batch
	closed bool
}

func (p *pebbleWriteBatch) Put(key, value []byte) error {
	if p.closed {
		return errors.New("writebatch closed")
	}
	return p.batch.Set(key, value, nil)
}

func (p *pebbleWriteBatch) Delete(key []byte) error {
	if p.closed {
		return errors.New("writebatch closed")
	}
	return p.batch.Delete(key, nil)
}

func (p *pebbleWriteBatch) Flush() error {
	if p.closed {
		return errors.New("writebatch closed")
	}
	return p.batch.Commit(pebble.Sync)
}

func (p *pebbleWriteBatch) Close() {
	if p.closed {
		return
	}
	p.closed = true
	_ = p.batch.Close()
}

func (p *pebbleDB) NewWriteBatch() common.WriteBatch {
	return &pebbleWriteBatch{db: p.db, batch: p.db.NewBatch()}
}
