package db

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/mint-labs/nft-registry/common"
)

type badgerDB struct {
	path string
	db   *badger.DB
}

func NewBadgerDB(path string) common.KVDB {
	if path == "" {
		path = "./data/db"
	}
	opt := badger.DefaultOptions(path).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opt)
	if err != nil {
		common.Log.Errorf("badger.Open %s failed, %v", path, err)
		return nil
	}
	return &badgerDB{path: path, db: db}
}

func (b *badgerDB) Read(key []byte) ([]byte, error) {
	var valCopy []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return common.ErrKeyNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			valCopy = append([]byte{}, val...)
			return nil
		})
	})
	return valCopy, err
}

func (b *badgerDB) Write(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *badgerDB) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (b *badgerDB) DropPrefix(prefix []byte) error {
	return b.db.DropPrefix(prefix)
}

func (b *badgerDB) DropAll() error {
	return b.db.DropAll()
}

func (b *badgerDB) Close() error {
	return b.db.Close()
}

func (b *badgerDB) BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = reverse
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := prefix
		if reverse && len(prefix) > 0 {
			// badger reverse iteration seeks to the last key under the prefix
			seek = append(append([]byte{}, prefix...), 0xFF)
		}
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := r(item.KeyCopy(nil), val); err != nil {
				return err
			}
		}
		return nil
	})
}

type badgerReadBatch struct {
	txn *badger.Txn
}

func (p *badgerReadBatch) get(key []byte) ([]byte, error) {
	item, err := p.txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, common.ErrKeyNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (p *badgerReadBatch) Get(key []byte) ([]byte, error) {
	return p.get(key)
}

func (p *badgerReadBatch) GetRef(key []byte) ([]byte, error) {
	return p.get(key)
}

func (b *badgerDB) View(fn func(txn common.ReadBatch) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		return fn(&badgerReadBatch{txn: txn})
	})
}

type badgerWriteBatch struct {
	txn    *badger.Txn
	closed bool
}

func (p *badgerWriteBatch) Put(key, value []byte) error {
	if p.closed {
		return errors.New("writebatch closed")
	}
	return p.txn.Set(key, value)
}

func (p *badgerWriteBatch) Delete(key []byte) error {
	if p.closed {
		return errors.New("writebatch closed")
	}
	return p.txn.Delete(key)
}

func (p *badgerWriteBatch) Flush() error {
	if p.closed {
		return errors.New("writebatch closed")
	}
	return p.txn.Commit()
}

func (p *badgerWriteBatch) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.txn.Discard()
}

func (b *badgerDB) NewWriteBatch() common.WriteBatch {
	return &badgerWriteBatch{txn: b.db.NewTransaction(true)}
}
