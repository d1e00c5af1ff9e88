package db

import (
	"github.com/mint-labs/nft-registry/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type levelDB struct {
	path string
	db   *leveldb.DB
}

func NewLevelDB(path string) common.KVDB {
	if path == "" {
		path = "./data/db"
	}
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		common.Log.Errorf("leveldb.OpenFile %s failed, %v", path, err)
		return nil
	}
	return &levelDB{path: path, db: db}
}

func (p *levelDB) Read(key []byte) ([]byte, error) {
	val, err := p.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, common.ErrKeyNotFound
		}
		return nil, err
	}
	return append([]byte{}, val...), nil
}

func (p *levelDB) Write(key, value []byte) error {
	return p.db.Put(key, value, nil)
}

func (p *levelDB) Delete(key []byte) error {
	return p.db.Delete(key, nil)
}

func (p *levelDB) DropPrefix(prefix []byte) error {
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

func (p *levelDB) DropAll() error {
	return p.DropPrefix(nil)
}

func (p *levelDB) Close() error {
	return p.db.Close()
}

func (p *levelDB) BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	var slice *util.Range
	if len(prefix) > 0 {
		slice = util.BytesPrefix(prefix)
	}
	it := p.db.NewIterator(slice, nil)
	defer it.Release()

	var ok bool
	if reverse {
		ok = it.Last()
	} else {
		ok = it.First()
	}
	for ok {
		if err := r(append([]byte{}, it.Key()...), append([]byte{}, it.Value()...)); err != nil {
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

type levelReadBatch struct {
	snap *leveldb.Snapshot
}

func (p *levelReadBatch) get(key []byte) ([]byte, error) {
	val, err := p.snap.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, common.ErrKeyNotFound
		}
		return nil, err
	}
	return append([]byte{}, val...), nil
}

func (p *levelReadBatch) Get(key []byte) ([]byte, error) {
	return p.get(key)
}

func (p *levelReadBatch) GetRef(key []byte) ([]byte, error) {
	return p.get(key)
}

func (p *levelDB) View(fn func(txn common.ReadBatch) error) error {
	snap, err := p.db.GetSnapshot()
	if err != nil {
		return err
	}
	defer snap.Release()

	rb := levelReadBatch{snap: snap}
	return fn(&rb)
}

type levelWriteBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (p *levelWriteBatch) Put(key, value []byte) error {
	p.batch.Put(key, value)
	return nil
}

func (p *levelWriteBatch) Delete(key []byte) error {
	p.batch.Delete(key)
	return nil
}

func (p *levelWriteBatch) Flush() error {
	return p.db.Write(p.batch, nil)
}

func (p *levelWriteBatch) Close() {
	p.batch.Reset()
}

func (p *levelDB) NewWriteBatch() common.WriteBatch {
	return &levelWriteBatch{db: p.db, batch: new(leveldb.Batch)}
}
