package db

import (
	"bytes"
	"encoding/gob"

	"github.com/mint-labs/nft-registry/common"
)

func EncodeBytes(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeBytes(data []byte, target interface{}) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(target)
}

func GobSetDB(key []byte, value interface{}, db common.KVDB) error {
	buf, err := EncodeBytes(value)
	if err != nil {
		return err
	}
	return db.Write(key, buf)
}

func SetDB(key []byte, data interface{}, wb common.WriteBatch) error {
	buf, err := EncodeBytes(data)
	if err != nil {
		return err
	}
	return wb.Put(key, buf)
}

func SetRawDB(key []byte, data []byte, wb common.WriteBatch) error {
	return wb.Put(key, data)
}

func DeleteInDB(key []byte, db common.KVDB) error {
	return db.Delete(key)
}

func GetRawValueFromDB(key []byte, db common.KVDB) ([]byte, error) {
	return db.Read(key)
}

func GetValueFromDB(key []byte, v interface{}, db common.KVDB) error {
	buf, err := db.Read(key)
	if err != nil {
		return err
	}
	return DecodeBytes(buf, v)
}

func GetValueFromTxn(key []byte, v interface{}, txn common.ReadBatch) error {
	buf, err := txn.Get(key)
	if err != nil {
		return err
	}
	return DecodeBytes(buf, v)
}
