package registry

import (
	"strings"

	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry/db"
	"github.com/pkg/errors"
)

func initStatusFromDB(ldb common.KVDB) *common.RegistryStatus {
	status := &common.RegistryStatus{}
	err := db.GetValueFromDB([]byte(REGISTRY_STATUS_KEY), status, ldb)
	if err == db.ErrKeyNotFound {
		common.Log.Info("initStatusFromDB no status found in db")
		status.Version = REGISTRY_DB_VERSION
	} else if err != nil {
		common.Log.Panicf("initStatusFromDB failed. %v", err)
	}

	if status.Version != REGISTRY_DB_VERSION {
		common.Log.Panicf("registry data version inconsistent %s", status.Version)
	}

	return status
}

func loadOwnerFromDB(ldb common.KVDB) (common.Account, error) {
	buf, err := ldb.Read([]byte(REGISTRY_OWNER_KEY))
	if err == db.ErrKeyNotFound {
		return "", nil
	} else if err != nil {
		return "", errors.Wrap(err, "load contract owner")
	}
	return common.Account(buf), nil
}

func loadMetadataFromDB(ldb common.KVDB) (*common.ContractMetadata, error) {
	meta := &common.ContractMetadata{}
	err := db.GetValueFromDB([]byte(REGISTRY_METADATA_KEY), meta, ldb)
	if err == db.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "load contract metadata")
	}
	return meta, nil
}

func loadAccessSetFromDB(prefix string, ldb common.KVDB) map[common.Account]bool {
	result := make(map[common.Account]bool)
	err := ldb.BatchRead([]byte(prefix), false, func(k, v []byte) error {
		account := strings.TrimPrefix(string(k), prefix)
		if account != "" {
			result[account] = true
		}
		return nil
	})
	if err != nil {
		common.Log.Panicf("loadAccessSetFromDB %s failed. %v", prefix, err)
	}
	return result
}

func loadSeriesFromDB(ldb common.KVDB) map[common.SeriesId]*common.Series {
	result := make(map[common.SeriesId]*common.Series)
	err := ldb.BatchRead([]byte(DB_PREFIX_SERIES), false, func(k, v []byte) error {
		series := &common.Series{}
		if err := db.DecodeBytes(v, series); err != nil {
			return errors.Wrapf(err, "decode series %s", string(k))
		}
		result[series.Id] = series
		return nil
	})
	if err != nil {
		common.Log.Panicf("loadSeriesFromDB failed. %v", err)
	}
	return result
}

// loadTokensFromDB rebuilds the token map and both secondary indices from
// the token records. The membership keys are written in the same batch as
// each token record, so the rebuilt indices match what a key scan would
// produce.
func loadTokensFromDB(ldb common.KVDB) (map[common.TokenId]*common.Token,
	map[common.Account]map[common.TokenId]bool,
	map[common.SeriesId]map[common.TokenId]bool) {

	tokens := make(map[common.TokenId]*common.Token)
	ownerIndex := make(map[common.Account]map[common.TokenId]bool)
	seriesTokens := make(map[common.SeriesId]map[common.TokenId]bool)

	err := ldb.BatchRead([]byte(DB_PREFIX_TOKEN), false, func(k, v []byte) error {
		token := &common.Token{}
		if err := db.DecodeBytes(v, token); err != nil {
			return errors.Wrapf(err, "decode token %s", string(k))
		}
		tokens[token.Id] = token

		owned := ownerIndex[token.OwnerId]
		if owned == nil {
			owned = make(map[common.TokenId]bool)
			ownerIndex[token.OwnerId] = owned
		}
		owned[token.Id] = true

		members := seriesTokens[token.SeriesId]
		if members == nil {
			members = make(map[common.TokenId]bool)
			seriesTokens[token.SeriesId] = members
		}
		members[token.Id] = true
		return nil
	})
	if err != nil {
		common.Log.Panicf("loadTokensFromDB failed. %v", err)
	}
	return tokens, ownerIndex, seriesTokens
}
