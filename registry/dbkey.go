package registry

import (
	"fmt"

	"github.com/mint-labs/nft-registry/common"
)

const REGISTRY_DB_VERSION = "1.0.0"
const REGISTRY_STATUS_KEY = "reg-status"
const REGISTRY_OWNER_KEY = "reg-owner"
const REGISTRY_METADATA_KEY = "reg-meta"

const (
	DB_PREFIX_SERIES       = "s-"  // seriesId -> Series
	DB_PREFIX_TOKEN        = "t-"  // tokenId -> Token
	DB_PREFIX_SERIES_TOKEN = "st-" // seriesId, tokenId membership, value is the tokenId
	DB_PREFIX_OWNER_TOKEN  = "o-"  // owner, tokenId membership, value is the tokenId

	DB_PREFIX_MINTER   = "am-" // approved minters
	DB_PREFIX_CREATOR  = "ac-" // approved series creators
	DB_PREFIX_TRANSFER = "at-" // transfer destination allow-list
)

// series ids are zero padded so prefix scans come back in numeric order
func GetSeriesKey(id common.SeriesId) []byte {
	return []byte(fmt.Sprintf("%s%020d", DB_PREFIX_SERIES, id))
}

func GetTokenKey(id common.TokenId) []byte {
	return []byte(DB_PREFIX_TOKEN + id)
}

func GetSeriesTokenKey(id common.SeriesId, tokenId common.TokenId) []byte {
	return []byte(fmt.Sprintf("%s%020d-%s", DB_PREFIX_SERIES_TOKEN, id, tokenId))
}

func GetOwnerTokenKey(owner common.Account, tokenId common.TokenId) []byte {
	return []byte(fmt.Sprintf("%s%s-%s", DB_PREFIX_OWNER_TOKEN, owner, tokenId))
}

func GetAccessKey(prefix string, account common.Account) []byte {
	return []byte(prefix + account)
}
