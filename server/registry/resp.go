package registry

import (
	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry"
	serverCommon "github.com/mint-labs/nft-registry/server/define"
)

type ContractMetadataResp struct {
	serverCommon.BaseResp
	Data *common.ContractMetadata `json:"data"`
}

type TokenResp struct {
	serverCommon.BaseResp
	Data *common.Token `json:"data"`
}

type TokenListData struct {
	serverCommon.ListResp
	Detail []*common.Token `json:"detail"`
}

type TokenListResp struct {
	serverCommon.BaseResp
	Data *TokenListData `json:"data"`
}

type SeriesResp struct {
	serverCommon.BaseResp
	Data *SeriesInfo `json:"data"`
}

type SeriesListData struct {
	serverCommon.ListResp
	Detail []*SeriesInfo `json:"detail"`
}

type SeriesListResp struct {
	serverCommon.BaseResp
	Data *SeriesListData `json:"data"`
}

// SeriesInfo is the outward view of a series, with the membership size
// denormalized in.
type SeriesInfo struct {
	Id       common.SeriesId           `json:"id"`
	Metadata common.TokenMetadata      `json:"metadata"`
	Royalty  map[common.Account]uint32 `json:"royalty,omitempty"`
	Price    *common.Balance           `json:"price,omitempty"`
	OwnerId  common.Account            `json:"owner_id"`
	Supply   uint64                    `json:"supply"`
}

type SupplyResp struct {
	serverCommon.BaseResp
	Data uint64 `json:"data"`
}

type PayoutResp struct {
	serverCommon.BaseResp
	Data *registry.Payout `json:"data"`
}
