package registry

import (
	"github.com/mint-labs/nft-registry/common"
)

type CreateSeriesReq struct {
	Id       common.SeriesId           `json:"id"`
	Metadata common.TokenMetadata      `json:"metadata"`
	Royalty  map[common.Account]uint32 `json:"royalty,omitempty"`
	Price    *common.Balance           `json:"price,omitempty"`
}

type UpdateSeriesMetadataReq struct {
	Metadata common.TokenMetadata `json:"metadata"`
}

type UpdateSeriesRoyaltyReq struct {
	Royalty map[common.Account]uint32 `json:"royalty"`
}

type UpdateSeriesPriceReq struct {
	Price *common.Balance `json:"price"`
}

type UpdateSeriesOwnerReq struct {
	Owner common.Account `json:"owner"`
}

type MintReq struct {
	SeriesId common.SeriesId   `json:"series_id"`
	TokenId  common.TokenId    `json:"token_id"`
	Owner    common.Account    `json:"owner"`
	Attrs    common.TokenAttrs `json:"attrs"`
	Deposit  common.Balance    `json:"deposit"`
}

type TransferReq struct {
	TokenId  common.TokenId `json:"token_id"`
	NewOwner common.Account `json:"new_owner"`
}

type AccessReq struct {
	Account common.Account `json:"account"`
}

type AllowTransfersReq struct {
	Accounts []common.Account `json:"accounts"`
}

type UpdateContractMetadataReq struct {
	Metadata common.ContractMetadata `json:"metadata"`
}
