package registry

import (
	"github.com/gin-gonic/gin"
	"github.com/mint-labs/nft-registry/registry"
)

type Service struct {
	handle *Handle
}

func NewService(reg *registry.Registry) *Service {
	return &Service{
		handle: NewHandle(reg),
	}
}

func (s *Service) InitRouter(r *gin.Engine, proxy string) {
	// contract
	r.GET(proxy+"/contract/metadata", s.handle.getContractMetadata)
	r.POST(proxy+"/contract/metadata", s.handle.updateContractMetadata)

	// access control
	r.POST(proxy+"/access/minter/grant", s.handle.grantMinter)
	r.POST(proxy+"/access/minter/revoke", s.handle.revokeMinter)
	r.POST(proxy+"/access/creator/grant", s.handle.grantCreator)
	r.POST(proxy+"/access/creator/revoke", s.handle.revokeCreator)
	r.POST(proxy+"/access/transfer/allow", s.handle.allowTransfers)
	r.POST(proxy+"/access/transfer/revoke", s.handle.revokeTransfer)

	// series
	r.POST(proxy+"/series/create", s.handle.createSeries)
	r.POST(proxy+"/series/:id/metadata", s.handle.updateSeriesMetadata)
	r.POST(proxy+"/series/:id/royalty", s.handle.updateSeriesRoyalty)
	r.POST(proxy+"/series/:id/price", s.handle.updateSeriesPrice)
	r.POST(proxy+"/series/:id/owner", s.handle.updateSeriesOwner)
	r.GET(proxy+"/series/:id", s.handle.getSeries)
	r.GET(proxy+"/series/:id/tokens", s.handle.getSeriesTokens)
	r.GET(proxy+"/series", s.handle.getSeriesList)

	// tokens
	r.POST(proxy+"/nft/mint", s.handle.mint)
	r.POST(proxy+"/nft/transfer", s.handle.transfer)
	r.GET(proxy+"/nft/supply", s.handle.getTotalSupply)
	r.GET(proxy+"/nft/tokens", s.handle.getTokens)
	r.GET(proxy+"/nft/payout/:id", s.handle.getPayout)
	r.GET(proxy+"/nft/:id", s.handle.getToken)
	r.GET(proxy+"/address/tokens/:address", s.handle.getTokensForOwner)
}
