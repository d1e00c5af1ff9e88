package registry

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry"
	serverCommon "github.com/mint-labs/nft-registry/server/define"
)

const QueryParamDefaultLimit = "100"

type Handle struct {
	reg   *registry.Registry
	model *Model
}

func NewHandle(reg *registry.Registry) *Handle {
	return &Handle{
		reg:   reg,
		model: NewModel(reg),
	}
}

func okResp() serverCommon.BaseResp {
	return serverCommon.BaseResp{Code: 0, Msg: "ok"}
}

func errResp(err error) serverCommon.BaseResp {
	return serverCommon.BaseResp{Code: -1, Msg: err.Error()}
}

// getCaller resolves the two caller identities the execution environment
// authenticated upstream. A direct call has signer == predecessor.
func getCaller(c *gin.Context) common.Caller {
	caller := common.Caller{
		Predecessor: c.GetHeader("X-Predecessor-Account"),
		Signer:      c.GetHeader("X-Signer-Account"),
	}
	if caller.Signer == "" {
		caller.Signer = caller.Predecessor
	}
	return caller
}

func getPagination(c *gin.Context) (int, int) {
	start, err := strconv.Atoi(c.DefaultQuery("start", "0"))
	if err != nil {
		start = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", QueryParamDefaultLimit))
	if err != nil {
		limit = 100
	}
	return start, limit
}

func (s *Handle) getContractMetadata(c *gin.Context) {
	c.JSON(http.StatusOK, &ContractMetadataResp{
		BaseResp: okResp(),
		Data:     s.reg.ContractMetadata(),
	})
}

func (s *Handle) updateContractMetadata(c *gin.Context) {
	var req UpdateContractMetadataReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	if err := s.reg.UpdateContractMetadata(getCaller(c), &req.Metadata); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) accessChange(c *gin.Context, apply func(common.Caller, common.Account) error) {
	var req AccessReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	if err := apply(getCaller(c), req.Account); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) grantMinter(c *gin.Context)   { s.accessChange(c, s.reg.GrantMinter) }
func (s *Handle) revokeMinter(c *gin.Context)  { s.accessChange(c, s.reg.RevokeMinter) }
func (s *Handle) grantCreator(c *gin.Context)  { s.accessChange(c, s.reg.GrantCreator) }
func (s *Handle) revokeCreator(c *gin.Context) { s.accessChange(c, s.reg.RevokeCreator) }
func (s *Handle) revokeTransfer(c *gin.Context) {
	s.accessChange(c, s.reg.RevokeTransfer)
}

func (s *Handle) allowTransfers(c *gin.Context) {
	var req AllowTransfersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	if err := s.reg.AllowTransfers(getCaller(c), req.Accounts...); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) createSeries(c *gin.Context) {
	var req CreateSeriesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	err := s.reg.CreateSeries(getCaller(c), req.Id, req.Metadata, req.Royalty, req.Price)
	if err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func getSeriesId(c *gin.Context) (common.SeriesId, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func (s *Handle) updateSeriesMetadata(c *gin.Context) {
	id, err := getSeriesId(c)
	if err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	var req UpdateSeriesMetadataReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	if err := s.reg.UpdateSeriesMetadata(getCaller(c), id, req.Metadata); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) updateSeriesRoyalty(c *gin.Context) {
	id, err := getSeriesId(c)
	if err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	var req UpdateSeriesRoyaltyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	if err := s.reg.UpdateSeriesRoyalty(getCaller(c), id, req.Royalty); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) updateSeriesPrice(c *gin.Context) {
	id, err := getSeriesId(c)
	if err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	var req UpdateSeriesPriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	if err := s.reg.UpdateSeriesPrice(getCaller(c), id, req.Price); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) updateSeriesOwner(c *gin.Context) {
	id, err := getSeriesId(c)
	if err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	var req UpdateSeriesOwnerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	if err := s.reg.UpdateSeriesOwner(getCaller(c), id, req.Owner); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) mint(c *gin.Context) {
	var req MintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	err := s.reg.Mint(getCaller(c), req.SeriesId, req.TokenId, req.Owner, req.Attrs, req.Deposit)
	if err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) transfer(c *gin.Context) {
	var req TransferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	if err := s.reg.Transfer(getCaller(c), req.TokenId, req.NewOwner); err != nil {
		c.JSON(http.StatusOK, errResp(err))
		return
	}
	c.JSON(http.StatusOK, okResp())
}

func (s *Handle) getToken(c *gin.Context) {
	token, err := s.reg.GetToken(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, &TokenResp{BaseResp: errResp(err)})
		return
	}
	c.JSON(http.StatusOK, &TokenResp{BaseResp: okResp(), Data: token})
}

func (s *Handle) getTotalSupply(c *gin.Context) {
	c.JSON(http.StatusOK, &SupplyResp{BaseResp: okResp(), Data: s.reg.TotalSupply()})
}

func (s *Handle) getTokens(c *gin.Context) {
	start, limit := getPagination(c)
	tokens := s.reg.Tokens(start, limit)
	c.JSON(http.StatusOK, &TokenListResp{
		BaseResp: okResp(),
		Data: &TokenListData{
			ListResp: serverCommon.ListResp{Start: start, Total: s.reg.TotalSupply()},
			Detail:   tokens,
		},
	})
}

func (s *Handle) getTokensForOwner(c *gin.Context) {
	owner := c.Param("address")
	start, limit := getPagination(c)
	tokens := s.reg.TokensForOwner(owner, start, limit)
	c.JSON(http.StatusOK, &TokenListResp{
		BaseResp: okResp(),
		Data: &TokenListData{
			ListResp: serverCommon.ListResp{Start: start, Total: s.reg.SupplyForOwner(owner)},
			Detail:   tokens,
		},
	})
}

func (s *Handle) getSeries(c *gin.Context) {
	id, err := getSeriesId(c)
	if err != nil {
		c.JSON(http.StatusOK, &SeriesResp{BaseResp: errResp(err)})
		return
	}
	info, err := s.model.GetSeriesInfo(id)
	if err != nil {
		c.JSON(http.StatusOK, &SeriesResp{BaseResp: errResp(err)})
		return
	}
	c.JSON(http.StatusOK, &SeriesResp{BaseResp: okResp(), Data: info})
}

func (s *Handle) getSeriesList(c *gin.Context) {
	start, limit := getPagination(c)
	c.JSON(http.StatusOK, &SeriesListResp{
		BaseResp: okResp(),
		Data: &SeriesListData{
			ListResp: serverCommon.ListResp{Start: start, Total: s.reg.TotalSeries()},
			Detail:   s.model.GetSeriesInfoList(start, limit),
		},
	})
}

func (s *Handle) getSeriesTokens(c *gin.Context) {
	id, err := getSeriesId(c)
	if err != nil {
		c.JSON(http.StatusOK, &TokenListResp{BaseResp: errResp(err)})
		return
	}
	start, limit := getPagination(c)
	tokens, err := s.reg.TokensForSeries(id, start, limit)
	if err != nil {
		c.JSON(http.StatusOK, &TokenListResp{BaseResp: errResp(err)})
		return
	}
	supply, _ := s.reg.SupplyForSeries(id)
	c.JSON(http.StatusOK, &TokenListResp{
		BaseResp: okResp(),
		Data: &TokenListData{
			ListResp: serverCommon.ListResp{Start: start, Total: supply},
			Detail:   tokens,
		},
	})
}

func (s *Handle) getPayout(c *gin.Context) {
	balance, err := strconv.ParseUint(c.DefaultQuery("balance", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, &PayoutResp{BaseResp: errResp(err)})
		return
	}
	maxLen, err := strconv.Atoi(c.DefaultQuery("max_len_payout", "10"))
	if err != nil {
		maxLen = 10
	}
	payout, err := s.reg.ComputePayout(c.Param("id"), balance, maxLen)
	if err != nil {
		c.JSON(http.StatusOK, &PayoutResp{BaseResp: errResp(err)})
		return
	}
	c.JSON(http.StatusOK, &PayoutResp{BaseResp: okResp(), Data: payout})
}
