package registry

import (
	"github.com/mint-labs/nft-registry/common"
	"github.com/pkg/errors"
)

// Payout is a split of a sale balance across royalty receivers.
type Payout struct {
	Payout map[common.Account]common.Balance `json:"payout"`
}

// ComputePayout splits balance per the owning series' royalty table, the
// remainder going to the current owner. Royalty shares for the owner
// account itself are folded into the remainder, not paid twice. maxLen
// caps the number of receivers a market is willing to pay.
func (p *Registry) ComputePayout(tokenId common.TokenId, balance common.Balance,
	maxLen int) (*Payout, error) {

	p.mutex.RLock()
	defer p.mutex.RUnlock()

	token, ok := p.tokenMap[tokenId]
	if !ok {
		return nil, common.ErrTokenNotFound
	}
	series, ok := p.seriesMap[token.SeriesId]
	if !ok {
		return nil, common.ErrSeriesNotFound
	}

	receivers := 1
	for account := range series.Royalty {
		if account != token.OwnerId {
			receivers++
		}
	}
	if maxLen > 0 && receivers > maxLen {
		return nil, errors.Errorf("payout needs %d receivers, market accepts %d",
			receivers, maxLen)
	}

	payout := &Payout{Payout: make(map[common.Account]common.Balance, receivers)}
	paid := common.Balance(0)
	for account, share := range series.Royalty {
		if account == token.OwnerId {
			continue
		}
		amount := balance / common.RoyaltyDenominator * common.Balance(share)
		payout.Payout[account] += amount
		paid += amount
	}
	payout.Payout[token.OwnerId] += balance - paid
	return payout, nil
}
