package registry

import (
	"sort"

	"github.com/mint-labs/nft-registry/common"
)

// Enumeration reads are paginated snapshots in deterministic id order.

func (p *Registry) TotalSupply() uint64 {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return uint64(len(p.tokenMap))
}

func (p *Registry) TotalSeries() uint64 {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return uint64(len(p.seriesMap))
}

func paginate(total, from, limit int) (int, int) {
	if from < 0 {
		from = 0
	}
	if from > total {
		from = total
	}
	end := total
	if limit > 0 && from+limit < total {
		end = from + limit
	}
	return from, end
}

func (p *Registry) Tokens(from, limit int) []*common.Token {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	ids := make([]common.TokenId, 0, len(p.tokenMap))
	for id := range p.tokenMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start, end := paginate(len(ids), from, limit)
	result := make([]*common.Token, 0, end-start)
	for _, id := range ids[start:end] {
		result = append(result, p.tokenMap[id].Clone())
	}
	return result
}

func (p *Registry) SupplyForOwner(owner common.Account) uint64 {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return uint64(len(p.ownerIndex[owner]))
}

func (p *Registry) TokensForOwner(owner common.Account, from, limit int) []*common.Token {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	owned := p.ownerIndex[owner]
	ids := make([]common.TokenId, 0, len(owned))
	for id := range owned {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start, end := paginate(len(ids), from, limit)
	result := make([]*common.Token, 0, end-start)
	for _, id := range ids[start:end] {
		result = append(result, p.tokenMap[id].Clone())
	}
	return result
}

func (p *Registry) GetSeries(id common.SeriesId) (*common.Series, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	series, ok := p.seriesMap[id]
	if !ok {
		return nil, common.ErrSeriesNotFound
	}
	return series.Clone(), nil
}

func (p *Registry) SeriesList(from, limit int) []*common.Series {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	ids := make([]common.SeriesId, 0, len(p.seriesMap))
	for id := range p.seriesMap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	start, end := paginate(len(ids), from, limit)
	result := make([]*common.Series, 0, end-start)
	for _, id := range ids[start:end] {
		result = append(result, p.seriesMap[id].Clone())
	}
	return result
}

func (p *Registry) SupplyForSeries(id common.SeriesId) (uint64, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if _, ok := p.seriesMap[id]; !ok {
		return 0, common.ErrSeriesNotFound
	}
	return uint64(len(p.seriesTokens[id])), nil
}

func (p *Registry) TokensForSeries(id common.SeriesId, from, limit int) ([]*common.Token, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if _, ok := p.seriesMap[id]; !ok {
		return nil, common.ErrSeriesNotFound
	}
	members := p.seriesTokens[id]
	ids := make([]common.TokenId, 0, len(members))
	for tokenId := range members {
		ids = append(ids, tokenId)
	}
	sort.Strings(ids)

	start, end := paginate(len(ids), from, limit)
	result := make([]*common.Token, 0, end-start)
	for _, tokenId := range ids[start:end] {
		result = append(result, p.tokenMap[tokenId].Clone())
	}
	return result, nil
}
