package registry

import (
	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry/db"
)

// CreateSeries registers a new series under a caller-supplied id. The
// caller (predecessor) must be an approved creator and becomes the series
// owner. Id collisions are rejected, never overwritten.
func (p *Registry) CreateSeries(caller common.Caller, id common.SeriesId,
	metadata common.TokenMetadata, royalty map[common.Account]uint32,
	price *common.Balance) error {

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.creators[caller.Predecessor] {
		return common.ErrUnauthorized
	}
	if _, ok := p.seriesMap[id]; ok {
		return common.ErrSeriesExists
	}
	if err := common.ValidateRoyalty(royalty); err != nil {
		return err
	}

	series := &common.Series{
		Id:       id,
		Metadata: metadata,
		Royalty:  royalty,
		Price:    price,
		OwnerId:  caller.Predecessor,
	}

	wb := p.db.NewWriteBatch()
	defer wb.Close()
	if err := db.SetDB(GetSeriesKey(id), series, wb); err != nil {
		return err
	}
	p.status.SeriesCount++
	if err := p.saveStatus(wb); err != nil {
		p.status.SeriesCount--
		return err
	}
	if err := wb.Flush(); err != nil {
		p.status.SeriesCount--
		return err
	}

	p.seriesMap[id] = series
	p.seriesTokens[id] = make(map[common.TokenId]bool)

	p.sink.Emit(newEvent(EVENT_NFT_METADATA_UPDATE, &SeriesEventData{SeriesId: id}))
	return nil
}

// updateSeries applies one full-value field replacement. The caller must
// be the series owner; mutate builds the replacement from a clone so a
// failed store write leaves the loaded record untouched.
func (p *Registry) updateSeries(caller common.Caller, id common.SeriesId,
	eventKind string, mutate func(series *common.Series) error) error {

	p.mutex.Lock()
	defer p.mutex.Unlock()

	series, ok := p.seriesMap[id]
	if !ok {
		return common.ErrSeriesNotFound
	}
	if caller.Predecessor != series.OwnerId {
		return common.ErrUnauthorized
	}

	updated := series.Clone()
	if err := mutate(updated); err != nil {
		return err
	}
	if err := db.GobSetDB(GetSeriesKey(id), updated, p.db); err != nil {
		return err
	}
	p.seriesMap[id] = updated

	p.sink.Emit(newEvent(eventKind, &SeriesEventData{SeriesId: id}))
	return nil
}

// UpdateSeriesMetadata replaces the series metadata wholesale. Callers
// must resupply unrelated fields.
func (p *Registry) UpdateSeriesMetadata(caller common.Caller, id common.SeriesId,
	metadata common.TokenMetadata) error {
	return p.updateSeries(caller, id, EVENT_NFT_METADATA_UPDATE,
		func(series *common.Series) error {
			series.Metadata = metadata
			return nil
		})
}

func (p *Registry) UpdateSeriesRoyalty(caller common.Caller, id common.SeriesId,
	royalty map[common.Account]uint32) error {
	return p.updateSeries(caller, id, EVENT_CONTRACT_METADATA_UPDATE,
		func(series *common.Series) error {
			if err := common.ValidateRoyalty(royalty); err != nil {
				return err
			}
			series.Royalty = royalty
			return nil
		})
}

func (p *Registry) UpdateSeriesPrice(caller common.Caller, id common.SeriesId,
	price *common.Balance) error {
	return p.updateSeries(caller, id, EVENT_CONTRACT_METADATA_UPDATE,
		func(series *common.Series) error {
			series.Price = price
			return nil
		})
}

func (p *Registry) UpdateSeriesOwner(caller common.Caller, id common.SeriesId,
	owner common.Account) error {
	return p.updateSeries(caller, id, EVENT_CONTRACT_METADATA_UPDATE,
		func(series *common.Series) error {
			series.OwnerId = owner
			return nil
		})
}
