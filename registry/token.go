package registry

import (
	"sort"

	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry/db"
)

// Mint creates a token under a series. All validations run before the
// first store write; the token record, the owner-index key and the series
// membership key are flushed in one batch so no partial application is
// ever observable.
func (p *Registry) Mint(caller common.Caller, seriesId common.SeriesId,
	tokenId common.TokenId, owner common.Account, attrs common.TokenAttrs,
	deposit common.Balance) error {

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.minters[caller.Predecessor] {
		return common.ErrUnauthorized
	}
	series, ok := p.seriesMap[seriesId]
	if !ok {
		return common.ErrSeriesNotFound
	}
	if _, ok := p.tokenMap[tokenId]; ok {
		return common.ErrDuplicateToken
	}
	if series.Price != nil && deposit < *series.Price {
		return common.ErrInsufficientDeposit
	}

	token := &common.Token{
		Id:          tokenId,
		SeriesId:    seriesId,
		OwnerId:     owner,
		Image:       attrs.Image,
		Reference:   attrs.Reference,
		Title:       attrs.Title,
		Description: attrs.Description,
	}

	wb := p.db.NewWriteBatch()
	defer wb.Close()
	if err := db.SetDB(GetTokenKey(tokenId), token, wb); err != nil {
		return err
	}
	if err := db.SetRawDB(GetOwnerTokenKey(owner, tokenId), []byte(tokenId), wb); err != nil {
		return err
	}
	if err := db.SetRawDB(GetSeriesTokenKey(seriesId, tokenId), []byte(tokenId), wb); err != nil {
		return err
	}
	p.status.TokenCount++
	if err := p.saveStatus(wb); err != nil {
		p.status.TokenCount--
		return err
	}
	if err := wb.Flush(); err != nil {
		p.status.TokenCount--
		return err
	}

	p.tokenMap[tokenId] = token
	owned := p.ownerIndex[owner]
	if owned == nil {
		owned = make(map[common.TokenId]bool)
		p.ownerIndex[owner] = owned
	}
	owned[tokenId] = true
	p.seriesTokens[seriesId][tokenId] = true

	p.sink.Emit(newEvent(EVENT_NFT_MINT, &MintEventData{
		OwnerId:  owner,
		TokenIds: []common.TokenId{tokenId},
	}))
	return nil
}

// Transfer moves a token to an allow-listed destination. Tokens are
// non-transferable by default: the destination must be pre-approved, and
// the caller (predecessor) must be the current owner.
func (p *Registry) Transfer(caller common.Caller, tokenId common.TokenId,
	newOwner common.Account) error {

	p.mutex.Lock()
	defer p.mutex.Unlock()

	token, ok := p.tokenMap[tokenId]
	if !ok {
		return common.ErrTokenNotFound
	}
	if !p.transfers[newOwner] {
		return common.ErrTransferNotAllowed
	}
	if caller.Predecessor != token.OwnerId {
		return common.ErrUnauthorized
	}

	oldOwner := token.OwnerId
	updated := token.Clone()
	updated.OwnerId = newOwner

	wb := p.db.NewWriteBatch()
	defer wb.Close()
	if err := db.SetDB(GetTokenKey(tokenId), updated, wb); err != nil {
		return err
	}
	if err := wb.Delete(GetOwnerTokenKey(oldOwner, tokenId)); err != nil {
		return err
	}
	if err := db.SetRawDB(GetOwnerTokenKey(newOwner, tokenId), []byte(tokenId), wb); err != nil {
		return err
	}
	if err := wb.Flush(); err != nil {
		return err
	}

	p.tokenMap[tokenId] = updated
	delete(p.ownerIndex[oldOwner], tokenId)
	owned := p.ownerIndex[newOwner]
	if owned == nil {
		owned = make(map[common.TokenId]bool)
		p.ownerIndex[newOwner] = owned
	}
	owned[tokenId] = true

	p.sink.Emit(newEvent(EVENT_NFT_TRANSFER, &TransferEventData{
		OldOwnerId: oldOwner,
		NewOwnerId: newOwner,
		TokenIds:   []common.TokenId{tokenId},
	}))
	return nil
}

func (p *Registry) GetToken(tokenId common.TokenId) (*common.Token, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	token, ok := p.tokenMap[tokenId]
	if !ok {
		return nil, common.ErrTokenNotFound
	}
	return token.Clone(), nil
}

// TokensOf returns the ids an account currently holds. Each call reads
// the index afresh and returns a new sorted slice.
func (p *Registry) TokensOf(owner common.Account) []common.TokenId {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	owned := p.ownerIndex[owner]
	result := make([]common.TokenId, 0, len(owned))
	for id := range owned {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}
