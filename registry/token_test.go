package registry

import (
	"testing"

	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot of everything a failed mutation must leave untouched
type stateSnapshot struct {
	tokenCount  uint64
	ownerCounts map[common.Account]int
	seriesSizes map[common.SeriesId]int
}

func snapshotState(reg *Registry) *stateSnapshot {
	snap := &stateSnapshot{
		tokenCount:  reg.TotalSupply(),
		ownerCounts: make(map[common.Account]int),
		seriesSizes: make(map[common.SeriesId]int),
	}
	reg.mutex.RLock()
	defer reg.mutex.RUnlock()
	for owner, owned := range reg.ownerIndex {
		snap.ownerCounts[owner] = len(owned)
	}
	for id, members := range reg.seriesTokens {
		snap.seriesSizes[id] = len(members)
	}
	return snap
}

func assertUnchanged(t *testing.T, reg *Registry, snap *stateSnapshot) {
	t.Helper()
	after := snapshotState(reg)
	assert.Equal(t, snap.tokenCount, after.tokenCount)
	assert.Equal(t, snap.ownerCounts, after.ownerCounts)
	assert.Equal(t, snap.seriesSizes, after.seriesSizes)
	assert.NoError(t, reg.CheckIndexConsistency())
}

func TestMintValidation(t *testing.T) {
	reg, _ := newTestRegistry(t)

	price := common.Balance(100)
	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{}, nil, &price))
	snap := snapshotState(reg)

	err := reg.Mint(asCaller("mallory.test"), 1, "1:1", "alice.test", common.TokenAttrs{}, 100)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assertUnchanged(t, reg, snap)

	err = reg.Mint(asCaller(testOwner), 9, "1:1", "alice.test", common.TokenAttrs{}, 100)
	assert.ErrorIs(t, err, common.ErrSeriesNotFound)
	assertUnchanged(t, reg, snap)

	err = reg.Mint(asCaller(testOwner), 1, "1:1", "alice.test", common.TokenAttrs{}, 99)
	assert.ErrorIs(t, err, common.ErrInsufficientDeposit)
	assertUnchanged(t, reg, snap)

	// a failed mint leaves the backing store untouched too
	_, err = reg.db.Read(GetTokenKey("1:1"))
	assert.ErrorIs(t, err, db.ErrKeyNotFound)

	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:1", "alice.test",
		common.TokenAttrs{Image: "ipfs://x", Title: "one"}, 100))

	// duplicate ids are rejected globally, not per series
	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 2, common.TokenMetadata{}, nil, nil))
	err = reg.Mint(asCaller(testOwner), 2, "1:1", "bob.test", common.TokenAttrs{}, 0)
	assert.ErrorIs(t, err, common.ErrDuplicateToken)

	token, err := reg.GetToken("1:1")
	require.NoError(t, err)
	assert.Equal(t, common.SeriesId(1), token.SeriesId)
	assert.Equal(t, common.Account("alice.test"), token.OwnerId)
	assert.Equal(t, "ipfs://x", token.Image)
	assert.NoError(t, reg.CheckIndexConsistency())
}

func TestMintPriceGate(t *testing.T) {
	reg, _ := newTestRegistry(t)

	price := common.Balance(100)
	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{}, nil, &price))

	err := reg.Mint(asCaller(testOwner), 1, "1:1", "alice.test", common.TokenAttrs{}, 0)
	assert.ErrorIs(t, err, common.ErrInsufficientDeposit)

	// exact payment and overpayment both pass
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:2", "alice.test", common.TokenAttrs{}, 100))
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:3", "alice.test", common.TokenAttrs{}, 250))

	// free series ignore the deposit entirely
	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 2, common.TokenMetadata{}, nil, nil))
	require.NoError(t, reg.Mint(asCaller(testOwner), 2, "2:1", "alice.test", common.TokenAttrs{}, 0))
}

func TestTransferConservation(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{}, nil, nil))
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:1", "o1.test", common.TokenAttrs{}, 0))
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:2", "o1.test", common.TokenAttrs{}, 0))
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:3", "bystander.test", common.TokenAttrs{}, 0))
	require.NoError(t, reg.AllowTransfers(asCaller(testOwner), "o2.test"))

	require.NoError(t, reg.Transfer(asCaller("o1.test"), "1:1", "o2.test"))

	assert.Equal(t, uint64(1), reg.SupplyForOwner("o1.test"))
	assert.Equal(t, uint64(1), reg.SupplyForOwner("o2.test"))
	assert.Equal(t, uint64(1), reg.SupplyForOwner("bystander.test"))
	assert.Equal(t, []common.TokenId{"1:2"}, reg.TokensOf("o1.test"))
	assert.Equal(t, []common.TokenId{"1:1"}, reg.TokensOf("o2.test"))
	assert.NoError(t, reg.CheckIndexConsistency())

	token, err := reg.GetToken("1:1")
	require.NoError(t, err)
	assert.Equal(t, common.Account("o2.test"), token.OwnerId)
}

func TestTransferValidation(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{}, nil, nil))
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:1", "o1.test", common.TokenAttrs{}, 0))
	snap := snapshotState(reg)

	err := reg.Transfer(asCaller("o1.test"), "missing", "o2.test")
	assert.ErrorIs(t, err, common.ErrTokenNotFound)
	assertUnchanged(t, reg, snap)

	err = reg.Transfer(asCaller("o1.test"), "1:1", "o2.test")
	assert.ErrorIs(t, err, common.ErrTransferNotAllowed)
	assertUnchanged(t, reg, snap)

	require.NoError(t, reg.AllowTransfers(asCaller(testOwner), "o2.test"))

	// the destination gate alone is not consent, the owner must call
	err = reg.Transfer(asCaller("mallory.test"), "1:1", "o2.test")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assertUnchanged(t, reg, snap)

	require.NoError(t, reg.Transfer(asCaller("o1.test"), "1:1", "o2.test"))
}

func TestTokensOfIsAFreshRead(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{}, nil, nil))
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:1", "o1.test", common.TokenAttrs{}, 0))

	first := reg.TokensOf("o1.test")
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:2", "o1.test", common.TokenAttrs{}, 0))
	second := reg.TokensOf("o1.test")

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

func TestEnumeration(t *testing.T) {
	reg, _ := newTestRegistry(t)

	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{}, nil, nil))
	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 2, common.TokenMetadata{}, nil, nil))
	for _, id := range []common.TokenId{"1:1", "1:2", "1:3"} {
		require.NoError(t, reg.Mint(asCaller(testOwner), 1, id, "o1.test", common.TokenAttrs{}, 0))
	}
	require.NoError(t, reg.Mint(asCaller(testOwner), 2, "2:1", "o2.test", common.TokenAttrs{}, 0))

	assert.Equal(t, uint64(4), reg.TotalSupply())
	assert.Equal(t, uint64(2), reg.TotalSeries())

	page := reg.Tokens(0, 2)
	require.Len(t, page, 2)
	assert.Equal(t, common.TokenId("1:1"), page[0].Id)
	page = reg.Tokens(2, 10)
	require.Len(t, page, 2)
	assert.Equal(t, common.TokenId("2:1"), page[1].Id)

	owned := reg.TokensForOwner("o1.test", 1, 1)
	require.Len(t, owned, 1)
	assert.Equal(t, common.TokenId("1:2"), owned[0].Id)

	seriesTokens, err := reg.TokensForSeries(1, 0, 10)
	require.NoError(t, err)
	assert.Len(t, seriesTokens, 3)
	_, err = reg.TokensForSeries(9, 0, 10)
	assert.ErrorIs(t, err, common.ErrSeriesNotFound)

	seriesList := reg.SeriesList(0, 10)
	require.Len(t, seriesList, 2)
	assert.Equal(t, common.SeriesId(1), seriesList[0].Id)
	assert.Equal(t, common.SeriesId(2), seriesList[1].Id)
}
