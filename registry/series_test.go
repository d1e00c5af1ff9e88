package registry

import (
	"testing"

	"github.com/mint-labs/nft-registry/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSeries(t *testing.T) {
	reg, sink := newTestRegistry(t)

	err := reg.CreateSeries(asCaller("mallory.test"), 1, common.TokenMetadata{}, nil, nil)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, uint64(0), reg.TotalSeries())

	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1,
		common.TokenMetadata{Title: "one"}, nil, nil))
	assert.Equal(t, EVENT_NFT_METADATA_UPDATE, sink.last().Event)

	series, err := reg.GetSeries(1)
	require.NoError(t, err)
	assert.Equal(t, common.Account(testOwner), series.OwnerId)
	assert.Equal(t, "one", series.Metadata.Title)
	assert.Nil(t, series.Price)

	// caller-supplied ids collide explicitly, never overwrite
	err = reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{Title: "two"}, nil, nil)
	assert.ErrorIs(t, err, common.ErrSeriesExists)
	series, err = reg.GetSeries(1)
	require.NoError(t, err)
	assert.Equal(t, "one", series.Metadata.Title)
}

func TestCreateSeriesRoyaltyBound(t *testing.T) {
	reg, _ := newTestRegistry(t)

	err := reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{},
		map[common.Account]uint32{"a.test": 6000, "b.test": 5000}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidRoyalty)
	assert.Equal(t, uint64(0), reg.TotalSeries())

	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1, common.TokenMetadata{},
		map[common.Account]uint32{"a.test": 6000, "b.test": 4000}, nil))
}

func TestUpdateSeriesFields(t *testing.T) {
	reg, sink := newTestRegistry(t)

	require.NoError(t, reg.GrantCreator(asCaller(testOwner), "creator.test"))
	require.NoError(t, reg.CreateSeries(asCaller("creator.test"), 7,
		common.TokenMetadata{Title: "old", Description: "keep me"}, nil, nil))

	err := reg.UpdateSeriesMetadata(asCaller(testOwner), 99, common.TokenMetadata{})
	assert.ErrorIs(t, err, common.ErrSeriesNotFound)

	// only the series owner may mutate, the contract owner is not enough
	err = reg.UpdateSeriesMetadata(asCaller(testOwner), 7, common.TokenMetadata{Title: "new"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// full-value replace, unrelated fields are not merged back in
	require.NoError(t, reg.UpdateSeriesMetadata(asCaller("creator.test"), 7,
		common.TokenMetadata{Title: "new"}))
	assert.Equal(t, EVENT_NFT_METADATA_UPDATE, sink.last().Event)
	series, err := reg.GetSeries(7)
	require.NoError(t, err)
	assert.Equal(t, "new", series.Metadata.Title)
	assert.Equal(t, "", series.Metadata.Description)

	err = reg.UpdateSeriesRoyalty(asCaller("creator.test"), 7,
		map[common.Account]uint32{"a.test": 10001})
	assert.ErrorIs(t, err, common.ErrInvalidRoyalty)

	require.NoError(t, reg.UpdateSeriesRoyalty(asCaller("creator.test"), 7,
		map[common.Account]uint32{"a.test": 1000}))
	assert.Equal(t, EVENT_CONTRACT_METADATA_UPDATE, sink.last().Event)

	price := common.Balance(42)
	require.NoError(t, reg.UpdateSeriesPrice(asCaller("creator.test"), 7, &price))
	series, err = reg.GetSeries(7)
	require.NoError(t, err)
	require.NotNil(t, series.Price)
	assert.Equal(t, common.Balance(42), *series.Price)

	require.NoError(t, reg.UpdateSeriesOwner(asCaller("creator.test"), 7, "next.test"))
	err = reg.UpdateSeriesPrice(asCaller("creator.test"), 7, nil)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	require.NoError(t, reg.UpdateSeriesPrice(asCaller("next.test"), 7, nil))
	series, err = reg.GetSeries(7)
	require.NoError(t, err)
	assert.Nil(t, series.Price)
}

func TestValidateRoyalty(t *testing.T) {
	assert.NoError(t, common.ValidateRoyalty(nil))
	assert.NoError(t, common.ValidateRoyalty(map[common.Account]uint32{"a.test": 10000}))
	assert.ErrorIs(t, common.ValidateRoyalty(map[common.Account]uint32{
		"a.test": 9000, "b.test": 1001,
	}), common.ErrInvalidRoyalty)
}
