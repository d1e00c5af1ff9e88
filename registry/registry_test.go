package registry

import (
	"path/filepath"
	"testing"

	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "admin.test"

type captureSink struct {
	events []*Event
}

func (p *captureSink) Emit(event *Event) {
	p.events = append(p.events, event)
}

func (p *captureSink) last() *Event {
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}

func asCaller(account common.Account) common.Caller {
	return common.Caller{Predecessor: account, Signer: account}
}

func openTestRegistry(t *testing.T, path string, sink EventSink) *Registry {
	kvdb := db.NewKVDB("leveldb", path)
	require.NotNil(t, kvdb)
	t.Cleanup(func() { kvdb.Close() })

	reg := NewRegistry(kvdb, sink)
	require.NoError(t, reg.Init(testOwner, nil))
	return reg
}

func newTestRegistry(t *testing.T) (*Registry, *captureSink) {
	sink := &captureSink{}
	reg := openTestRegistry(t, filepath.Join(t.TempDir(), "db"), sink)
	return reg, sink
}

func TestInitFreshRegistry(t *testing.T) {
	reg, sink := newTestRegistry(t)

	assert.Equal(t, common.Account(testOwner), reg.ContractOwner())
	assert.Equal(t, DefaultMetadata().Name, reg.ContractMetadata().Name)

	// owner starts out approved for minting and series creation
	assert.True(t, reg.IsMinter(testOwner))
	assert.True(t, reg.IsCreator(testOwner))
	assert.False(t, reg.IsTransferAllowed(testOwner))

	require.Len(t, sink.events, 1)
	assert.Equal(t, EVENT_CONTRACT_METADATA_UPDATE, sink.events[0].Event)
	assert.Equal(t, NFT_STANDARD_NAME, sink.events[0].Standard)
}

func TestUpdateContractMetadata(t *testing.T) {
	reg, sink := newTestRegistry(t)

	meta := &common.ContractMetadata{Spec: "nft-1.0.0", Name: "Badges", Symbol: "BDG"}
	err := reg.UpdateContractMetadata(asCaller("mallory.test"), meta)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	require.NoError(t, reg.UpdateContractMetadata(asCaller(testOwner), meta))
	assert.Equal(t, "Badges", reg.ContractMetadata().Name)
	assert.Equal(t, EVENT_CONTRACT_METADATA_UPDATE, sink.last().Event)
}

func TestRestartPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")

	kvdb := db.NewKVDB("leveldb", path)
	require.NotNil(t, kvdb)
	reg := NewRegistry(kvdb, &NullSink{})
	require.NoError(t, reg.Init(testOwner, nil))

	price := common.Balance(100)
	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1,
		common.TokenMetadata{Title: "badges"}, map[common.Account]uint32{"artist.test": 500}, &price))
	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "1:1", "alice.test",
		common.TokenAttrs{Title: "badge one"}, 100))
	require.NoError(t, reg.AllowTransfers(asCaller(testOwner), "bob.test"))
	require.NoError(t, kvdb.Close())

	reopened := openTestRegistry(t, path, &NullSink{})
	assert.Equal(t, common.Account(testOwner), reopened.ContractOwner())
	assert.Equal(t, uint64(1), reopened.TotalSupply())
	assert.True(t, reopened.IsTransferAllowed("bob.test"))

	token, err := reopened.GetToken("1:1")
	require.NoError(t, err)
	assert.Equal(t, common.Account("alice.test"), token.OwnerId)
	assert.Equal(t, common.SeriesId(1), token.SeriesId)

	series, err := reopened.GetSeries(1)
	require.NoError(t, err)
	require.NotNil(t, series.Price)
	assert.Equal(t, common.Balance(100), *series.Price)
	assert.Equal(t, []common.TokenId{"1:1"}, reopened.TokensOf("alice.test"))
	assert.NoError(t, reopened.CheckIndexConsistency())
}

// The end to end walk: series with price and royalty, paid mint, allow-listed
// transfer, rejected transfer to an unlisted destination.
func TestMintTransferScenario(t *testing.T) {
	reg, sink := newTestRegistry(t)

	price := common.Balance(100)
	require.NoError(t, reg.CreateSeries(asCaller(testOwner), 1,
		common.TokenMetadata{Title: "season one"},
		map[common.Account]uint32{"artist.test": 500}, &price))

	require.NoError(t, reg.Mint(asCaller(testOwner), 1, "T1", "o1.test",
		common.TokenAttrs{}, 100))
	assert.Equal(t, EVENT_NFT_MINT, sink.last().Event)

	supply, err := reg.SupplyForSeries(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), supply)
	assert.Equal(t, []common.TokenId{"T1"}, reg.TokensOf("o1.test"))

	require.NoError(t, reg.AllowTransfers(asCaller(testOwner), "o2.test"))
	require.NoError(t, reg.Transfer(asCaller("o1.test"), "T1", "o2.test"))
	assert.Equal(t, EVENT_NFT_TRANSFER, sink.last().Event)
	assert.Empty(t, reg.TokensOf("o1.test"))
	assert.Equal(t, []common.TokenId{"T1"}, reg.TokensOf("o2.test"))

	err = reg.Transfer(asCaller("o2.test"), "T1", "o3.test")
	assert.ErrorIs(t, err, common.ErrTransferNotAllowed)
	assert.Equal(t, []common.TokenId{"T1"}, reg.TokensOf("o2.test"))
	assert.NoError(t, reg.CheckIndexConsistency())
}

func TestAccessControl(t *testing.T) {
	reg, _ := newTestRegistry(t)

	err := reg.GrantMinter(asCaller("mallory.test"), "mallory.test")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.False(t, reg.IsMinter("mallory.test"))

	require.NoError(t, reg.GrantMinter(asCaller(testOwner), "minter.test"))
	assert.True(t, reg.IsMinter("minter.test"))
	require.NoError(t, reg.RevokeMinter(asCaller(testOwner), "minter.test"))
	assert.False(t, reg.IsMinter("minter.test"))

	require.NoError(t, reg.GrantCreator(asCaller(testOwner), "creator.test"))
	assert.True(t, reg.IsCreator("creator.test"))
	require.NoError(t, reg.RevokeCreator(asCaller(testOwner), "creator.test"))
	assert.False(t, reg.IsCreator("creator.test"))

	// the allow-list admin gates on the signer, not the predecessor
	err = reg.AllowTransfers(common.Caller{Predecessor: testOwner, Signer: "mallory.test"}, "dst.test")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	err = reg.AllowTransfers(common.Caller{Predecessor: "relay.test", Signer: testOwner}, "dst.test")
	require.NoError(t, err)
	assert.True(t, reg.IsTransferAllowed("dst.test"))

	require.NoError(t, reg.RevokeTransfer(asCaller(testOwner), "dst.test"))
	assert.False(t, reg.IsTransferAllowed("dst.test"))
}
