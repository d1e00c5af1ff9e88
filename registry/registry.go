package registry

import (
	"fmt"
	"sync"

	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry/db"
)

// Registry is the indexed collection core: token ownership, per-owner
// indices, per-series membership and the access-control sets, all kept
// mutually consistent under every interleaving of mint, transfer, series
// update and configuration change.
//
// The KVDB is the source of durability, the in-memory maps are the indexed
// view. Every mutation validates first, then flushes all of its keys in a
// single WriteBatch, then updates the maps, then emits the event. One call
// completes before the next starts; the mutex is the call boundary.
type Registry struct {
	db     common.KVDB
	sink   EventSink
	status *common.RegistryStatus
	mutex  sync.RWMutex

	owner    common.Account
	metadata *common.ContractMetadata

	seriesMap    map[common.SeriesId]*common.Series
	seriesTokens map[common.SeriesId]map[common.TokenId]bool
	tokenMap     map[common.TokenId]*common.Token
	ownerIndex   map[common.Account]map[common.TokenId]bool

	minters   map[common.Account]bool
	creators  map[common.Account]bool
	transfers map[common.Account]bool
}

func NewRegistry(kvdb common.KVDB, sink EventSink) *Registry {
	if sink == nil {
		sink = NewLogSink()
	}
	return &Registry{
		db:   kvdb,
		sink: sink,
	}
}

// DefaultMetadata is the stock contract metadata, so a deployment can boot
// without hand-written display info.
func DefaultMetadata() *common.ContractMetadata {
	return &common.ContractMetadata{
		Spec:   "nft-1.0.0",
		Name:   "Series Registry",
		Symbol: "SERIES",
	}
}

// Init loads the persisted state, or initializes a fresh deployment with
// the given contract owner and metadata. On first boot the owner becomes
// an approved minter and creator, and a contract_metadata_update event is
// emitted. Init can only be called once per Registry.
func (p *Registry) Init(owner common.Account, metadata *common.ContractMetadata) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.status = initStatusFromDB(p.db)

	storedOwner, err := loadOwnerFromDB(p.db)
	if err != nil {
		return err
	}
	storedMeta, err := loadMetadataFromDB(p.db)
	if err != nil {
		return err
	}

	fresh := storedOwner == ""
	if fresh {
		if owner == "" {
			return fmt.Errorf("fresh registry needs a contract owner")
		}
		if metadata == nil {
			metadata = DefaultMetadata()
		}

		wb := p.db.NewWriteBatch()
		defer wb.Close()
		if err := db.SetRawDB([]byte(REGISTRY_OWNER_KEY), []byte(owner), wb); err != nil {
			return err
		}
		if err := db.SetDB([]byte(REGISTRY_METADATA_KEY), metadata, wb); err != nil {
			return err
		}
		// the contract owner starts out approved for minting and creation
		if err := db.SetRawDB(GetAccessKey(DB_PREFIX_MINTER, owner), []byte{1}, wb); err != nil {
			return err
		}
		if err := db.SetRawDB(GetAccessKey(DB_PREFIX_CREATOR, owner), []byte{1}, wb); err != nil {
			return err
		}
		if err := db.SetDB([]byte(REGISTRY_STATUS_KEY), p.status, wb); err != nil {
			return err
		}
		if err := wb.Flush(); err != nil {
			return err
		}
		storedOwner = owner
		storedMeta = metadata
	}

	p.owner = storedOwner
	p.metadata = storedMeta
	p.minters = loadAccessSetFromDB(DB_PREFIX_MINTER, p.db)
	p.creators = loadAccessSetFromDB(DB_PREFIX_CREATOR, p.db)
	p.transfers = loadAccessSetFromDB(DB_PREFIX_TRANSFER, p.db)
	p.seriesMap = loadSeriesFromDB(p.db)
	p.tokenMap, p.ownerIndex, p.seriesTokens = loadTokensFromDB(p.db)
	for id := range p.seriesMap {
		if p.seriesTokens[id] == nil {
			p.seriesTokens[id] = make(map[common.TokenId]bool)
		}
	}

	common.Log.Infof("registry loaded: %d series, %d tokens, owner %s",
		len(p.seriesMap), len(p.tokenMap), p.owner)

	if fresh {
		p.sink.Emit(newEvent(EVENT_CONTRACT_METADATA_UPDATE, p.metadata))
	}
	return nil
}

func (p *Registry) ContractOwner() common.Account {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.owner
}

func (p *Registry) ContractMetadata() *common.ContractMetadata {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	meta := *p.metadata
	return &meta
}

// UpdateContractMetadata replaces the contract-wide metadata. Only the
// contract owner (the call's predecessor) may do this.
func (p *Registry) UpdateContractMetadata(caller common.Caller, metadata *common.ContractMetadata) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if caller.Predecessor != p.owner {
		return common.ErrUnauthorized
	}
	if err := db.GobSetDB([]byte(REGISTRY_METADATA_KEY), metadata, p.db); err != nil {
		return err
	}
	meta := *metadata
	p.metadata = &meta

	p.sink.Emit(newEvent(EVENT_CONTRACT_METADATA_UPDATE, p.metadata))
	return nil
}

func (p *Registry) saveStatus(wb common.WriteBatch) error {
	return db.SetDB([]byte(REGISTRY_STATUS_KEY), p.status, wb)
}

// CheckIndexConsistency verifies that the owner index and the per-series
// membership agree with every token record, and that no id appears under
// two owners or two series.
func (p *Registry) CheckIndexConsistency() error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	for id, token := range p.tokenMap {
		if !p.ownerIndex[token.OwnerId][id] {
			return fmt.Errorf("token %s missing from owner index of %s", id, token.OwnerId)
		}
		if !p.seriesTokens[token.SeriesId][id] {
			return fmt.Errorf("token %s missing from series %d membership", id, token.SeriesId)
		}
	}
	ownedTotal := 0
	for owner, owned := range p.ownerIndex {
		for id := range owned {
			token := p.tokenMap[id]
			if token == nil || token.OwnerId != owner {
				return fmt.Errorf("orphaned owner index entry %s under %s", id, owner)
			}
		}
		ownedTotal += len(owned)
	}
	memberTotal := 0
	for seriesId, members := range p.seriesTokens {
		for id := range members {
			token := p.tokenMap[id]
			if token == nil || token.SeriesId != seriesId {
				return fmt.Errorf("orphaned series membership %s under %d", id, seriesId)
			}
		}
		memberTotal += len(members)
	}
	if ownedTotal != len(p.tokenMap) || memberTotal != len(p.tokenMap) {
		return fmt.Errorf("index sizes disagree: %d tokens, %d owned, %d members",
			len(p.tokenMap), ownedTotal, memberTotal)
	}
	return nil
}
