package registry

import (
	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry/db"
)

// Membership checks are O(1) map lookups against the loaded sets.

func (p *Registry) IsMinter(account common.Account) bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.minters[account]
}

func (p *Registry) IsCreator(account common.Account) bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.creators[account]
}

func (p *Registry) IsTransferAllowed(account common.Account) bool {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.transfers[account]
}

func (p *Registry) grantAccess(prefix string, set map[common.Account]bool, account common.Account) error {
	if set[account] {
		return nil
	}
	if err := p.db.Write(GetAccessKey(prefix, account), []byte{1}); err != nil {
		return err
	}
	set[account] = true
	return nil
}

func (p *Registry) revokeAccess(prefix string, set map[common.Account]bool, account common.Account) error {
	if !set[account] {
		return nil
	}
	if err := db.DeleteInDB(GetAccessKey(prefix, account), p.db); err != nil {
		return err
	}
	delete(set, account)
	return nil
}

// GrantMinter adds an approved minter. Only the contract owner (the
// predecessor) may change role membership.
func (p *Registry) GrantMinter(caller common.Caller, account common.Account) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if caller.Predecessor != p.owner {
		return common.ErrUnauthorized
	}
	return p.grantAccess(DB_PREFIX_MINTER, p.minters, account)
}

func (p *Registry) RevokeMinter(caller common.Caller, account common.Account) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if caller.Predecessor != p.owner {
		return common.ErrUnauthorized
	}
	return p.revokeAccess(DB_PREFIX_MINTER, p.minters, account)
}

func (p *Registry) GrantCreator(caller common.Caller, account common.Account) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if caller.Predecessor != p.owner {
		return common.ErrUnauthorized
	}
	return p.grantAccess(DB_PREFIX_CREATOR, p.creators, account)
}

func (p *Registry) RevokeCreator(caller common.Caller, account common.Account) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if caller.Predecessor != p.owner {
		return common.ErrUnauthorized
	}
	return p.revokeAccess(DB_PREFIX_CREATOR, p.creators, account)
}

// AllowTransfers adds destinations to the transfer allow-list. This check
// gates on the signer, not the predecessor, matching the contract it
// replaces; keep the distinction.
func (p *Registry) AllowTransfers(caller common.Caller, accounts ...common.Account) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if caller.Signer != p.owner {
		return common.ErrUnauthorized
	}
	for _, account := range accounts {
		if err := p.grantAccess(DB_PREFIX_TRANSFER, p.transfers, account); err != nil {
			return err
		}
	}
	return nil
}

func (p *Registry) RevokeTransfer(caller common.Caller, account common.Account) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if caller.Signer != p.owner {
		return common.ErrUnauthorized
	}
	return p.revokeAccess(DB_PREFIX_TRANSFER, p.transfers, account)
}
