package common

// Account is an identity already authenticated by the execution
// environment. The registry never verifies signatures itself.
type Account = string

type SeriesId = uint64
type TokenId = string

// Balance is an amount in the smallest currency unit.
type Balance = uint64

// Royalty shares are expressed in basis points of this denominator.
const RoyaltyDenominator = 10000

// Caller carries the two identities the execution context resolves for a
// call. They may differ; individual operations gate on one or the other.
type Caller struct {
	Predecessor Account
	Signer      Account
}

// ContractMetadata is the contract-wide display info, independent of any
// per-series metadata.
type ContractMetadata struct {
	Spec          string `json:"spec" yaml:"spec"`
	Name          string `json:"name" yaml:"name"`
	Symbol        string `json:"symbol" yaml:"symbol"`
	Icon          string `json:"icon,omitempty" yaml:"icon"`
	BaseUri       string `json:"base_uri,omitempty" yaml:"base_uri"`
	Reference     string `json:"reference,omitempty" yaml:"reference"`
	ReferenceHash string `json:"reference_hash,omitempty" yaml:"reference_hash"`
}

// TokenMetadata is the shared metadata all tokens of a series derive from.
type TokenMetadata struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	Media         string `json:"media,omitempty"`
	MediaHash     string `json:"media_hash,omitempty"`
	Copies        uint64 `json:"copies,omitempty"`
	IssuedAt      string `json:"issued_at,omitempty"`
	ExpiresAt     string `json:"expires_at,omitempty"`
	StartsAt      string `json:"starts_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
	Extra         string `json:"extra,omitempty"`
	Reference     string `json:"reference,omitempty"`
	ReferenceHash string `json:"reference_hash,omitempty"`
}

// Series is a named collection of tokens sharing metadata, royalty and
// mint price. The token membership set lives in its own index keys, not
// in this record.
type Series struct {
	Id       SeriesId
	Metadata TokenMetadata
	Royalty  map[Account]uint32 // basis points per receiver, sum <= 10000
	Price    *Balance           // nil means free to mint
	OwnerId  Account
}

func (p *Series) Clone() *Series {
	c := &Series{
		Id:       p.Id,
		Metadata: p.Metadata,
		OwnerId:  p.OwnerId,
	}
	if p.Royalty != nil {
		c.Royalty = make(map[Account]uint32, len(p.Royalty))
		for k, v := range p.Royalty {
			c.Royalty[k] = v
		}
	}
	if p.Price != nil {
		price := *p.Price
		c.Price = &price
	}
	return c
}

// ValidateRoyalty rejects any royalty table whose shares sum above the
// denominator. A nil table is valid.
func ValidateRoyalty(royalty map[Account]uint32) error {
	total := uint64(0)
	for _, share := range royalty {
		total += uint64(share)
	}
	if total > RoyaltyDenominator {
		return ErrInvalidRoyalty
	}
	return nil
}

// Token is an individually owned unit minted under exactly one series.
// SeriesId is a plain identifier, never an ownership pointer.
type Token struct {
	Id          TokenId  `json:"id"`
	SeriesId    SeriesId `json:"series_id"`
	OwnerId     Account  `json:"owner_id"`
	Image       string   `json:"image,omitempty"`
	Reference   string   `json:"reference,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
}

func (p *Token) Clone() *Token {
	c := *p
	return &c
}

// TokenAttrs are the caller-supplied display fields attached at mint time.
type TokenAttrs struct {
	Image       string `json:"image,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// RegistryStatus is the persisted bookkeeping record.
type RegistryStatus struct {
	Version     string
	SeriesCount uint64
	TokenCount  uint64
}

func (p *RegistryStatus) Clone() *RegistryStatus {
	c := *p
	return &c
}
