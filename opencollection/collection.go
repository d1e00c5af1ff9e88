// Package opencollection is the unindexed baseline: tokens and series in
// plain slices, every lookup a linear scan. It duplicates the registry's
// concepts without secondary indices or guards and exists only for
// comparison; nothing in the core depends on it. At n tokens every get,
// update and ownership question costs O(n), which is exactly why the
// registry keeps maps and explicit indices instead.
package opencollection

type Token struct {
	Id          uint64
	SeriesId    uint64
	Owner       string
	ImageUrl    string
	Reference   string
	Title       string
	Description string
}

type Series struct {
	Id   uint64
	Name string
}

type Collection struct {
	Tokens []Token
	Series []Series
}

func New() *Collection {
	return &Collection{}
}

// MintToken appends a token. No uniqueness, price or role checks.
func (p *Collection) MintToken(id, seriesId uint64, owner, imageUrl,
	reference, title, description string) {
	p.Tokens = append(p.Tokens, Token{
		Id:          id,
		SeriesId:    seriesId,
		Owner:       owner,
		ImageUrl:    imageUrl,
		Reference:   reference,
		Title:       title,
		Description: description,
	})
}

func (p *Collection) CreateSeries(id uint64, name string) {
	p.Series = append(p.Series, Series{Id: id, Name: name})
}

func (p *Collection) GetToken(id uint64) *Token {
	for i := range p.Tokens {
		if p.Tokens[i].Id == id {
			token := p.Tokens[i]
			return &token
		}
	}
	return nil
}

func (p *Collection) GetSeries(id uint64) *Series {
	for i := range p.Series {
		if p.Series[i].Id == id {
			series := p.Series[i]
			return &series
		}
	}
	return nil
}

func (p *Collection) UpdateSeriesName(id uint64, name string) {
	for i := range p.Series {
		if p.Series[i].Id == id {
			p.Series[i].Name = name
			return
		}
	}
}

func (p *Collection) UpdateTokenDetails(id uint64, owner, imageUrl,
	reference, title, description string) {
	for i := range p.Tokens {
		if p.Tokens[i].Id == id {
			p.Tokens[i].Owner = owner
			p.Tokens[i].ImageUrl = imageUrl
			p.Tokens[i].Reference = reference
			p.Tokens[i].Title = title
			p.Tokens[i].Description = description
			return
		}
	}
}
