package registry

import (
	"github.com/mint-labs/nft-registry/common"
	"github.com/mint-labs/nft-registry/registry"
)

type Model struct {
	reg *registry.Registry
}

func NewModel(reg *registry.Registry) *Model {
	return &Model{reg: reg}
}

func (s *Model) newSeriesInfo(series *common.Series) *SeriesInfo {
	supply, _ := s.reg.SupplyForSeries(series.Id)
	return &SeriesInfo{
		Id:       series.Id,
		Metadata: series.Metadata,
		Royalty:  series.Royalty,
		Price:    series.Price,
		OwnerId:  series.OwnerId,
		Supply:   supply,
	}
}

func (s *Model) GetSeriesInfo(id common.SeriesId) (*SeriesInfo, error) {
	series, err := s.reg.GetSeries(id)
	if err != nil {
		return nil, err
	}
	return s.newSeriesInfo(series), nil
}

func (s *Model) GetSeriesInfoList(from, limit int) []*SeriesInfo {
	seriesList := s.reg.SeriesList(from, limit)
	result := make([]*SeriesInfo, 0, len(seriesList))
	for _, series := range seriesList {
		result = append(result, s.newSeriesInfo(series))
	}
	return result
}
