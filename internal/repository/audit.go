package repository

import (
	"encoding/json"

	"github.com/gallerynet/settlement-engine/internal/elastic_search"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/olivere/elastic/v7"
)

type AuditRepository interface {
	GetRecent(size int) ([]entity.AuditEvent, error)
	GetByAsset(assetId string, size int) ([]entity.AuditEvent, error)
}

type auditRepository struct {
	elastic elastic_search.Index
}

func NewAuditRepository(elastic elastic_search.Index) AuditRepository {
	return auditRepository{elastic}
}

func (r auditRepository) GetRecent(size int) ([]entity.AuditEvent, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.AuditIndex.Get()).
		Query(elastic.NewMatchAllQuery()).
		Sort("time", false).
		Size(size))

	return r.findMany(result, err)
}

func (r auditRepository) GetByAsset(assetId string, size int) ([]entity.AuditEvent, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.AuditIndex.Get()).
		Query(elastic.NewTermQuery("assetId.keyword", assetId)).
		Sort("time", true).
		Size(size))

	return r.findMany(result, err)
}

func (r auditRepository) findMany(results *elastic.SearchResult, err error) ([]entity.AuditEvent, error) {
	if err != nil {
		return nil, err
	}

	events := make([]entity.AuditEvent, 0)
	for _, hit := range results.Hits.Hits {
		var ev entity.AuditEvent
		if err := json.Unmarshal(hit.Source, &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}
