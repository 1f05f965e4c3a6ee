package repository

import (
	"encoding/json"
	"errors"

	"github.com/gallerynet/settlement-engine/internal/elastic_search"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/olivere/elastic/v7"
)

var ErrOwnerNotFound = errors.New("owner not found")

type OwnershipRepository interface {
	GetHistory(assetId string) ([]entity.OwnershipRecord, error)
	GetCurrentOwner(assetId string) (string, error)
}

type ownershipRepository struct {
	elastic elastic_search.Index
}

func NewOwnershipRepository(elastic elastic_search.Index) OwnershipRepository {
	return ownershipRepository{elastic}
}

func (r ownershipRepository) GetHistory(assetId string) ([]entity.OwnershipRecord, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.OwnershipIndex.Get()).
		Query(elastic.NewTermQuery("assetId.keyword", assetId)).
		Sort("seq", true).
		Size(10000))
	if err != nil {
		return nil, err
	}

	records := make([]entity.OwnershipRecord, 0)
	for _, hit := range result.Hits.Hits {
		var record entity.OwnershipRecord
		if err := json.Unmarshal(hit.Source, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r ownershipRepository) GetCurrentOwner(assetId string) (string, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.OwnershipIndex.Get()).
		Query(elastic.NewTermQuery("assetId.keyword", assetId)).
		Sort("seq", false).
		Size(1))
	if err != nil {
		return "", err
	}

	if len(result.Hits.Hits) == 0 {
		return "", ErrOwnerNotFound
	}

	var record entity.OwnershipRecord
	if err := json.Unmarshal(result.Hits.Hits[0].Source, &record); err != nil {
		return "", err
	}

	return record.Owner, nil
}
