package repository

import (
	"encoding/json"
	"errors"

	"github.com/gallerynet/settlement-engine/internal/elastic_search"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/olivere/elastic/v7"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository interface {
	GetListing(assetId string) (entity.Listing, error)
	GetActiveListings(size, from int) ([]entity.Listing, error)
}

type listingRepository struct {
	elastic elastic_search.Index
}

func NewListingRepository(elastic elastic_search.Index) ListingRepository {
	return listingRepository{elastic}
}

func (r listingRepository) GetListing(assetId string) (entity.Listing, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(elastic.NewTermQuery("assetId.keyword", assetId)).
		Size(1))

	return r.findOne(result, err)
}

func (r listingRepository) GetActiveListings(size, from int) ([]entity.Listing, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.ListingIndex.Get()).
		Query(elastic.NewTermQuery("active", true)).
		Sort("listedAt", false).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r listingRepository) findOne(results *elastic.SearchResult, err error) (entity.Listing, error) {
	if err != nil {
		return entity.Listing{}, err
	}

	if len(results.Hits.Hits) == 0 {
		return entity.Listing{}, ErrListingNotFound
	}

	var listing entity.Listing
	err = json.Unmarshal(results.Hits.Hits[0].Source, &listing)

	return listing, err
}

func (r listingRepository) findMany(results *elastic.SearchResult, err error) ([]entity.Listing, error) {
	if err != nil {
		return nil, err
	}

	listings := make([]entity.Listing, 0)
	for _, hit := range results.Hits.Hits {
		var listing entity.Listing
		if err := json.Unmarshal(hit.Source, &listing); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}
