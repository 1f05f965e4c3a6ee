package repository

import (
	"encoding/json"
	"errors"

	"github.com/gallerynet/settlement-engine/internal/elastic_search"
	"github.com/gallerynet/settlement-engine/internal/entity"
	"github.com/olivere/elastic/v7"
)

var ErrAuctionNotFound = errors.New("auction not found")

type AuctionRepository interface {
	GetAuction(auctionId uint64) (entity.Auction, error)
	GetOpenAuctions(size, from int) ([]entity.Auction, error)
}

type auctionRepository struct {
	elastic elastic_search.Index
}

func NewAuctionRepository(elastic elastic_search.Index) AuctionRepository {
	return auctionRepository{elastic}
}

func (r auctionRepository) GetAuction(auctionId uint64) (entity.Auction, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.AuctionIndex.Get()).
		Query(elastic.NewTermQuery("id", auctionId)).
		Size(1))

	return r.findOne(result, err)
}

func (r auctionRepository) GetOpenAuctions(size, from int) ([]entity.Auction, error) {
	result, err := search(r.elastic.GetClient().
		Search(elastic_search.AuctionIndex.Get()).
		Query(elastic.NewTermQuery("ended", false)).
		Sort("endTime", true).
		Size(size).
		From(from))

	return r.findMany(result, err)
}

func (r auctionRepository) findOne(results *elastic.SearchResult, err error) (entity.Auction, error) {
	if err != nil {
		return entity.Auction{}, err
	}

	if len(results.Hits.Hits) == 0 {
		return entity.Auction{}, ErrAuctionNotFound
	}

	var auction entity.Auction
	err = json.Unmarshal(results.Hits.Hits[0].Source, &auction)

	return auction, err
}

func (r auctionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.Auction, error) {
	if err != nil {
		return nil, err
	}

	auctions := make([]entity.Auction, 0)
	for _, hit := range results.Hits.Hits {
		var auction entity.Auction
		if err := json.Unmarshal(hit.Source, &auction); err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}

	return auctions, nil
}
