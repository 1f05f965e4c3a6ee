package repository

import (
	"context"

	"github.com/olivere/elastic/v7"
)

func search(service *elastic.SearchService) (*elastic.SearchResult, error) {
	return service.Do(context.Background())
}
