package registry

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type artworkResponse struct {
	AssetId    string   `json:"assetId"`
	Registered bool     `json:"registered"`
	Validated  bool     `json:"validated"`
	Metadata   Metadata `json:"metadata"`
}

type httpRegistry struct {
	baseUrl string
	client  *retryablehttp.Client
	cache   *cache.Cache
}

// NewHttpRegistry talks to the artwork registry service over HTTP.
// Responses are cached briefly so settlement checks do not hammer the
// registry.
func NewHttpRegistry(baseUrl string, client *retryablehttp.Client) Registry {
	return httpRegistry{
		baseUrl: baseUrl,
		client:  client,
		cache:   cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r httpRegistry) IsRegistered(assetId string) (bool, error) {
	artwork, err := r.getArtwork(assetId)
	if err != nil {
		if err == ErrArtworkNotFound {
			return false, nil
		}
		return false, err
	}

	return artwork.Registered, nil
}

func (r httpRegistry) IsValidated(assetId string) (bool, error) {
	artwork, err := r.getArtwork(assetId)
	if err != nil {
		if err == ErrArtworkNotFound {
			return false, nil
		}
		return false, err
	}

	return artwork.Validated, nil
}

func (r httpRegistry) GetMetadata(assetId string) (Metadata, error) {
	artwork, err := r.getArtwork(assetId)
	if err != nil {
		return Metadata{}, err
	}

	return artwork.Metadata, nil
}

func (r httpRegistry) getArtwork(assetId string) (*artworkResponse, error) {
	if cached, found := r.cache.Get(assetId); found {
		artwork := cached.(artworkResponse)
		return &artwork, nil
	}

	resp, err := r.client.Get(fmt.Sprintf("%s/artworks/%s", r.baseUrl, assetId))
	if err != nil {
		zap.L().With(zap.String("assetId", assetId), zap.Error(err)).Error("Registry: Request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrArtworkNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var artwork artworkResponse
	if err := json.Unmarshal(body, &artwork); err != nil {
		zap.L().With(zap.String("assetId", assetId), zap.Error(err)).Error("Registry: Failed to decode response")
		return nil, err
	}

	r.cache.Set(assetId, artwork, cache.DefaultExpiration)

	return &artwork, nil
}
