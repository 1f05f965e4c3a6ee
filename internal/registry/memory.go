package registry

import "sync"

type memoryArtwork struct {
	metadata  Metadata
	validated bool
}

// MemoryRegistry is an in-process Registry for tests and standalone runs.
type MemoryRegistry struct {
	mu       sync.RWMutex
	artworks map[string]memoryArtwork
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{artworks: map[string]memoryArtwork{}}
}

func (r *MemoryRegistry) Register(assetId string, metadata Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.artworks[assetId] = memoryArtwork{metadata: metadata}
}

func (r *MemoryRegistry) Validate(assetId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artwork := r.artworks[assetId]
	artwork.validated = true
	r.artworks[assetId] = artwork
}

func (r *MemoryRegistry) IsRegistered(assetId string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.artworks[assetId]
	return ok, nil
}

func (r *MemoryRegistry) IsValidated(assetId string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.artworks[assetId].validated, nil
}

func (r *MemoryRegistry) GetMetadata(assetId string) (Metadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artwork, ok := r.artworks[assetId]
	if !ok {
		return Metadata{}, ErrArtworkNotFound
	}

	return artwork.metadata, nil
}
