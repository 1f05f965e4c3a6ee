package registry

import (
	"errors"
	"time"
)

var ErrArtworkNotFound = errors.New("artwork not found")

type Metadata struct {
	Title        string    `json:"title"`
	Creator      string    `json:"creator"`
	CreationDate time.Time `json:"creationDate"`
}

// Registry is the external artwork registry/validator collaborator. The
// engine consults it before admitting a listing when the registered-asset
// precondition is enabled.
type Registry interface {
	IsRegistered(assetId string) (bool, error)
	IsValidated(assetId string) (bool, error)
	GetMetadata(assetId string) (Metadata, error)
}
