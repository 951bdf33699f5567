package services

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"slices"

	"github.com/printcraft/storefront/app/models"
	"golang.org/x/crypto/blake2b"
)

type DesignDecoder interface {
	Decode(ctx context.Context, f models.DesignFile) (*models.DesignAsset, error)
}

// DataURIDecoder embeds the raw upload as a base64 data URI.
type DataURIDecoder struct{}

func (DataURIDecoder) Decode(ctx context.Context, f models.DesignFile) (*models.DesignAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sum := blake2b.Sum256(f.Data)
	return &models.DesignAsset{
		FileName:  f.Name,
		MediaType: f.Type,
		Size:      int64(len(f.Data)),
		DataURI:   "data:" + f.Type + ";base64," + base64.StdEncoding.EncodeToString(f.Data),
		Digest:    hex.EncodeToString(sum[:]),
	}, nil
}

// ValidateDesign checks the declared media type and the size of an upload.
func ValidateDesign(f models.DesignFile) error {
	if !slices.Contains(models.AcceptedDesignTypes, f.Type) {
		return models.ErrUnsupportedType
	}
	size := f.Size
	if n := int64(len(f.Data)); n > size {
		size = n
	}
	if size > models.MaxDesignBytes {
		return models.ErrTooLarge
	}
	return nil
}
