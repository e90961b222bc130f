package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/deppfellow/wedding-backend/internal/config"
	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/rs/zerolog"
)

// Cloudinary stores assets on Cloudinary.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zerolog.Logger
}

func NewCloudinary(cfg *config.MediaConfig, logger *zerolog.Logger) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &Cloudinary{cld: cld, folder: cfg.Folder, logger: logger}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, opts UploadOptions) (*Asset, error) {
	folder := c.folder
	if opts.Folder != "" {
		folder = folder + "/" + opts.Folder
	}

	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		ResourceType: opts.ResourceType,
	})
	if err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceMedia, err)
	}
	if resp.Error.Message != "" {
		return nil, errs.NewUpstreamError(errs.ServiceMedia, errors.New(resp.Error.Message))
	}

	c.logger.Debug().
		Str("public_id", resp.PublicID).
		Str("resource_type", resp.ResourceType).
		Int("bytes", resp.Bytes).
		Msg("asset uploaded")

	resourceType := resp.ResourceType
	if resourceType == "" {
		resourceType = opts.ResourceType
	}

	return &Asset{URL: resp.SecureURL, Key: resp.PublicID, Type: resourceType}, nil
}

// Delete removes an asset. An asset that is already gone is not an error.
func (c *Cloudinary) Delete(ctx context.Context, key, resourceType string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     key,
		ResourceType: resourceType,
	})
	if err != nil {
		return errs.NewUpstreamError(errs.ServiceMedia, err)
	}
	if resp.Error.Message != "" {
		return errs.NewUpstreamError(errs.ServiceMedia, errors.New(resp.Error.Message))
	}

	switch resp.Result {
	case "ok", "not found":
		return nil
	default:
		return errs.NewUpstreamError(errs.ServiceMedia, fmt.Errorf("destroy %s: %s", key, resp.Result))
	}
}
