package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/deppfellow/wedding-backend/internal/lib/media"
	"github.com/deppfellow/wedding-backend/internal/model"
	"github.com/deppfellow/wedding-backend/internal/repository"
	"github.com/deppfellow/wedding-backend/internal/validation"
	"github.com/rs/zerolog"
)

// MediaKind declares how one kind of media is uploaded and which text
// fields travel with it.
type MediaKind struct {
	Entity string
	Folder string
	// URLField is the document field holding the public URL.
	URLField string
	Policy   media.Policy

	// CreateRules and UpdateRules map each accepted text field to its
	// validator rule. Fields missing from the map are rejected.
	CreateRules map[string]string
	UpdateRules map[string]string
}

// MediaService stores documents backed by a file on the asset host.
//
// Create checks the file against the kind's policy before anything leaves
// the process, uploads it, then inserts the document; a failed insert
// removes the upload again. Delete removes the document first and the file
// second.
type MediaService[T any] struct {
	*Resource[T]
	kind   MediaKind
	host   media.Host
	queue  TaskQueue
	logger *zerolog.Logger
}

func NewMediaService[T any](collection *repository.Collection[T], kind MediaKind, host media.Host, queue TaskQueue, logger *zerolog.Logger) *MediaService[T] {
	return &MediaService[T]{
		Resource: NewResource(collection, kind.Entity),
		kind:     kind,
		host:     host,
		queue:    queue,
		logger:   logger,
	}
}

func (s *MediaService[T]) Kind() MediaKind {
	return s.kind
}

func (s *MediaService[T]) Create(ctx context.Context, req *model.UploadRequest) (*T, error) {
	if req.File == nil {
		return nil, model.NoFileError()
	}

	if err := validation.ValidateFields(req.Values, s.kind.CreateRules); err != nil {
		return nil, validation.ToHTTPError(err)
	}

	file, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	if _, err := s.kind.Policy.Check(file, req.File.Size); err != nil {
		var policyErr *media.PolicyError
		if errors.As(err, &policyErr) {
			return nil, errs.NewBadRequestError(policyErr.Reason, true, nil,
				[]errs.FieldError{{Field: "file", Error: policyErr.Reason}}, nil)
		}
		return nil, err
	}

	asset, err := s.host.Upload(ctx, file, media.UploadOptions{
		Folder:       s.kind.Folder,
		ResourceType: s.kind.Policy.ResourceType,
		Filename:     req.File.Filename,
	})
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any, len(req.Values)+3)
	for key, value := range req.Values {
		if value != "" {
			fields[key] = value
		}
	}
	fields[s.kind.URLField] = asset.URL
	fields["assetKey"] = asset.Key
	fields["assetType"] = asset.Type

	item, err := s.collection.Insert(ctx, fields)
	if err != nil {
		// The request may be cancelled already; the clean-up must still run.
		if delErr := s.host.Delete(context.WithoutCancel(ctx), asset.Key, asset.Type); delErr != nil {
			s.logger.Error().Err(delErr).Str("asset_key", asset.Key).Msg("failed to remove orphaned upload")
		}
		return nil, err
	}

	return item, nil
}

// Update changes the text fields of a document. The file itself is
// replaced by deleting and re-creating.
func (s *MediaService[T]) Update(ctx context.Context, req *model.UpdateMediaRequest) (*T, error) {
	if err := validation.ValidateFields(req.Values, s.kind.UpdateRules); err != nil {
		return nil, validation.ToHTTPError(err)
	}

	// An empty value clears an optional field; required ones are kept.
	fields := make(map[string]any, len(req.Values))
	for key, value := range req.Values {
		if value == "" && strings.HasPrefix(s.kind.CreateRules[key], "required") {
			continue
		}
		fields[key] = value
	}
	if len(fields) == 0 {
		return nil, errs.NewBadRequestError("No fields to update", false, nil, nil, nil)
	}

	item, err := s.collection.Update(ctx, req.ID, fields)
	if err != nil {
		return nil, s.notFound(err)
	}
	return item, nil
}

func (s *MediaService[T]) Delete(ctx context.Context, id string) error {
	item, err := s.collection.Get(ctx, id)
	if err != nil {
		return s.notFound(err)
	}

	if err := s.collection.Delete(ctx, id); err != nil {
		return s.notFound(err)
	}

	holder, ok := any(item).(model.AssetHolder)
	if !ok {
		return nil
	}
	key, resourceType := holder.AssetRef()
	if key == "" {
		return nil
	}

	s.removeAsset(ctx, key, resourceType)

	return nil
}

// removeAsset queues the deletion, or deletes inline when no queue is
// available. Failures leave an orphaned file and are only logged.
func (s *MediaService[T]) removeAsset(ctx context.Context, key, resourceType string) {
	if s.queue != nil {
		err := s.queue.EnqueueAssetDeletion(ctx, key, resourceType)
		if err == nil {
			return
		}
		s.logger.Warn().Err(err).Str("asset_key", key).Msg("could not queue asset deletion, deleting inline")
	}

	if err := s.host.Delete(context.WithoutCancel(ctx), key, resourceType); err != nil {
		s.logger.Error().Err(err).Str("asset_key", key).Msg("failed to delete asset")
	}
}
