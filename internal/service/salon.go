package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/apierrors"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
	"github.com/saloonbook/saloon-server/internal/policy"
	"github.com/saloonbook/saloon-server/internal/validation"
)

// Salon manages salons and their pictures. Every mutation is authorized
// against the stored owner before the body is validated.
type Salon struct {
	salons    model.SalonStore
	storage   model.Storage
	validator model.Validator
	logger    *logger.Logger
	now       func() time.Time
}

func NewSalon(salons model.SalonStore, storage model.Storage, validator model.Validator, logger *logger.Logger) *Salon {
	return &Salon{
		salons:    salons,
		storage:   storage,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// PictureKey returns the storage key of a salon picture.
func PictureKey(salonID uuid.UUID, picture string) string {
	return fmt.Sprintf("saloons/%s/%s", salonID, picture)
}

func (s *Salon) Create(ctx context.Context, callerID uuid.UUID, body []byte) (model.Salon, error) {
	target, err := validation.DecodeTarget(body)
	if err != nil {
		return model.Salon{}, err
	}
	ownerID, err := policy.AuthorizeClaim(callerID, target.OwnerID, "create a salon for another account")
	if err != nil {
		s.logger.Info("Salon service: create denied",
			"caller_id", callerID,
			"owner_id", target.OwnerID)
		return model.Salon{}, err
	}

	var req validation.CreateSalonRequest
	if err := s.validator.Decode(body, &req); err != nil {
		return model.Salon{}, err
	}

	now := s.now().UTC()
	salon := model.Salon{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      req.Name,
		Location:  model.Location{Lat: req.Address.Lat, Lng: req.Address.Lng},
		Services:  req.Services,
		Pictures:  req.Pictures,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.salons.Create(context.WithoutCancel(ctx), salon)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Salon{}, apierrors.NewNotFound("account", ownerID)
		}
		s.logger.Error("Salon service: failed to create salon",
			"owner_id", ownerID,
			"error", err.Error())
		return model.Salon{}, apierrors.NewStoreUnavailable("create salon", err)
	}

	s.logger.Info("Salon service: salon created",
		"salon_id", saved.ID,
		"owner_id", saved.OwnerID)

	return saved, nil
}

func (s *Salon) List(ctx context.Context) ([]model.Salon, error) {
	salons, err := s.salons.List(ctx)
	if err != nil {
		s.logger.Error("Salon service: failed to list salons", "error", err.Error())
		return nil, apierrors.NewStoreUnavailable("list salons", err)
	}
	return salons, nil
}

func (s *Salon) Get(ctx context.Context, id string) (model.Salon, error) {
	salonID, err := uuid.Parse(id)
	if err != nil {
		return model.Salon{}, apierrors.NewNotFound("salon", id)
	}
	return s.load(ctx, salonID)
}

// Edit replaces a salon owned by the caller. A body version turns the write
// into a compare-and-swap against the stored version.
func (s *Salon) Edit(ctx context.Context, callerID uuid.UUID, body []byte) (model.Salon, error) {
	existing, err := s.authorizeTarget(ctx, callerID, body, "edit this salon")
	if err != nil {
		return model.Salon{}, err
	}

	var req validation.EditSalonRequest
	if err := s.validator.Decode(body, &req); err != nil {
		return model.Salon{}, err
	}

	replacement := model.Salon{
		ID:        existing.ID,
		OwnerID:   existing.OwnerID,
		Name:      req.Name,
		Location:  model.Location{Lat: req.Address.Lat, Lng: req.Address.Lng},
		Services:  req.Services,
		Pictures:  req.Pictures,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: s.now().UTC(),
	}

	updated, err := s.salons.Replace(context.WithoutCancel(ctx), replacement, req.Version)
	if err != nil {
		return model.Salon{}, s.replaceError(existing.ID, req.Version, err)
	}

	s.logger.Info("Salon service: salon edited",
		"salon_id", updated.ID,
		"version", updated.Version)

	return updated, nil
}

// Delete removes a salon owned by the caller. Its uploaded pictures are
// removed best-effort afterwards.
func (s *Salon) Delete(ctx context.Context, callerID uuid.UUID, body []byte) error {
	existing, err := s.authorizeTarget(ctx, callerID, body, "delete this salon")
	if err != nil {
		return err
	}

	var req validation.DeleteSalonRequest
	if err := s.validator.Decode(body, &req); err != nil {
		return err
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.salons.Delete(ctx, existing.ID, existing.OwnerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewNotFound("salon", existing.ID)
		}
		s.logger.Error("Salon service: failed to delete salon",
			"salon_id", existing.ID,
			"error", err.Error())
		return apierrors.NewStoreUnavailable("delete salon", err)
	}

	prefix := PictureKey(existing.ID, "")
	for _, picture := range existing.Pictures {
		if !strings.HasPrefix(picture, prefix) {
			continue
		}
		if err := s.storage.Delete(ctx, picture); err != nil {
			s.logger.Warn("Salon service: failed to delete picture",
				"salon_id", existing.ID,
				"key", picture,
				"error", err.Error())
		}
	}

	s.logger.Info("Salon service: salon deleted",
		"salon_id", existing.ID)

	return nil
}

// AddPicture stores an image for a salon owned by the caller and appends its
// key to the salon's pictures.
func (s *Salon) AddPicture(ctx context.Context, callerID uuid.UUID, id string, data []byte, contentType string) (model.Salon, string, error) {
	salonID, err := uuid.Parse(id)
	if err != nil {
		return model.Salon{}, "", apierrors.NewNotFound("salon", id)
	}
	existing, err := s.load(ctx, salonID)
	if err != nil {
		return model.Salon{}, "", err
	}
	if err := policy.Authorize(callerID, existing.OwnerID, "add pictures to this salon"); err != nil {
		s.logger.Info("Salon service: picture upload denied",
			"caller_id", callerID,
			"salon_id", salonID)
		return model.Salon{}, "", err
	}

	if len(data) == 0 {
		return model.Salon{}, "", apierrors.NewValidationFailure("picture is empty")
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return model.Salon{}, "", apierrors.NewValidationFailure("picture must be an image")
	}

	ctx = context.WithoutCancel(ctx)
	key := PictureKey(salonID, uuid.NewString())
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		s.logger.Error("Salon service: failed to upload picture",
			"salon_id", salonID,
			"error", err.Error())
		return model.Salon{}, "", apierrors.NewStoreUnavailable("upload picture", err)
	}

	updated := existing
	updated.Pictures = append(append([]string{}, existing.Pictures...), key)
	updated.UpdatedAt = s.now().UTC()

	version := existing.Version
	saved, err := s.salons.Replace(ctx, updated, &version)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Salon service: failed to remove orphaned picture",
				"key", key,
				"error", delErr.Error())
		}
		return model.Salon{}, "", s.replaceError(salonID, &version, err)
	}

	s.logger.Info("Salon service: picture added",
		"salon_id", salonID,
		"key", key)

	return saved, key, nil
}

// GetPicture opens a picture listed on the salon. The caller closes the
// returned body.
func (s *Salon) GetPicture(ctx context.Context, id string, picture string) (model.Object, error) {
	salon, err := s.Get(ctx, id)
	if err != nil {
		return model.Object{}, err
	}

	key := PictureKey(salon.ID, picture)
	found := false
	for _, p := range salon.Pictures {
		if p == key {
			found = true
			break
		}
	}
	if !found {
		return model.Object{}, apierrors.NewNotFound("picture", picture)
	}

	obj, err := s.storage.Download(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Object{}, apierrors.NewNotFound("picture", picture)
		}
		s.logger.Error("Salon service: failed to download picture",
			"key", key,
			"error", err.Error())
		return model.Object{}, apierrors.NewStoreUnavailable("download picture", err)
	}
	return obj, nil
}

// authorizeTarget loads the salon named by the body and checks that the
// caller owns it and does not claim another owner.
func (s *Salon) authorizeTarget(ctx context.Context, callerID uuid.UUID, body []byte, action string) (model.Salon, error) {
	target, err := validation.DecodeTarget(body)
	if err != nil {
		return model.Salon{}, err
	}
	salonID, err := uuid.Parse(target.ID)
	if err != nil {
		return model.Salon{}, apierrors.NewValidationFailure("at '/id': salon id must be a uuid")
	}

	existing, err := s.load(ctx, salonID)
	if err != nil {
		return model.Salon{}, err
	}

	if err := policy.Authorize(callerID, existing.OwnerID, action); err != nil {
		s.logger.Info("Salon service: mutation denied",
			"caller_id", callerID,
			"salon_id", salonID,
			"action", action)
		return model.Salon{}, err
	}
	if _, err := policy.AuthorizeClaim(callerID, target.OwnerID, action); err != nil {
		s.logger.Info("Salon service: owner claim denied",
			"caller_id", callerID,
			"salon_id", salonID,
			"owner_id", target.OwnerID)
		return model.Salon{}, err
	}

	return existing, nil
}

func (s *Salon) load(ctx context.Context, id uuid.UUID) (model.Salon, error) {
	salon, err := s.salons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Salon{}, apierrors.NewNotFound("salon", id)
		}
		s.logger.Error("Salon service: failed to get salon",
			"salon_id", id,
			"error", err.Error())
		return model.Salon{}, apierrors.NewStoreUnavailable("look up salon", err)
	}
	return salon, nil
}

func (s *Salon) replaceError(id uuid.UUID, version *int64, err error) error {
	switch {
	case errors.Is(err, model.ErrVersionMismatch) && version != nil:
		s.logger.Info("Salon service: stale version",
			"salon_id", id,
			"version", *version)
		return apierrors.NewVersionConflict("salon", *version)
	case errors.Is(err, model.ErrNotFound):
		return apierrors.NewNotFound("salon", id)
	default:
		s.logger.Error("Salon service: failed to replace salon",
			"salon_id", id,
			"error", err.Error())
		return apierrors.NewStoreUnavailable("replace salon", err)
	}
}
