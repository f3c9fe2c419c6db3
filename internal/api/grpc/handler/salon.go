package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
)

var _ SaloonsServer = (*Salon)(nil)

// Salon handles gRPC endpoints for salons.
type Salon struct {
	salonService   SalonService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewSalon creates a new Salon handler.
func NewSalon(salonService SalonService, contextManager model.ContextManager, logger *logger.Logger) *Salon {
	return &Salon{
		salonService:   salonService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Salon) Create(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return h.mutate(ctx, in, "create", h.salonService.Create)
}

func (h *Salon) Edit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return h.mutate(ctx, in, "edit", h.salonService.Edit)
}

// List returns every salon under the "saloons" field.
func (h *Salon) List(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	salons, err := h.salonService.List(ctx)
	if err != nil {
		h.logger.Error("Salon handler: list failed",
			"error", err.Error())
		return nil, handleError(err)
	}
	return toStruct(dto.FromSalons(salons))
}

func (h *Salon) Get(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	salon, err := h.salonService.Get(ctx, stringField(in, "id"))
	if err != nil {
		return nil, handleError(err)
	}
	return toStruct(dto.FromSalon(salon))
}

func (h *Salon) Delete(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	callerID, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	body, err := bodyOf(in)
	if err != nil {
		return nil, err
	}

	if err := h.salonService.Delete(ctx, callerID, body); err != nil {
		h.logger.Info("Salon handler: delete failed",
			"caller_id", callerID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &structpb.Struct{}, nil
}

func (h *Salon) mutate(
	ctx context.Context,
	in *structpb.Struct,
	op string,
	call func(context.Context, uuid.UUID, []byte) (model.Salon, error),
) (*structpb.Struct, error) {
	callerID, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return nil, errUnauthenticated()
	}

	body, err := bodyOf(in)
	if err != nil {
		return nil, err
	}

	salon, err := call(ctx, callerID, body)
	if err != nil {
		h.logger.Info("Salon handler: "+op+" failed",
			"caller_id", callerID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return toStruct(dto.FromSalon(salon))
}
