package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/saloonbook/saloon-server/internal/api/dto"
	"github.com/saloonbook/saloon-server/internal/api/http/response"
	"github.com/saloonbook/saloon-server/internal/logger"
	"github.com/saloonbook/saloon-server/internal/model"
)

// Salon handles HTTP endpoints for salons and their pictures.
type Salon struct {
	salonService   SalonService
	contextManager model.ContextManager
	maxUploadBytes int64
	logger         *logger.Logger
}

// NewSalon creates a new Salon handler. maxUploadBytes limits picture
// uploads.
func NewSalon(salonService SalonService, contextManager model.ContextManager, maxUploadBytes int64, logger *logger.Logger) *Salon {
	return &Salon{
		salonService:   salonService,
		contextManager: contextManager,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Create serves POST /api/saloons/new.
func (h *Salon) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}
	body, ok := readBody(w, r, MaxJSONBodyBytes)
	if !ok {
		return
	}

	salon, err := h.salonService.Create(r.Context(), caller, body)
	if err != nil {
		h.logger.Info("Salon handler: create failed",
			"caller_id", caller,
			"error", err.Error())
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, dto.FromSalon(salon))
}

// List serves GET /api/saloons/get.
func (h *Salon) List(w http.ResponseWriter, r *http.Request) {
	salons, err := h.salonService.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, dto.FromSalons(salons))
}

// Get serves GET /api/saloons/get/{id}.
func (h *Salon) Get(w http.ResponseWriter, r *http.Request) {
	salon, err := h.salonService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, dto.FromSalon(salon))
}

// Edit serves PUT /api/saloons/edit.
func (h *Salon) Edit(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}
	body, ok := readBody(w, r, MaxJSONBodyBytes)
	if !ok {
		return
	}

	salon, err := h.salonService.Edit(r.Context(), caller, body)
	if err != nil {
		h.logger.Info("Salon handler: edit failed",
			"caller_id", caller,
			"error", err.Error())
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, dto.FromSalon(salon))
}

// Delete serves DELETE /api/saloons/delete.
func (h *Salon) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}
	body, ok := readBody(w, r, MaxJSONBodyBytes)
	if !ok {
		return
	}

	if err := h.salonService.Delete(r.Context(), caller, body); err != nil {
		h.logger.Info("Salon handler: delete failed",
			"caller_id", caller,
			"error", err.Error())
		response.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddPicture serves POST /api/saloons/{id}/pictures with the raw image as
// the body.
func (h *Salon) AddPicture(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.contextManager)
	if !ok {
		return
	}
	data, ok := readBody(w, r, h.maxUploadBytes)
	if !ok {
		return
	}

	salon, key, err := h.salonService.AddPicture(r.Context(), caller, mux.Vars(r)["id"], data, r.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Info("Salon handler: picture upload failed",
			"caller_id", caller,
			"error", err.Error())
		response.WriteError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, dto.PictureAdded{Key: key, Salon: dto.FromSalon(salon)})
}

// GetPicture serves GET /api/saloons/{id}/pictures/{picture}.
func (h *Salon) GetPicture(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	obj, err := h.salonService.GetPicture(r.Context(), vars["id"], vars["picture"])
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.Warn("Salon handler: picture stream interrupted",
			"salon_id", vars["id"],
			"error", err.Error())
	}
}
