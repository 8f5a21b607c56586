package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shuttlehub/club-system/services"
)

const maxPhotoUploadBytes = 10 << 20 // 10MB

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(venueService services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	venue, err := h.venueService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"venue": venue}, nil)
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"venues": venues}, nil)
}

func (h *VenueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := venueIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}
	venue, err := h.venueService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil)
}

func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := venueIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}
	var input services.CreateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	venue, err := h.venueService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil)
}

// UploadPhoto accepts a multipart form with a "photo" file field.
func (h *VenueHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := venueIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequestResponse(w, r, errors.New("photo file field is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		badRequestResponse(w, r, errors.New("photo must be a jpeg, png or webp image"))
		return
	}

	venue, err := h.venueService.UploadPhoto(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil)
}

func (h *VenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := venueIDParam(r)
	if err != nil {
		notFoundResponse(w, r)
		return
	}
	if err := h.venueService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func venueIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "venueID"))
}
