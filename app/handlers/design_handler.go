package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/printcraft/storefront/app/models"
	"github.com/printcraft/storefront/app/services"
	"github.com/printcraft/storefront/app/utils/renderer"
	"github.com/unrolled/render"
)

const (
	designFormField = "design"

	// multipart framing on top of the largest accepted design
	uploadBodyLimit = models.MaxDesignBytes + 1<<20
)

type DesignHandler struct {
	render     *render.Render
	uploadWait time.Duration
}

func NewDesignHandler(r *render.Render, uploadWait time.Duration) *DesignHandler {
	return &DesignHandler{render: r, uploadWait: uploadWait}
}

type colorRequest struct {
	Color string `json:"color"`
}

type sizeRequest struct {
	Size string `json:"size"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type confirmRequest struct {
	Intent models.OrderIntent `json:"intent"`
}

type uploadErrorResponse struct {
	Error string       `json:"error"`
	Code  string       `json:"code"`
	Draft models.Draft `json:"draft"`
}

func (h *DesignHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, state.Customizer.Draft())
}

// UploadDesign accepts a multipart "design" file. The response carries the draft once the
// decode lands, or 202 with a loading draft if it is still running after uploadWait.
func (h *DesignHandler) UploadDesign(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploadBodyLimit)
	file, header, err := r.FormFile(designFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.renderUploadError(w, state, models.ErrTooLarge)
			return
		}
		log.Printf("DesignHandler.UploadDesign: Error reading form file: %v", err)
		renderError(h.render, w, http.StatusBadRequest, "Please choose a file to upload.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("DesignHandler.UploadDesign: Error reading %s: %v", header.Filename, err)
		renderError(h.render, w, http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}

	design := models.DesignFile{
		Name: header.Filename,
		Type: declaredType(header.Header.Get("Content-Type"), data),
		Size: header.Size,
		Data: data,
	}

	job, err := state.Customizer.UploadDesign(r.Context(), design)
	var uploadErr *models.UploadError
	if errors.As(err, &uploadErr) {
		h.renderUploadError(w, state, uploadErr)
		return
	}
	if err != nil {
		log.Printf("DesignHandler.UploadDesign: Error starting decode of %s: %v", design.Name, err)
		renderError(h.render, w, http.StatusInternalServerError, "Could not process the uploaded file.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.uploadWait)
	defer cancel()
	if err := job.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			_ = h.render.JSON(w, http.StatusAccepted, state.Customizer.Draft())
			return
		}
		log.Printf("DesignHandler.UploadDesign: Error decoding %s: %v", design.Name, err)
		renderError(h.render, w, http.StatusUnprocessableEntity, "Could not read the uploaded file.")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, state.Customizer.Draft())
}

// declaredType trusts the client's Content-Type unless it is missing or generic, in which
// case the bytes are sniffed.
func declaredType(contentType string, data []byte) string {
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if mediaType != "" && mediaType != "application/octet-stream" {
		return strings.ToLower(mediaType)
	}
	sniffed := mimetype.Detect(data).String()
	return strings.TrimSpace(strings.SplitN(sniffed, ";", 2)[0])
}

func (h *DesignHandler) renderUploadError(w http.ResponseWriter, state *services.Session, err *models.UploadError) {
	_ = h.render.JSON(w, http.StatusUnprocessableEntity, uploadErrorResponse{
		Error: err.Message,
		Code:  err.Code,
		Draft: state.Customizer.Draft(),
	})
}

func (h *DesignHandler) ClearDesign(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	state.Customizer.ClearDesign()
	_ = h.render.JSON(w, http.StatusOK, state.Customizer.Draft())
}

// SetColor ignores names outside the swatch catalog and answers with the unchanged draft.
func (h *DesignHandler) SetColor(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	var req colorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	state.Customizer.SetColor(req.Color)
	_ = h.render.JSON(w, http.StatusOK, state.Customizer.Draft())
}

func (h *DesignHandler) SetSize(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	var req sizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	state.Customizer.SetSize(req.Size)
	_ = h.render.JSON(w, http.StatusOK, state.Customizer.Draft())
}

func (h *DesignHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	var req quantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	state.Customizer.SetQuantity(req.Quantity)
	_ = h.render.JSON(w, http.StatusOK, state.Customizer.Draft())
}

func (h *DesignHandler) Preview(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	draft := state.Customizer.Draft()
	etag := previewETag(draft)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	svg, err := services.RenderPreview(draft)
	if err != nil {
		log.Printf("DesignHandler.Preview: Error rendering preview: %v", err)
		renderError(h.render, w, http.StatusInternalServerError, "Failed to render preview")
		return
	}
	_ = renderer.SVG(h.render, w, http.StatusOK, svg)
}

// previewETag changes whenever the design or the shirt colour does.
func previewETag(d models.Draft) string {
	digest := "blank"
	if d.DesignAsset != nil {
		digest = d.DesignAsset.Digest
	}
	return `"` + digest + "-" + strings.TrimPrefix(d.Color.Value, "#") + `"`
}

func (h *DesignHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	state, ok := currentSession(w, r, h.render)
	if !ok {
		return
	}

	var req confirmRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderError(h.render, w, http.StatusBadRequest, err.Error())
		return
	}

	confirmation, err := state.Customizer.ConfirmOrder(req.Intent)
	if errors.Is(err, models.ErrInvalidIntent) {
		renderError(h.render, w, http.StatusBadRequest, "intent must be add_to_cart or buy_now")
		return
	}
	if err != nil {
		log.Printf("DesignHandler.ConfirmOrder: Error confirming draft: %v", err)
		renderError(h.render, w, http.StatusInternalServerError, "Failed to confirm order")
		return
	}

	if confirmation.DraftState == models.DraftLoading {
		log.Printf("DesignHandler.ConfirmOrder: session %s confirmed while a design was still loading", state.ID)
	}
	log.Printf("DesignHandler.ConfirmOrder: session %s added %s x%d (%s)", state.ID, confirmation.Item.ID, confirmation.Item.Quantity, req.Intent)
	_ = h.render.JSON(w, http.StatusCreated, confirmation)
}
