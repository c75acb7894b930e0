package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/dto"
	"github.com/SscSPs/negotiation_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// formHandler exposes editing sessions. A session holds the draft between requests.
type formHandler struct {
	forms portssvc.FormSvc
}

// RegisterFormRoutes registers the form session routes. assist is applied to the
// AI helper endpoints only, typically a rate limiter.
func RegisterFormRoutes(rg *gin.RouterGroup, forms portssvc.FormSvc, assist ...gin.HandlerFunc) {
	h := &formHandler{forms: forms}

	f := rg.Group("/forms")
	{
		f.POST("", h.openForm)
		f.GET("/:formID", h.getForm)
		f.PATCH("/:formID", h.updateForm)
		f.POST("/:formID/submit", h.submitForm)
		f.DELETE("/:formID", h.closeForm)

		assisted := f.Group("/:formID", assist...)
		assisted.POST("/polish", h.polishForm)
		assisted.POST("/suggest", h.suggestForm)
	}
}

// openForm godoc
// @Summary Open a form
// @Description Starts an editing session, blank or seeded from an existing negotiation.
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   request body dto.OpenFormRequest false "Negotiation to edit"
// @Success 201 {object} dto.FormResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Negotiation not found"
// @Security BearerAuth
// @Router /forms [post]
func (h *formHandler) openForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenFormRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for OpenForm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.forms.Open(c.Request.Context(), req.NegotiationID)
	if err != nil {
		respondError(c, logger, err, "Failed to open form")
		return
	}
	c.JSON(http.StatusCreated, dto.FormResponse{Form: state})
}

// getForm godoc
// @Summary Get a form
// @Tags forms
// @Produce  json
// @Param   formID path string true "Form ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Security BearerAuth
// @Router /forms/{formID} [get]
func (h *formHandler) getForm(c *gin.Context) {
	state, err := h.forms.Get(c.Param("formID"))
	if err != nil {
		respondError(c, middleware.GetLoggerFromCtx(c.Request.Context()), err, "Failed to get form")
		return
	}
	c.JSON(http.StatusOK, dto.FormResponse{Form: state})
}

// updateForm godoc
// @Summary Edit form fields
// @Description Overwrites the fields present in the body. An empty attachmentUrl clears it.
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   formID path string true "Form ID"
// @Param   fields body dto.FormFieldsRequest true "Fields to overwrite"
// @Success 200 {object} dto.FormResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Security BearerAuth
// @Router /forms/{formID} [patch]
func (h *formHandler) updateForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.FormFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateForm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.forms.Update(c.Param("formID"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update form")
		return
	}
	c.JSON(http.StatusOK, dto.FormResponse{Form: state})
}

// polishForm godoc
// @Summary Polish the description
// @Description Rewrites the description with the AI helper. Left unchanged when the helper is unavailable.
// @Tags forms
// @Produce  json
// @Param   formID path string true "Form ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Failure 409 {object} dto.ErrorResponse "An AI call is already running"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Security BearerAuth
// @Router /forms/{formID}/polish [post]
func (h *formHandler) polishForm(c *gin.Context) {
	h.assist(c, h.forms.Polish, "Failed to polish description")
}

// suggestForm godoc
// @Summary Suggest the next action
// @Description Fills the next action with the AI helper, scheduling it a week ahead when no date is set.
// @Tags forms
// @Produce  json
// @Param   formID path string true "Form ID"
// @Success 200 {object} dto.FormResponse
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Failure 409 {object} dto.ErrorResponse "An AI call is already running"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Security BearerAuth
// @Router /forms/{formID}/suggest [post]
func (h *formHandler) suggestForm(c *gin.Context) {
	h.assist(c, h.forms.Suggest, "Failed to suggest next action")
}

func (h *formHandler) assist(c *gin.Context, call func(ctx context.Context, formID string) (domain.FormState, error), fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	state, err := call(c.Request.Context(), c.Param("formID"))
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	c.JSON(http.StatusOK, dto.FormResponse{Form: state})
}

// submitForm godoc
// @Summary Submit a form
// @Description Validates the form and saves it. A blank form creates a record, after which the session edits that record.
// @Tags forms
// @Produce  json
// @Param   formID path string true "Form ID"
// @Success 200 {object} dto.FormResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Form or negotiation not found"
// @Failure 409 {object} dto.ErrorResponse "Submit already in progress"
// @Failure 502 {object} dto.ErrorResponse "Remote store error"
// @Failure 503 {object} dto.ErrorResponse "Remote store unavailable"
// @Security BearerAuth
// @Router /forms/{formID}/submit [post]
func (h *formHandler) submitForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	formID := c.Param("formID")
	logger = logger.With(slog.String("form_id", formID))

	saved, state, err := h.forms.Submit(c.Request.Context(), formID)
	if err != nil {
		respondError(c, logger, err, "Failed to save negotiation")
		return
	}
	logger.Info("Form submitted", slog.String("negotiation_id", saved.ID))
	res := dto.ToNegotiationResponse(saved)
	c.JSON(http.StatusOK, dto.FormResponse{Form: state, Negotiation: &res})
}

// closeForm godoc
// @Summary Close a form
// @Description Discards the session and any unsaved edits.
// @Tags forms
// @Param   formID path string true "Form ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /forms/{formID} [delete]
func (h *formHandler) closeForm(c *gin.Context) {
	h.forms.Close(c.Param("formID"))
	c.Status(http.StatusNoContent)
}
