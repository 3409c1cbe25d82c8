package coverletters

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"easyapply-backend/internal/generate"
	"easyapply-backend/internal/jobs"
	"easyapply-backend/internal/resumes"
	"easyapply-backend/internal/shared/server/middleware"
	"easyapply-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the cover letters service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover letter routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cover-letters", h.create)
	rg.GET("/cover-letters/:coverLetterId", h.get)
	rg.GET("/cover-letters", h.list)
}

type createCoverLetterRequest struct {
	JobID    string `json:"jobId"`
	ResumeID string `json:"resumeId"`
	Style    string `json:"style"`
}

func (h *Handler) create(c *gin.Context) {
	var req createCoverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	letter, err := h.Svc.Create(ctx, req.JobID, req.ResumeID, generate.Style(req.Style))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job posting not found", nil)
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create cover letter", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"coverLetterId": letter.ID,
		"status":        letter.Status,
	})
}

func (h *Handler) get(c *gin.Context) {
	letter, err := h.Svc.Get(c.Request.Context(), c.Param("coverLetterId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch cover letter", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(letter))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	letters, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list cover letters", nil)
		return
	}

	resp := make([]CoverLetterResponse, 0, len(letters))
	for _, letter := range letters {
		resp = append(resp, toResponse(letter))
	}
	respond.JSON(c, http.StatusOK, resp)
}
