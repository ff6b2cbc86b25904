package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"plate-service/internal/http/middleware"
	"plate-service/internal/model"
	"plate-service/internal/repository"
	"plate-service/internal/service"
)

type Handler struct {
	recognitionService *service.RecognitionService
	log                zerolog.Logger
}

func NewHandler(recognitionService *service.RecognitionService, log zerolog.Logger) *Handler {
	return &Handler{
		recognitionService: recognitionService,
		log:                log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	recognitions := protected.Group("/recognitions")
	{
		recognitions.POST("", h.createRecognition)
		recognitions.POST("/detect", h.detectAndRecognize)
		recognitions.GET("", h.listRecognitions)
		recognitions.GET("/:id", h.getRecognition)
	}

	protected.GET("/plates", h.searchPlates)
}

func (h *Handler) createRecognition(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		ImageRef  string `json:"image_ref"`
		Fragments []struct {
			Text       string  `json:"text" binding:"required"`
			Confidence float64 `json:"confidence"`
			Order      int     `json:"order"`
		} `json:"fragments" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.RecognizeInput{ImageRef: req.ImageRef}
	for _, f := range req.Fragments {
		input.Fragments = append(input.Fragments, model.TextFragment{
			Text:       f.Text,
			Confidence: f.Confidence,
			Order:      f.Order,
		})
	}

	recognition, plates, err := h.recognitionService.Recognize(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(recognitionResponse(recognition, plates)))
}

func (h *Handler) detectAndRecognize(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		ImageRef string `json:"image_ref" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	recognition, plates, err := h.recognitionService.RecognizeImage(c.Request.Context(), principal, req.ImageRef)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(recognitionResponse(recognition, plates)))
}

func (h *Handler) getRecognition(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid recognition id"))
		return
	}

	recognition, err := h.recognitionService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(recognition))
}

func (h *Handler) listRecognitions(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.RecognitionListFilter{}

	if imageRef := strings.TrimSpace(c.Query("image_ref")); imageRef != "" {
		filter.ImageRef = &imageRef
	}
	if from, ok := parseTimeQuery(c, "from"); ok {
		filter.From = from
	} else {
		return
	}
	if to, ok := parseTimeQuery(c, "to"); ok {
		filter.To = to
	} else {
		return
	}

	recognitions, err := h.recognitionService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(recognitions))
}

func (h *Handler) searchPlates(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.PlateReadListFilter{}

	if plate := strings.TrimSpace(c.Query("plate")); plate != "" {
		filter.NormalizedPlate = &plate
	}
	if raw := strings.TrimSpace(c.Query("min_confidence")); raw != "" {
		minConfidence, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid min_confidence"))
			return
		}
		filter.MinConfidence = &minConfidence
	}
	if from, ok := parseTimeQuery(c, "from"); ok {
		filter.From = from
	} else {
		return
	}
	if to, ok := parseTimeQuery(c, "to"); ok {
		filter.To = to
	} else {
		return
	}

	reads, err := h.recognitionService.SearchPlates(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reads))
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid "+name))
		return nil, false
	}
	return &parsed, true
}

func recognitionResponse(recognition *model.Recognition, plates []model.PlateResult) gin.H {
	if plates == nil {
		plates = []model.PlateResult{}
	}
	return gin.H{
		"recognition_id": recognition.ID,
		"image_ref":      recognition.ImageRef,
		"plates":         plates,
		"plate_count":    recognition.PlateCount,
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUnavailable):
		c.JSON(http.StatusBadGateway, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}
