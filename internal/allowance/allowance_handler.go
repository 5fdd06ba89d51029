package allowance

import (
	"net/http"
	"strconv"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/apperror"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	start, err := strconv.Atoi(c.DefaultQuery("start", "0"))
	if err != nil || start < 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be a non-negative integer", nil)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer", nil)
		return
	}

	resp, err := h.service.GetPage(c.Request.Context(), start, limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be an integer", nil)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
