package summary

import (
	"errors"
	"net/http"

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

// mapBindError membiarkan AppError dari custom unmarshal lewat apa adanya,
// sisanya dipetakan jadi validation error 400
func (h *Handler) mapBindError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.MapValidationError(err)
}

// ClientSummary menerima body filter (boleh kosong = bulan terbaru) dan
// mengembalikan pohon periode -> client -> department -> employee
func (h *Handler) ClientSummary(c *gin.Context) {
	var req SummaryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, h.mapBindError(err))
			return
		}
	}

	result, err := h.service.ClientSummary(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) ClientShiftSummary(c *gin.Context) {
	month, rollup, err := h.service.ClientShiftSummary(c.Request.Context(), c.Query("payroll_month"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payroll_month": month,
		"clients":       rollup,
	}, nil)
}

func (h *Handler) IntervalSummary(c *gin.Context) {
	var req IntervalSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, h.mapBindError(err))
		return
	}

	result, err := h.service.IntervalSummary(c.Request.Context(), req.StartMonth, req.EndMonth)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}
