package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/apperror"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/response"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/summary"

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

// DownloadClientSummary menerima filter yang sama dengan endpoint summary
// dan mengembalikan hasilnya sebagai file xlsx
func (h *Handler) DownloadClientSummary(c *gin.Context) {
	var req summary.SummaryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				err = apperror.MapValidationError(err)
			}
			h.writeServiceError(c, err)
			return
		}
	}

	path, err := h.service.DownloadClientSummary(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.File(c, path, "client_summary.xlsx")
}

func (h *Handler) ExportRecords(c *gin.Context) {
	var req ExportRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	buf, err := h.service.ExportRecords(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	name := fmt.Sprintf("shift_allowances_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(200, response.SpreadsheetMIME, buf.Bytes())
}
