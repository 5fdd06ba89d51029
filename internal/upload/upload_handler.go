package upload

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/apperror"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/contextutil"
	"github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/shared/response"
	uploaderrors "github.com/Saathvik-kadiyal/Allowance-Shifts-Backend/internal/upload/errors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	// Lock dari middleware Idempotency dilepas begitu request ini selesai,
	// sukses maupun gagal, supaya retry tidak harus menunggu TTL
	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, uploaderrors.ErrFileRequired)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	result, err := h.service.ProcessExcel(
		c.Request.Context(),
		fileHeader.Filename,
		f,
		requestBaseURL(c),
		contextutil.GetUserID(c.Request.Context()),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(result); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, result, nil)
}

func (h *Handler) ListUploads(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	files, err := h.service.ListUploads(c.Request.Context(), limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, files, nil)
}

// ErrorFile melayani unduhan error file hasil upload yang gagal sebagian
func (h *Handler) ErrorFile(c *gin.Context) {
	path, err := h.service.ErrorFilePath(c.Param("filename"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.File(c, path, c.Param("filename"))
}

// requestBaseURL membentuk base URL publik dari request yang masuk,
// menghormati header proxy kalau ada
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
