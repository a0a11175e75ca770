package attendance

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-absensi/internal/geo"
	"go-absensi/internal/location"
	"go-absensi/internal/period"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	loc     *time.Location
}

func NewHandler(service Service, loc *time.Location) *Handler {
	return NewHandlerWithRedis(service, nil, loc)
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{service: service, rdb: rdb, loc: loc}
}

func getActor(c *gin.Context) Actor {
	userID := c.GetString("user_id_validated")
	if userID == "" {
		userID = c.GetString("user_id")
	}
	return Actor{
		UserID:    userID,
		Name:      c.GetString("name"),
		JenisGTK:  c.GetString("jenis_gtk"),
		StatusGTK: c.GetString("status_gtk"),
	}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) StartAttempt(c *gin.Context) {
	var req StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Start(c.Request.Context(), getActor(c), Type(req.Type))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CurrentAttempt(c *gin.Context) {
	resp, err := h.service.Current(c.Request.Context(), getActor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReportLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Locate(c.Request.Context(), getActor(c), providerFrom(req))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func providerFrom(req LocationRequest) location.Reported {
	if req.ErrorCode != "" {
		return location.Reported{Err: &location.Error{
			Kind:   location.ParseKind(req.ErrorCode),
			Reason: req.ErrorMessage,
		}}
	}
	if req.Latitude == nil || req.Longitude == nil {
		return location.Reported{}
	}
	return location.Reported{Coords: &geo.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}}
}

func (h *Handler) SubmitAttempt(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), getActor(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CancelAttempt(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), getActor(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": StateIdle}, nil)
}

func (h *Handler) Today(c *gin.Context) {
	resp, err := h.service.Today(c.Request.Context(), getActor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ListMine: tanpa query, default bulan berjalan seperti dashboard guru.
func (h *Handler) ListMine(c *gin.Context) {
	month := c.Query("month")
	start, end := c.Query("start_date"), c.Query("end_date")
	if month == "" && start == "" && end == "" {
		month = time.Now().In(h.loc).Format("2006-01")
	}

	filter, err := period.Parse(month, start, end, h.loc)
	if err != nil {
		if errors.Is(err, period.ErrInvalidPeriod) {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
			return
		}
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListMine(c.Request.Context(), getActor(c), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	begin, stop, meta := response.PageBounds(c, len(resp.Records))
	resp.Records = resp.Records[begin:stop]
	response.Success(c, http.StatusOK, resp, &meta)
}
