package report

import (
	"errors"
	"net/http"
	"time"

	"go-absensi/internal/period"
	reporterrors "go-absensi/internal/report/errors"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	loc     *time.Location
}

func NewHandler(service Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{service: service, loc: loc}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func writePeriodError(c *gin.Context, err error) {
	if errors.Is(err, period.ErrInvalidPeriod) {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, err.Error(), nil)
		return
	}
	writeServiceError(c, err)
}

// requestedMonth: ok=false bila month tidak dikirim. Rekap tanpa bulan eksplisit
// menghasilkan daftar kosong, bukan bulan berjalan.
func requestedMonth(c *gin.Context) (m period.Month, ok bool, err error) {
	v := c.Query("month")
	if v == "" {
		return period.Month{}, false, nil
	}
	m, err = period.ParseMonth(v)
	return m, err == nil, err
}

// optionalMonth: rekap pegawai tanpa month mencakup seluruh riwayat.
func optionalMonth(c *gin.Context) (*period.Month, error) {
	v := c.Query("month")
	if v == "" {
		return nil, nil
	}
	m, err := period.ParseMonth(v)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *Handler) recordsFilter(c *gin.Context) (period.Filter, error) {
	return period.Parse(c.Query("month"), c.Query("start_date"), c.Query("end_date"), h.loc)
}

func (h *Handler) Monthly(c *gin.Context) {
	month, ok, err := requestedMonth(c)
	if err != nil {
		writePeriodError(c, err)
		return
	}
	if !ok {
		response.Success(c, http.StatusOK, MonthlyReportResponse{Rows: []MonthlySummaryRow{}}, nil)
		return
	}

	resp, err := h.service.Monthly(c.Request.Context(), month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Records(c *gin.Context) {
	filter, err := h.recordsFilter(c)
	if err != nil {
		writePeriodError(c, err)
		return
	}

	resp, err := h.service.Records(c.Request.Context(), filter, c.Query("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	begin, stop, meta := response.PageBounds(c, len(resp.Records))
	resp.Records = resp.Records[begin:stop]
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Employee(c *gin.Context) {
	month, err := optionalMonth(c)
	if err != nil {
		writePeriodError(c, err)
		return
	}

	resp, err := h.service.Employee(c.Request.Context(), c.Param("id"), month)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	begin, stop, meta := response.PageBounds(c, len(resp.Records))
	resp.Records = resp.Records[begin:stop]
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) ExportMonthly(c *gin.Context) {
	format, err := ParseFormat(c.Query("format"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	month, ok, err := requestedMonth(c)
	if err != nil {
		writePeriodError(c, err)
		return
	}
	if !ok {
		writeServiceError(c, reporterrors.ErrNoDataToExport)
		return
	}

	file, err := h.service.ExportMonthly(c.Request.Context(), month, format)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

func (h *Handler) ExportRecords(c *gin.Context) {
	format, err := ParseFormat(c.Query("format"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	filter, err := h.recordsFilter(c)
	if err != nil {
		writePeriodError(c, err)
		return
	}

	file, err := h.service.ExportRecords(c.Request.Context(), filter, c.Query("user_id"), format)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

func (h *Handler) ExportEmployee(c *gin.Context) {
	format, err := ParseFormat(c.Query("format"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	month, err := optionalMonth(c)
	if err != nil {
		writePeriodError(c, err)
		return
	}

	file, err := h.service.ExportEmployee(c.Request.Context(), c.Param("id"), month, format)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
