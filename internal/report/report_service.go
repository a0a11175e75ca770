package report

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-absensi/internal/attendance"
	"go-absensi/internal/period"
	reporterrors "go-absensi/internal/report/errors"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	monthlyCachePrefix = "report:monthly:"
	defaultCacheTTL    = 10 * time.Minute
	scanBatch          = 100
)

func MonthlyCacheKey(m period.Month) string {
	return monthlyCachePrefix + m.String()
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Monthly(ctx context.Context, month period.Month) (MonthlyReportResponse, error)
	Records(ctx context.Context, filter period.Filter, userID string) (RecordsReportResponse, error)
	Employee(ctx context.Context, userID string, month *period.Month) (EmployeeReportResponse, error)

	ExportMonthly(ctx context.Context, month period.Month, format Format) (ExportFile, error)
	ExportRecords(ctx context.Context, filter period.Filter, userID string, format Format) (ExportFile, error)
	ExportEmployee(ctx context.Context, userID string, month *period.Month, format Format) (ExportFile, error)

	InvalidateMonth(ctx context.Context, month period.Month) error
	InvalidateAll(ctx context.Context) error
	Warm(ctx context.Context) error
}

type Options struct {
	Location *time.Location
	CacheTTL time.Duration
	Now      func() time.Time
}

type service struct {
	attendanceRepo attendance.Repository
	userRepo       user.Repository
	rdb            *redis.Client
	sf             *singleflight.Group
	loc            *time.Location
	ttl            time.Duration
	now            func() time.Time
	logger         *zap.Logger
}

func NewService(
	attendanceRepo attendance.Repository,
	userRepo user.Repository,
	rdb *redis.Client,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		rdb:            rdb,
		sf:             &singleflight.Group{},
		loc:            opts.Location,
		ttl:            opts.CacheTTL,
		now:            opts.Now,
		logger:         l,
	}
}

func (s *service) Monthly(ctx context.Context, month period.Month) (MonthlyReportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	key := MonthlyCacheKey(month)

	// 1. Cek Redis
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var resp MonthlyReportResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return resp, nil
			}
			log.Warn("corrupt monthly report cache", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			log.Warn("read monthly report cache failed", zap.String("key", key), zap.Error(err))
		}
	}

	// 2. Singleflight: beberapa admin membuka rekap yang sama cukup satu query
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		resp, err := s.buildMonthly(ctx, month)
		if err != nil {
			return nil, err
		}
		s.storeMonthly(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return MonthlyReportResponse{}, err
	}
	return v.(MonthlyReportResponse), nil
}

func (s *service) buildMonthly(ctx context.Context, month period.Month) (MonthlyReportResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	start, end := month.Bounds(s.loc)

	records, err := s.attendanceRepo.ListBetween(ctx, start.UnixMilli(), end.UnixMilli(), "")
	if err != nil {
		log.Error("list attendance for monthly report failed", zap.String("month", month.String()), zap.Error(err))
		return MonthlyReportResponse{}, reporterrors.ErrReportUnavailable
	}
	teachers, err := s.userRepo.ListTeachers(ctx)
	if err != nil {
		log.Error("list teachers for monthly report failed", zap.Error(err))
		return MonthlyReportResponse{}, reporterrors.ErrReportUnavailable
	}

	return MonthlyReportResponse{
		Month:       month.String(),
		Label:       MonthLabel(month),
		DaysInMonth: month.Days(),
		Rows:        MonthlySummaries(records, teachers, month, s.loc),
	}, nil
}

func (s *service) storeMonthly(ctx context.Context, key string, resp MonthlyReportResponse) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, string(data), s.ttl).Err(); err != nil {
		s.logger.Warn("cache monthly report failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) Records(ctx context.Context, filter period.Filter, userID string) (RecordsReportResponse, error) {
	rows, err := s.listRecords(ctx, filter, userID)
	if err != nil {
		return RecordsReportResponse{}, err
	}
	return RecordsReportResponse{
		Period:  filter.Label(),
		UserID:  userID,
		Records: attendance.MapRecords(rows, s.loc),
	}, nil
}

func (s *service) listRecords(ctx context.Context, filter period.Filter, userID string) ([]attendance.Record, error) {
	from, to, ok := filter.Bounds(s.loc)
	if !ok {
		return []attendance.Record{}, nil
	}
	if userID != "" {
		if _, err := uuid.Parse(userID); err != nil {
			return nil, reporterrors.ErrInvalidEmployeeID
		}
	}

	records, err := s.attendanceRepo.ListBetween(ctx, from, to, userID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list attendance records failed",
			zap.String("period", filter.Label()),
			zap.Error(err),
		)
		return nil, reporterrors.ErrReportUnavailable
	}
	return Listing(records, filter, userID, s.loc), nil
}

func (s *service) Employee(ctx context.Context, userID string, month *period.Month) (EmployeeReportResponse, error) {
	u, res, err := s.employee(ctx, userID, month)
	if err != nil {
		return EmployeeReportResponse{}, err
	}
	return EmployeeReportResponse{
		Employee: EmployeeInfo{
			ID:        u.ID.String(),
			Name:      u.Name,
			JenisGTK:  u.JenisGTK,
			StatusGTK: u.StatusGTK,
		},
		Period:  employeePeriod(month),
		Summary: res.Tally,
		Records: attendance.MapRecords(res.Records, s.loc),
	}, nil
}

func employeePeriod(month *period.Month) string {
	if month == nil {
		return "all"
	}
	return month.String()
}

func (s *service) employee(ctx context.Context, userID string, month *period.Month) (*user.User, EmployeeSummaryResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(userID); err != nil {
		return nil, EmployeeSummaryResult{}, reporterrors.ErrInvalidEmployeeID
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, EmployeeSummaryResult{}, reporterrors.ErrEmployeeNotFound
		}
		log.Error("find employee failed", zap.String("user_id", userID), zap.Error(err))
		return nil, EmployeeSummaryResult{}, reporterrors.ErrReportUnavailable
	}

	var records []attendance.Record
	if month != nil {
		start, end := month.Bounds(s.loc)
		records, err = s.attendanceRepo.ListBetween(ctx, start.UnixMilli(), end.UnixMilli(), userID)
	} else {
		records, err = s.attendanceRepo.ListByUser(ctx, userID)
	}
	if err != nil {
		log.Error("list employee attendance failed", zap.String("user_id", userID), zap.Error(err))
		return nil, EmployeeSummaryResult{}, reporterrors.ErrReportUnavailable
	}

	return u, EmployeeSummary(records, userID, month, s.loc), nil
}

func (s *service) ExportMonthly(ctx context.Context, month period.Month, format Format) (ExportFile, error) {
	resp, err := s.Monthly(ctx, month)
	if err != nil {
		return ExportFile{}, err
	}
	return s.encode(ctx, monthlyTable(resp), format, "rekap_bulanan_"+month.String())
}

func (s *service) ExportRecords(ctx context.Context, filter period.Filter, userID string, format Format) (ExportFile, error) {
	rows, err := s.listRecords(ctx, filter, userID)
	if err != nil {
		return ExportFile{}, err
	}
	t := recordTable("Laporan Harian", "Periode: "+periodLabel(filter), rows, s.loc)
	return s.encode(ctx, t, format, "laporan_harian_"+filter.Label())
}

func (s *service) ExportEmployee(ctx context.Context, userID string, month *period.Month, format Format) (ExportFile, error) {
	u, res, err := s.employee(ctx, userID, month)
	if err != nil {
		return ExportFile{}, err
	}
	t := recordTable("Rekap Pegawai", "Pegawai: "+u.Name, res.Records, s.loc)
	return s.encode(ctx, t, format, "rekap_pegawai_"+userID)
}

func (s *service) encode(ctx context.Context, t Table, format Format, basename string) (ExportFile, error) {
	file, err := Encode(t, format, basename)
	if err != nil {
		if errors.Is(err, reporterrors.ErrNoDataToExport) || errors.Is(err, reporterrors.ErrInvalidFormat) {
			return ExportFile{}, err
		}
		contextutil.GetLogger(ctx, s.logger).Error("encode report failed",
			zap.String("file", basename),
			zap.String("format", string(format)),
			zap.Error(err),
		)
		return ExportFile{}, reporterrors.ErrExportFailed
	}
	return file, nil
}

func (s *service) InvalidateMonth(ctx context.Context, month period.Month) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, MonthlyCacheKey(month)).Err()
}

// InvalidateAll dipakai saat guru dihapus: baris guru hilang dari semua bulan.
func (s *service) InvalidateAll(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}
	var keys []string
	iter := s.rdb.Scan(ctx, 0, monthlyCachePrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// Warm menghitung ulang rekap bulan berjalan dan menimpa cache-nya.
func (s *service) Warm(ctx context.Context) error {
	month := period.MonthOf(s.now().In(s.loc))
	resp, err := s.buildMonthly(ctx, month)
	if err != nil {
		return err
	}
	s.storeMonthly(ctx, MonthlyCacheKey(month), resp)
	s.logger.Info("monthly report warmed", zap.String("month", month.String()), zap.Int("rows", len(resp.Rows)))
	return nil
}
