package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	attendanceerrors "go-absensi/internal/attendance/errors"
	"go-absensi/internal/events"
	"go-absensi/internal/geo"
	"go-absensi/internal/geocode"
	"go-absensi/internal/location"
	"go-absensi/internal/messaging/kafka"
	"go-absensi/internal/period"
	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const outsideRadiusWarning = "Perhatian: Anda berada di luar radius sekolah. Absensi akan ditandai sebagai 'Di Luar Area'."

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Start(ctx context.Context, actor Actor, typ Type) (AttemptResponse, error)
	Locate(ctx context.Context, actor Actor, provider location.PositionProvider) (AttemptResponse, error)
	Submit(ctx context.Context, actor Actor, req SubmitRequest) (AttemptResponse, error)
	Cancel(ctx context.Context, actor Actor) error
	Current(ctx context.Context, actor Actor) (AttemptResponse, error)
	Today(ctx context.Context, actor Actor) (TodayResponse, error)
	ListMine(ctx context.Context, actor Actor, filter period.Filter) (HistoryResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	attempts AttemptStore
	resolver geocode.Resolver
	policy   Policy
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	attempts AttemptStore,
	resolver geocode.Resolver,
	policy Policy,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, nil, attempts, resolver, policy, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	attempts AttemptStore,
	resolver geocode.Resolver,
	policy Policy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if policy.Location == nil {
		policy.Location = time.Local
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		attempts: attempts,
		resolver: resolver,
		policy:   policy,
		logger:   l,
	}
}

func (s *service) Start(ctx context.Context, actor Actor, typ Type) (AttemptResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("start attendance requested",
		zap.String("request_id", rid),
		zap.String("user_id", actor.UserID),
		zap.String("type", string(typ)),
	)

	now := time.Now()
	a, err := s.loadAttempt(ctx, actor.UserID, now)
	if err != nil {
		return AttemptResponse{}, err
	}

	checkedIn, checkedOut, err := s.todayFlags(ctx, actor.UserID, now)
	if err != nil {
		s.logger.Error("start attendance load today records failed", zap.String("request_id", rid), zap.Error(err))
		return AttemptResponse{}, err
	}

	next, eff, err := Transition(a, StartEvent{
		ID:              uuid.NewString(),
		Type:            typ,
		CheckedInToday:  checkedIn,
		CheckedOutToday: checkedOut,
		At:              now,
	})
	if err != nil {
		s.logger.Warn("start attendance rejected",
			zap.String("request_id", rid),
			zap.String("user_id", actor.UserID),
			zap.String("state", string(a.State)),
			zap.Error(err),
		)
		return AttemptResponse{}, err
	}

	if err := s.saveAttempt(ctx, next); err != nil {
		return AttemptResponse{}, err
	}

	s.logger.Info("attendance attempt started",
		zap.String("request_id", rid),
		zap.String("attempt_id", next.ID),
		zap.String("type", string(next.Type)),
	)
	return s.toAttemptResponse(next, eff), nil
}

func (s *service) Locate(ctx context.Context, actor Actor, provider location.PositionProvider) (AttemptResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("locate attendance requested", zap.String("request_id", rid), zap.String("user_id", actor.UserID))

	now := time.Now()
	a, err := s.attempts.Get(ctx, actor.UserID)
	if err != nil {
		return AttemptResponse{}, s.attemptStoreError(err)
	}
	if a.State == StateIdle {
		return AttemptResponse{}, attendanceerrors.ErrNoActiveAttempt
	}
	if a.State != StateAwaitingLocation {
		s.logger.Debug("late position discarded", zap.String("request_id", rid), zap.String("state", string(a.State)))
		return AttemptResponse{}, attendanceerrors.ErrStaleEvent
	}

	coords, locErr := s.acquire(ctx, a, provider, now)
	if locErr != nil {
		failed, _, _ := Transition(a, PositionFailedEvent{Err: locErr})
		if err := s.saveAttempt(ctx, failed); err != nil {
			return AttemptResponse{}, err
		}
		s.logger.Warn("acquire position failed",
			zap.String("request_id", rid),
			zap.String("attempt_id", a.ID),
			zap.Error(locErr),
		)
		return AttemptResponse{}, mapLocationError(locErr)
	}

	distance, within := s.policy.School.Evaluate(coords)
	next, eff, err := Transition(a, PositionAcquiredEvent{Coords: coords, DistanceKm: distance, Within: within})
	if err != nil {
		return AttemptResponse{}, err
	}
	if err := s.saveAttempt(ctx, next); err != nil {
		return AttemptResponse{}, err
	}

	if eff.Has(EffectResolveAddress) {
		next = s.resolveAddress(ctx, next, coords)
	}

	s.logger.Info("attendance position resolved",
		zap.String("request_id", rid),
		zap.String("attempt_id", next.ID),
		zap.Float64("distance_km", distance),
		zap.Bool("within_radius", within),
	)
	return s.toAttemptResponse(next, eff), nil
}

func (s *service) acquire(ctx context.Context, a Attempt, provider location.PositionProvider, now time.Time) (geo.Coordinates, error) {
	remaining := s.policy.PositionTimeout - now.Sub(a.StartedAt)
	if s.policy.PositionTimeout > 0 && remaining <= 0 {
		return geo.Coordinates{}, &location.Error{Kind: location.KindTimeout, Reason: "position reported after the wait bound"}
	}
	return location.Acquire(ctx, provider, remaining)
}

// resolveAddress bersifat best-effort. Hasil yang datang setelah attempt berganti
// (dibatalkan atau dimulai ulang) dibuang.
func (s *service) resolveAddress(ctx context.Context, a Attempt, coords geo.Coordinates) Attempt {
	var addr *string
	if s.resolver != nil {
		addr = s.resolver.ResolveAddress(ctx, coords)
	}

	current, err := s.attempts.Get(ctx, a.UserID)
	if err != nil || current.ID != a.ID {
		s.logger.Debug("late address discarded", zap.String("attempt_id", a.ID))
		return a
	}

	resolved, _, err := Transition(current, AddressResolvedEvent{Address: addr})
	if err != nil {
		s.logger.Debug("late address discarded", zap.String("attempt_id", a.ID), zap.Error(err))
		return current
	}
	if err := s.saveAttempt(ctx, resolved); err != nil {
		return current
	}
	return resolved
}

func (s *service) Submit(ctx context.Context, actor Actor, req SubmitRequest) (AttemptResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit attendance requested",
		zap.String("request_id", rid),
		zap.String("user_id", actor.UserID),
		zap.String("keterangan", req.Keterangan),
	)

	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return AttemptResponse{}, attendanceerrors.ErrInvalidUserID
	}

	now := time.Now()
	a, err := s.loadAttempt(ctx, actor.UserID, now)
	if err != nil {
		return AttemptResponse{}, err
	}

	next, _, err := Transition(a, SubmitEvent{
		Keterangan: Keterangan(req.Keterangan),
		Reason:     req.KeteranganIzin,
		RecordID:   uuid.NewString(),
	})
	if err != nil {
		s.logger.Warn("submit attendance rejected",
			zap.String("request_id", rid),
			zap.String("state", string(a.State)),
			zap.Error(err),
		)
		return AttemptResponse{}, err
	}
	// submitting disimpan dulu: kalau commit berhasil tapi simpan submitted gagal,
	// submit ulang memakai record id yang sama dan tidak menambah record kedua.
	if err := s.saveAttempt(ctx, next); err != nil {
		return AttemptResponse{}, err
	}

	rec := BuildRecord(next, actor, userID, s.policy, now)
	if err := s.persist(ctx, &rec); err != nil {
		s.logger.Error("persist attendance record failed",
			zap.String("request_id", rid),
			zap.String("attempt_id", next.ID),
			zap.Error(err),
		)
		failed, _, _ := Transition(next, PersistFailedEvent{Err: err})
		_ = s.saveAttempt(ctx, failed)
		return AttemptResponse{}, attendanceerrors.ErrPersistenceFailed
	}

	done, eff, err := Transition(next, PersistedEvent{RecordID: rec.ID.String(), At: now})
	if err != nil {
		return AttemptResponse{}, err
	}
	if err := s.saveAttempt(ctx, done); err != nil {
		// record sudah tersimpan; attempt akan kedaluwarsa sendiri lewat TTL
		s.logger.Warn("save submitted attempt failed", zap.String("request_id", rid), zap.Error(err))
	}

	s.logger.Info("attendance recorded",
		zap.String("request_id", rid),
		zap.String("record_id", rec.ID.String()),
		zap.String("type", string(rec.Type)),
		zap.String("remark", string(rec.Remark)),
		zap.Bool("within_radius", rec.IsWithinRadius),
	)

	resp := s.toAttemptResponse(done, eff)
	recResp := MapRecord(rec, s.policy.Location)
	resp.Record = &recResp
	resp.Message = fmt.Sprintf("Absen %s berhasil direkam!", rec.Type)
	return resp, nil
}

func (s *service) persist(ctx context.Context, rec *Record) error {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Append(ctx, rec); err != nil {
		return err
	}

	if s.outbox != nil {
		event := events.AttendanceRecordedEvent{
			EventType:  "attendance_recorded",
			RequestID:  rid,
			RecordID:   rec.ID.String(),
			UserID:     rec.UserID.String(),
			Type:       string(rec.Type),
			Timestamp:  rec.Timestamp,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.NewOutboxEvent(rid, "attendance", rec.UserID.String(), event.EventType, events.AttendanceRecordedTopic, payload)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *service) Cancel(ctx context.Context, actor Actor) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("cancel attendance requested", zap.String("request_id", rid), zap.String("user_id", actor.UserID))

	a, err := s.loadAttempt(ctx, actor.UserID, time.Now())
	if err != nil {
		return err
	}
	next, _, err := Transition(a, CancelEvent{})
	if err != nil {
		return err
	}
	return s.saveAttempt(ctx, next)
}

func (s *service) Current(ctx context.Context, actor Actor) (AttemptResponse, error) {
	a, err := s.loadAttempt(ctx, actor.UserID, time.Now())
	if err != nil {
		return AttemptResponse{}, err
	}
	return s.toAttemptResponse(a, EffectNone), nil
}

func (s *service) Today(ctx context.Context, actor Actor) (TodayResponse, error) {
	now := time.Now().In(s.policy.Location)
	rows, err := s.todayRecords(ctx, actor.UserID, now)
	if err != nil {
		s.logger.Error("get today attendance failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return TodayResponse{}, err
	}

	resp := TodayResponse{
		Date: now.Format("2006-01-02"),
		Day:  DayLabel(now),
	}
	// rows terurut terbaru dulu; record pertama hari itu yang ditampilkan
	for i := len(rows) - 1; i >= 0; i-- {
		r := MapRecord(rows[i], s.policy.Location)
		switch rows[i].Type {
		case TypeCheckIn:
			if resp.CheckIn == nil {
				resp.CheckIn = &r
			}
		case TypeCheckOut:
			if resp.CheckOut == nil {
				resp.CheckOut = &r
			}
		}
	}
	resp.Complete = resp.CheckIn != nil && resp.CheckOut != nil
	return resp, nil
}

func (s *service) ListMine(ctx context.Context, actor Actor, filter period.Filter) (HistoryResponse, error) {
	s.logger.Debug("list own attendance requested",
		zap.String("user_id", actor.UserID),
		zap.String("period", filter.Label()),
	)

	resp := HistoryResponse{Period: filter.Label(), Records: []RecordResponse{}}
	from, to, ok := filter.Bounds(s.policy.Location)
	if !ok {
		return resp, nil
	}

	rows, err := s.repo.ListBetween(ctx, from, to, actor.UserID)
	if err != nil {
		s.logger.Error("list own attendance failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return HistoryResponse{}, err
	}
	SortNewestFirst(rows)

	resp.Summary = TallyCheckIns(rows)
	resp.Records = MapRecords(rows, s.policy.Location)
	return resp, nil
}

// loadAttempt membaca attempt lalu menjalankan kedaluwarsa: tampilan submitted
// selesai setelah DisplayInterval, dan menunggu lokasi melewati batas waktu kembali ke idle.
func (s *service) loadAttempt(ctx context.Context, userID string, now time.Time) (Attempt, error) {
	a, err := s.attempts.Get(ctx, userID)
	if err != nil {
		return Attempt{}, s.attemptStoreError(err)
	}

	next := a
	switch a.State {
	case StateSubmitted:
		next, _, _ = Transition(a, TickEvent{Now: now, DisplayInterval: s.policy.DisplayInterval})
	case StateAwaitingLocation:
		if s.policy.PositionTimeout > 0 && now.Sub(a.StartedAt) > s.policy.PositionTimeout {
			next, _, _ = Transition(a, PositionFailedEvent{Err: &location.Error{Kind: location.KindTimeout}})
		}
	}

	if next.State != a.State {
		if err := s.saveAttempt(ctx, next); err != nil {
			return Attempt{}, err
		}
	}
	return next, nil
}

func (s *service) saveAttempt(ctx context.Context, a Attempt) error {
	if err := s.attempts.Save(ctx, a); err != nil {
		return s.attemptStoreError(err)
	}
	return nil
}

func (s *service) attemptStoreError(err error) error {
	s.logger.Error("attempt store failed", zap.Error(err))
	return apperror.Wrap(err, apperror.CodeServiceUnavailable, "Layanan absensi sedang tidak tersedia", http.StatusServiceUnavailable)
}

func (s *service) todayRecords(ctx context.Context, userID string, now time.Time) ([]Record, error) {
	start := s.policy.StartOfDay(now)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return s.repo.ListBetween(ctx, start.UnixMilli(), end.UnixMilli(), userID)
}

func (s *service) todayFlags(ctx context.Context, userID string, now time.Time) (checkedIn, checkedOut bool, err error) {
	rows, err := s.todayRecords(ctx, userID, now)
	if err != nil {
		return false, false, err
	}
	for _, r := range rows {
		switch r.Type {
		case TypeCheckIn:
			checkedIn = true
		case TypeCheckOut:
			checkedOut = true
		}
	}
	return checkedIn, checkedOut, nil
}

func (s *service) toAttemptResponse(a Attempt, eff Effect) AttemptResponse {
	resp := AttemptResponse{
		ID:             a.ID,
		State:          a.State,
		Type:           a.Type,
		DistanceKm:     a.DistanceKm,
		IsWithinRadius: a.WithinRadius,
		Address:        a.Address,
		Keterangan:     a.Keterangan,
		KeteranganIzin: a.Reason,
		LastError:      a.LastError,
	}
	if !a.StartedAt.IsZero() {
		started := a.StartedAt.In(s.policy.Location).Format(time.RFC3339)
		resp.StartedAt = &started
		if a.State == StateAwaitingLocation && s.policy.PositionTimeout > 0 {
			deadline := a.StartedAt.Add(s.policy.PositionTimeout).In(s.policy.Location).Format(time.RFC3339)
			resp.PositionDeadline = &deadline
		}
	}
	if a.Coords != nil {
		lat, lng := a.Coords.Latitude, a.Coords.Longitude
		resp.Latitude = &lat
		resp.Longitude = &lng
	}
	if eff.Has(EffectWarnOutsideRadius) || (a.Coords != nil && !a.WithinRadius && a.State == StateLocationResolved) {
		resp.Warning = outsideRadiusWarning
	}
	return resp
}

func mapLocationError(err error) error {
	var locErr *location.Error
	if !errors.As(err, &locErr) {
		return attendanceerrors.ErrLocationUnavailable
	}
	switch locErr.Kind {
	case location.KindPermissionDenied:
		return attendanceerrors.ErrLocationDenied
	case location.KindTimeout:
		return attendanceerrors.ErrLocationTimeout
	default:
		return attendanceerrors.ErrLocationUnavailable
	}
}
