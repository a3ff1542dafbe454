package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarckFp/ppoc-gen-v2/internal/engine"
	"github.com/MarckFp/ppoc-gen-v2/internal/entity"
	"github.com/MarckFp/ppoc-gen-v2/internal/job"
	"github.com/MarckFp/ppoc-gen-v2/internal/logger"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
	"github.com/MarckFp/ppoc-gen-v2/internal/validation"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	store     repository.Database
	driver    *engine.Driver
	scheduler *job.JobScheduler
	logger    *zap.SugaredLogger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store repository.Database, driver *engine.Driver, scheduler *job.JobScheduler, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{store: store, driver: driver, scheduler: scheduler, logger: logger}
}

func parseID(c echo.Context, param string) (int64, error) {
	return strconv.ParseInt(c.Param(param), 10, 64)
}

func notFoundOr500(c echo.Context, err error, code, message string) error {
	if repository.IsNotFound(err) {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode("NOT_FOUND", err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode(code, message+": "+err.Error()))
}

// --- Publishers ---

type createPublisherRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name"`
	Gender         string `json:"gender" validate:"required,oneof=Male Female"`
	IsShiftManager bool   `json:"is_shift_manager"`
	Priority       int    `json:"priority"`
}

// CreatePublisher handles POST /api/publishers
func (h *Handlers) CreatePublisher(c echo.Context) error {
	var req createPublisherRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	now := time.Now().UTC()
	p := &entity.Publisher{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         entity.Gender(req.Gender),
		IsShiftManager: req.IsShiftManager,
		Priority:       req.Priority,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := entity.ValidatePublisher(p); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse(
			validation.FromScheduleError(validation.CodeManagerMustBeMale, err)))
	}

	if err := h.store.PublisherRepository().Create(c.Request().Context(), p); err != nil {
		return notFoundOr500(c, err, "CREATION_FAILED", "failed to create publisher")
	}

	return c.JSON(http.StatusCreated, SuccessResponse(p))
}

// GetPublisher handles GET /api/publishers/:id
func (h *Handlers) GetPublisher(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "publisher id must be numeric"))
	}

	p, err := h.store.PublisherRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr500(c, err, "RETRIEVAL_FAILED", "failed to retrieve publisher")
	}
	return c.JSON(http.StatusOK, SuccessResponse(p))
}

// ListPublishers handles GET /api/publishers
func (h *Handlers) ListPublishers(c echo.Context) error {
	publishers, err := h.store.PublisherRepository().List(c.Request().Context())
	if err != nil {
		return notFoundOr500(c, err, "RETRIEVAL_FAILED", "failed to list publishers")
	}
	return c.JSON(http.StatusOK, SuccessResponse(publishers))
}

// UpdatePublisher handles PUT /api/publishers/:id
func (h *Handlers) UpdatePublisher(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "publisher id must be numeric"))
	}

	var req createPublisherRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	p := &entity.Publisher{
		ID:             id,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         entity.Gender(req.Gender),
		IsShiftManager: req.IsShiftManager,
		Priority:       req.Priority,
		UpdatedAt:      time.Now().UTC(),
	}

	if err := entity.ValidatePublisher(p); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse(
			validation.FromScheduleError(validation.CodeManagerMustBeMale, err)))
	}

	if err := h.store.PublisherRepository().Update(c.Request().Context(), p); err != nil {
		return notFoundOr500(c, err, "UPDATE_FAILED", "failed to update publisher")
	}
	return c.JSON(http.StatusOK, SuccessResponse(p))
}

// DeletePublisher handles DELETE /api/publishers/:id
func (h *Handlers) DeletePublisher(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "publisher id must be numeric"))
	}
	if err := h.store.PublisherRepository().Delete(c.Request().Context(), id); err != nil {
		return notFoundOr500(c, err, "DELETE_FAILED", "failed to delete publisher")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Schedules ---

type createScheduleRequest struct {
	Location         string `json:"location" validate:"required"`
	StartHour        string `json:"start_hour" validate:"required"`
	EndHour          string `json:"end_hour" validate:"required"`
	Weekday          int    `json:"weekday" validate:"required,min=1,max=7"`
	NumPublishers    int    `json:"num_publishers" validate:"required,min=1"`
	NumShiftManagers int    `json:"num_shift_managers"`
	NumBrothers      int    `json:"num_brothers"`
	NumSisters       int    `json:"num_sisters"`
}

func (req createScheduleRequest) toEntity(id entity.ScheduleID) *entity.Schedule {
	now := time.Now().UTC()
	return &entity.Schedule{
		ID:               id,
		Location:         req.Location,
		StartHour:        req.StartHour,
		EndHour:          req.EndHour,
		Weekday:          req.Weekday,
		NumPublishers:    req.NumPublishers,
		NumShiftManagers: req.NumShiftManagers,
		NumBrothers:      req.NumBrothers,
		NumSisters:       req.NumSisters,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// CreateSchedule handles POST /api/schedules
func (h *Handlers) CreateSchedule(c echo.Context) error {
	var req createScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	s := req.toEntity(0)
	if err := entity.ValidateSchedule(s); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse(
			validation.FromScheduleError(validation.CodeQuotaExceedsCapacity, err)))
	}

	if err := h.store.ScheduleRepository().Create(c.Request().Context(), s); err != nil {
		return notFoundOr500(c, err, "CREATION_FAILED", "failed to create schedule")
	}
	return c.JSON(http.StatusCreated, SuccessResponse(s))
}

// GetSchedule handles GET /api/schedules/:id
func (h *Handlers) GetSchedule(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "schedule id must be numeric"))
	}
	s, err := h.store.ScheduleRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		return notFoundOr500(c, err, "RETRIEVAL_FAILED", "failed to retrieve schedule")
	}
	return c.JSON(http.StatusOK, SuccessResponse(s))
}

// ListSchedules handles GET /api/schedules
func (h *Handlers) ListSchedules(c echo.Context) error {
	schedules, err := h.store.ScheduleRepository().List(c.Request().Context())
	if err != nil {
		return notFoundOr500(c, err, "RETRIEVAL_FAILED", "failed to list schedules")
	}
	return c.JSON(http.StatusOK, SuccessResponse(schedules))
}

// DeleteSchedule handles DELETE /api/schedules/:id
func (h *Handlers) DeleteSchedule(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "schedule id must be numeric"))
	}
	if err := h.store.ScheduleRepository().Delete(c.Request().Context(), id); err != nil {
		return notFoundOr500(c, err, "DELETE_FAILED", "failed to delete schedule")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Availability ---

type setAvailabilityRequest struct {
	ScheduleID entity.ScheduleID `json:"schedule_id" validate:"required"`
}

// SetAvailability handles POST /api/publishers/:id/availability
func (h *Handlers) SetAvailability(c echo.Context) error {
	publisherID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "publisher id must be numeric"))
	}
	var req setAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}
	if err := h.store.AvailabilityRepository().Set(c.Request().Context(), publisherID, req.ScheduleID); err != nil {
		return notFoundOr500(c, err, "CREATION_FAILED", "failed to set availability")
	}
	return c.NoContent(http.StatusCreated)
}

type availabilityPair struct {
	PublisherID entity.PublisherID `json:"publisher_id" validate:"required"`
	ScheduleID  entity.ScheduleID  `json:"schedule_id" validate:"required"`
}

type setAvailabilityBulkRequest struct {
	Pairs []availabilityPair `json:"pairs" validate:"required,min=1"`
}

type availabilityBulkResult struct {
	PublisherID entity.PublisherID `json:"publisher_id"`
	ScheduleID  entity.ScheduleID  `json:"schedule_id"`
	Error       string             `json:"error,omitempty"`
}

// SetAvailabilityBulk handles POST /api/availability, setting availability
// for a batch of (publisher_id, schedule_id) pairs in one request. Unlike
// the single-pair nested endpoint, a failure on one pair does not stop the
// rest: the response reports a result per pair so the caller can see
// exactly which ones failed.
func (h *Handlers) SetAvailabilityBulk(c echo.Context) error {
	var req setAvailabilityBulkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}
	if len(req.Pairs) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", "pairs must not be empty"))
	}

	results := make([]availabilityBulkResult, len(req.Pairs))
	failed := false
	for i, pair := range req.Pairs {
		result := availabilityBulkResult{PublisherID: pair.PublisherID, ScheduleID: pair.ScheduleID}
		if err := h.store.AvailabilityRepository().Set(c.Request().Context(), pair.PublisherID, pair.ScheduleID); err != nil {
			failed = true
			result.Error = err.Error()
		}
		results[i] = result
	}

	status := http.StatusCreated
	if failed {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, SuccessResponse(results))
}

// UnsetAvailability handles DELETE /api/publishers/:id/availability/:scheduleID
func (h *Handlers) UnsetAvailability(c echo.Context) error {
	publisherID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "publisher id must be numeric"))
	}
	scheduleID, err := parseID(c, "scheduleID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "schedule id must be numeric"))
	}
	if err := h.store.AvailabilityRepository().Unset(c.Request().Context(), publisherID, scheduleID); err != nil {
		return notFoundOr500(c, err, "DELETE_FAILED", "failed to unset availability")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Absences ---

type createAbsenceRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// CreateAbsence handles POST /api/publishers/:id/absences
func (h *Handlers) CreateAbsence(c echo.Context) error {
	publisherID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "publisher id must be numeric"))
	}
	var req createAbsenceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	a := &entity.Absence{
		PublisherID: publisherID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := entity.ValidateAbsence(a); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse(
			validation.FromScheduleError(validation.CodeInvalidDateRange, err)))
	}

	if err := h.store.AbsenceRepository().Create(c.Request().Context(), a); err != nil {
		return notFoundOr500(c, err, "CREATION_FAILED", "failed to create absence")
	}
	return c.JSON(http.StatusCreated, SuccessResponse(a))
}

// ListAbsences handles GET /api/publishers/:id/absences
func (h *Handlers) ListAbsences(c echo.Context) error {
	publisherID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "publisher id must be numeric"))
	}
	absences, err := h.store.AbsenceRepository().ListByPublisher(c.Request().Context(), publisherID)
	if err != nil {
		return notFoundOr500(c, err, "RETRIEVAL_FAILED", "failed to list absences")
	}
	return c.JSON(http.StatusOK, SuccessResponse(absences))
}

// DeleteAbsence handles DELETE /api/absences/:id
func (h *Handlers) DeleteAbsence(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "absence id must be numeric"))
	}
	if err := h.store.AbsenceRepository().Delete(c.Request().Context(), id); err != nil {
		return notFoundOr500(c, err, "DELETE_FAILED", "failed to delete absence")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Relationships ---

type createRelationshipRequest struct {
	A    entity.PublisherID     `json:"a" validate:"required"`
	B    entity.PublisherID     `json:"b" validate:"required"`
	Kind entity.RelationshipKind `json:"kind" validate:"required,oneof=Mandatory Recommended"`
}

// CreateRelationship handles POST /api/relationships
func (h *Handlers) CreateRelationship(c echo.Context) error {
	var req createRelationshipRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	rel := &entity.Relationship{A: req.A, B: req.B, Kind: req.Kind}
	if err := entity.ValidateRelationship(rel); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse(
			validation.FromScheduleError(validation.CodeSelfRelationship, err)))
	}

	if err := h.store.RelationshipRepository().Create(c.Request().Context(), rel); err != nil {
		if err == entity.ErrDuplicateRelationship {
			return c.JSON(http.StatusConflict, ErrorResponseWithCode(validation.CodeDuplicateRelationship, err.Error()))
		}
		return notFoundOr500(c, err, "CREATION_FAILED", "failed to create relationship")
	}
	return c.JSON(http.StatusCreated, SuccessResponse(rel))
}

// ListRelationships handles GET /api/publishers/:id/relationships
func (h *Handlers) ListRelationships(c echo.Context) error {
	publisherID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "publisher id must be numeric"))
	}
	edges, err := h.store.RelationshipRepository().ListForPublisher(c.Request().Context(), publisherID)
	if err != nil {
		return notFoundOr500(c, err, "RETRIEVAL_FAILED", "failed to list relationships")
	}
	return c.JSON(http.StatusOK, SuccessResponse(edges))
}

// DeleteRelationship handles DELETE /api/relationships/:id
func (h *Handlers) DeleteRelationship(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_ID", "relationship id must be numeric"))
	}
	if err := h.store.RelationshipRepository().Delete(c.Request().Context(), id); err != nil {
		return notFoundOr500(c, err, "DELETE_FAILED", "failed to delete relationship")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Shifts & generation ---

func parseDateQuery(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" query parameter required")
	}
	return time.Parse("2006-01-02", raw)
}

// ListShifts handles GET /api/shifts?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) ListShifts(c echo.Context) error {
	start, err := parseDateQuery(c, "start")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_RANGE", err.Error()))
	}
	end, err := parseDateQuery(c, "end")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_RANGE", err.Error()))
	}

	shifts, err := h.store.ShiftRepository().ListBetween(c.Request().Context(), start, end)
	if err != nil {
		return notFoundOr500(c, err, "RETRIEVAL_FAILED", "failed to list shifts")
	}
	return c.JSON(http.StatusOK, SuccessResponse(shifts))
}

type generateRequest struct {
	RangeStart time.Time `json:"range_start" validate:"required"`
	RangeEnd   time.Time `json:"range_end" validate:"required"`
	Async      bool      `json:"async"`
	Seed       uint64    `json:"seed,omitempty"`
}

// GenerateShifts handles POST /api/generate
func (h *Handlers) GenerateShifts(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode("INVALID_REQUEST", err.Error()))
	}

	requestID := logger.ExtractRequestID(c.Request().Context())

	if req.Async {
		if h.scheduler == nil {
			return c.JSON(http.StatusServiceUnavailable, ErrorResponseWithCode("SCHEDULER_UNAVAILABLE", "no job scheduler configured"))
		}
		info, err := h.scheduler.EnqueueGenerateShifts(c.Request().Context(), req.RangeStart, req.RangeEnd, req.Seed, requestID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("ENQUEUE_FAILED", err.Error()))
		}
		logger.LogGenerationQueued(h.logger, requestID, req.RangeStart, req.RangeEnd, info.ID)
		return c.JSON(http.StatusAccepted, SuccessResponse(map[string]interface{}{
			"job_id": info.ID,
			"status": "queued",
		}))
	}

	driver := h.driver
	if req.Seed != 0 {
		cloned := *h.driver
		cloned.Seed = req.Seed
		driver = &cloned
	}

	summary, err := driver.Generate(c.Request().Context(), req.RangeStart, req.RangeEnd)
	if err != nil {
		logger.LogGenerationResult(h.logger, requestID, 0, 0, 0, err)
		if ge, ok := err.(*engine.GenerationError); ok && ge.Kind == engine.KindInputRange {
			return c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse(
				validation.FromScheduleError(validation.CodeInvertedGenerationRange, err)))
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode("GENERATION_FAILED", err.Error()))
	}

	logger.LogGenerationResult(h.logger, requestID, summary.Created, summary.SkippedExisting, summary.Warned, nil)
	return c.JSON(http.StatusOK, SuccessResponse(summary))
}

// --- Health ---

// Health returns the health status
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse(map[string]interface{}{"status": "UP"}))
}

// HealthDB returns database health status
func (h *Handlers) HealthDB(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponseWithCode("DB_DOWN", err.Error()))
	}
	return c.JSON(http.StatusOK, SuccessResponse(map[string]interface{}{"database": "UP"}))
}

// HealthRedis returns the job queue's Redis connectivity status. Async
// generation depends on Redis being reachable, so this is reported
// separately from the database health check.
func (h *Handlers) HealthRedis(c echo.Context) error {
	if h.scheduler == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponseWithCode("SCHEDULER_UNAVAILABLE", "no job scheduler configured"))
	}
	if err := h.scheduler.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponseWithCode("REDIS_DOWN", err.Error()))
	}
	return c.JSON(http.StatusOK, SuccessResponse(map[string]interface{}{"redis": "UP"}))
}
