package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CatcatWinter/calendar-planner/internal/calendar"
	"github.com/CatcatWinter/calendar-planner/internal/config"
	"github.com/CatcatWinter/calendar-planner/internal/database"
	"github.com/CatcatWinter/calendar-planner/internal/logger"
	"github.com/CatcatWinter/calendar-planner/internal/planner"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger

	// now is replaced in tests.
	now func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

// log returns the handler logger tagged with the request ID.
func (h *Handlers) log(r *http.Request) *slog.Logger {
	return logger.Tag(r.Context(), h.logger)
}

// writeCalendarError maps engine errors onto responses.
func (h *Handlers) writeCalendarError(w http.ResponseWriter, r *http.Request, err error) {
	if calendar.IsOutOfRange(err) {
		WriteOutOfRange(w, err.Error())
		return
	}
	h.log(r).Error("calendar lookup failed", slog.Any("error", err))
	WriteInternalError(w, "Failed to compute calendar data")
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.log(r).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	stats, err := h.db.Stats(ctx)
	if err != nil {
		h.log(r).Warn("stats query failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status":     "healthy",
		"year_range": []int{calendar.MinYear, calendar.MaxYear},
		"plans":      stats,
	})
}

// =============================================================================
// Calendar
// =============================================================================

// GetToday handles GET /api/v1/dates/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	today := calendar.NewSolarDate(h.now())
	info, err := calendar.GetDateInfo(today.Year, today.Month, today.Day)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	WriteSuccess(w, info)
}

// GetDate handles GET /api/v1/dates/{date}
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	info, err := calendar.GetDateInfo(date.Year, date.Month, date.Day)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	WriteSuccess(w, info)
}

// GetDateRange handles GET /api/v1/dates?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetDateRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := calendar.ParseDate(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}
	end, err := calendar.ParseDate(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	if end.Before(start) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}
	if n := calendar.DaysBetween(start, end) + 1; n > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	days := []calendar.DateInfo{}
	for d := start; !end.Before(d); d = d.AddDays(1) {
		info, err := calendar.GetDateInfo(d.Year, d.Month, d.Day)
		if err != nil {
			h.writeCalendarError(w, r, err)
			return
		}
		days = append(days, info)
	}

	WriteSuccess(w, map[string]interface{}{
		"start": start.String(),
		"end":   end.String(),
		"count": len(days),
		"days":  days,
	})
}

// GetMonth handles GET /api/v1/calendar/{year}/{month}
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		WriteBadRequest(w, "Invalid month")
		return
	}

	view, err := calendar.MonthGrid(year, month)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	WriteSuccess(w, view)
}

// ConvertSolar handles GET /api/v1/convert/solar/{date}
func (h *Handlers) ConvertSolar(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	lunar, err := calendar.SolarToLunar(date.Year, date.Month, date.Day)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]interface{}{
		"solar": date,
		"lunar": lunar,
	})
}

// ConvertLunar handles GET /api/v1/convert/lunar?year=&month=&day=&leap=
func (h *Handlers) ConvertLunar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var vals [3]int
	for i, name := range []string{"year", "month", "day"} {
		v, err := strconv.Atoi(q.Get(name))
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Query parameter %s must be an integer", name))
			return
		}
		vals[i] = v
	}

	leap := false
	if s := q.Get("leap"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			WriteBadRequest(w, "Query parameter leap must be a boolean")
			return
		}
		leap = b
	}

	solar, err := calendar.LunarToSolar(vals[0], vals[1], vals[2], leap)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	info, err := calendar.GetDateInfo(solar.Year, solar.Month, solar.Day)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]interface{}{
		"solar": solar,
		"info":  info,
	})
}

// GetYear handles GET /api/v1/years/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}

	info, err := calendar.DescribeYear(year)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	WriteSuccess(w, info)
}

// GetSolarTerms handles GET /api/v1/solar-terms/{year}
func (h *Handlers) GetSolarTerms(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}

	terms, err := calendar.AllSolarTerms(year)
	if err != nil {
		h.writeCalendarError(w, r, err)
		return
	}
	WriteSuccess(w, map[string]interface{}{
		"year":  year,
		"terms": terms,
	})
}

// =============================================================================
// Plans
// =============================================================================

// planRequest is the JSON body of plan generation.
type planRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Start       string  `json:"start"` // YYYY-MM-DD
	End         string  `json:"end"`
	HoursPerDay float64 `json:"hours_per_day"`
	Intensity   int     `json:"intensity"`
}

func (pr planRequest) toRequest() (planner.Request, error) {
	start, err := calendar.ParseDate(pr.Start)
	if err != nil {
		return planner.Request{}, fmt.Errorf("invalid start date %q, use YYYY-MM-DD", pr.Start)
	}
	end, err := calendar.ParseDate(pr.End)
	if err != nil {
		return planner.Request{}, fmt.Errorf("invalid end date %q, use YYYY-MM-DD", pr.End)
	}
	return planner.Request{
		Title:       pr.Title,
		Description: pr.Description,
		Start:       start,
		End:         end,
		HoursPerDay: pr.HoursPerDay,
		Intensity:   pr.Intensity,
	}, nil
}

// generate decodes the body and builds a plan, writing the error
// response itself when it returns nil.
func (h *Handlers) generate(w http.ResponseWriter, r *http.Request) *planner.Plan {
	var body planRequest
	if err := decodeJSON(r, &body); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return nil
	}
	req, err := body.toRequest()
	if err != nil {
		WriteBadRequest(w, err.Error())
		return nil
	}

	plan, err := planner.Generate(req)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidRequest) {
			WriteBadRequest(w, err.Error())
			return nil
		}
		h.log(r).Error("failed to generate plan", slog.Any("error", err))
		WriteInternalError(w, "Failed to generate plan")
		return nil
	}
	return plan
}

// GeneratePlan handles POST /api/v1/plans/generate. The plan is not saved.
func (h *Handlers) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	if plan := h.generate(w, r); plan != nil {
		WriteSuccess(w, plan)
	}
}

// CreatePlan handles POST /api/v1/plans
func (h *Handlers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	plan := h.generate(w, r)
	if plan == nil {
		return
	}

	if err := h.db.SavePlan(r.Context(), plan); err != nil {
		h.log(r).Error("failed to save plan", slog.String("plan_id", plan.ID), slog.Any("error", err))
		WriteInternalError(w, "Failed to save plan")
		return
	}

	h.log(r).Info("plan saved",
		slog.String("plan_id", plan.ID),
		slog.String("category", string(plan.Category)),
		slog.Int("tasks", plan.TotalTasks()),
	)
	WriteCreated(w, plan)
}

// ListPlans handles GET /api/v1/plans?limit=&offset=
func (h *Handlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0

	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o >= 0 {
		offset = o
	}

	plans, err := h.db.ListPlans(r.Context(), limit, offset)
	if err != nil {
		h.log(r).Error("failed to list plans", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve plans")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"plans":  plans,
		"limit":  limit,
		"offset": offset,
	})
}

// loadPlan fetches the {id} plan, writing the error response itself when
// it returns nil.
func (h *Handlers) loadPlan(w http.ResponseWriter, r *http.Request) *planner.Plan {
	id := chi.URLParam(r, "id")
	plan, err := h.db.GetPlan(r.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Plan not found")
			return nil
		}
		h.log(r).Error("failed to get plan", slog.String("plan_id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve plan")
		return nil
	}
	return plan
}

// GetPlan handles GET /api/v1/plans/{id}
func (h *Handlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	if plan := h.loadPlan(w, r); plan != nil {
		WriteSuccess(w, map[string]interface{}{
			"plan":            plan,
			"total_tasks":     plan.TotalTasks(),
			"completed_tasks": plan.CompletedTasks(),
		})
	}
}

// DeletePlan handles DELETE /api/v1/plans/{id}
func (h *Handlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeletePlan(r.Context(), id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Plan not found")
			return
		}
		h.log(r).Error("failed to delete plan", slog.String("plan_id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to delete plan")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Plan deleted"})
}

// ToggleTask handles POST /api/v1/plans/{id}/tasks/{taskID}/toggle
func (h *Handlers) ToggleTask(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")
	taskID := chi.URLParam(r, "taskID")

	completed, err := h.db.ToggleTask(r.Context(), planID, taskID)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Task not found")
			return
		}
		h.log(r).Error("failed to toggle task",
			slog.String("plan_id", planID),
			slog.String("task_id", taskID),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to update task")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"task_id":   taskID,
		"completed": completed,
	})
}

// ExportPlan handles GET /api/v1/plans/{id}/export?format=markdown|yaml|json
func (h *Handlers) ExportPlan(w http.ResponseWriter, r *http.Request) {
	format, err := planner.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	plan := h.loadPlan(w, r)
	if plan == nil {
		return
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case planner.FormatMarkdown:
		body = []byte(planner.ExportMarkdown(plan))
		contentType = "text/markdown; charset=utf-8"
	case planner.FormatYAML:
		body, err = planner.ExportYAML(plan)
		contentType = "application/yaml"
	case planner.FormatJSON:
		body, err = json.MarshalIndent(plan, "", "  ")
		contentType = "application/json"
	}
	if err != nil {
		h.log(r).Error("failed to export plan", slog.String("plan_id", plan.ID), slog.Any("error", err))
		WriteInternalError(w, "Failed to export plan")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": planner.Filename(plan, format),
	}))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
