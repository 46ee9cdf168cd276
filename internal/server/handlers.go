package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/ventureboard/internal/constants"
	"github.com/julianstephens/ventureboard/internal/dashboard"
	"github.com/julianstephens/ventureboard/internal/finance"
	"github.com/julianstephens/ventureboard/internal/models"
	"github.com/julianstephens/ventureboard/internal/productivity"
	"github.com/julianstephens/ventureboard/internal/utils"
)

// localNow returns the request time in the resolved timezone.
func (s *Server) localNow() (time.Time, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return time.Time{}, err
	}
	return s.env.LocalTime(s.now(), settings)
}

// compute builds the dashboard for now; days <= 0 uses the default window.
func (s *Server) compute(w http.ResponseWriter, days int) (dashboard.Dashboard, bool) {
	now, err := s.localNow()
	if err != nil {
		s.serverError(w, "Failed to load settings", err)
		return dashboard.Dashboard{}, false
	}
	dash, err := dashboard.Compute(s.store, now, days)
	if err != nil {
		s.serverError(w, "Failed to compute dashboard", err)
		return dashboard.Dashboard{}, false
	}
	return dash, true
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	response := map[string]interface{}{
		"status":  "healthy",
		"service": constants.AppName,
		"version": constants.Version,
		"storage": s.store.GetConfigPath(),
	}
	if _, err := s.store.GetSettings(); err != nil {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
		response["error"] = err.Error()
	}
	s.writeJSON(w, status, response)
}

// GET /api/dashboard?days=N
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	days, ok := s.daysParam(w, r)
	if !ok {
		return
	}
	if dash, ok := s.compute(w, days); ok {
		s.writeJSON(w, http.StatusOK, dash)
	}
}

type netWorthResponse struct {
	NetWorth  decimal.Decimal `json:"net_worth"`
	Formatted string          `json:"formatted"`
	Summary   finance.Summary `json:"summary"`
}

// GET /api/networth
func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	dash, ok := s.compute(w, 0)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, netWorthResponse{
		NetWorth:  dash.NetWorth,
		Formatted: utils.FormatINR(dash.NetWorth),
		Summary:   dash.Finance,
	})
}

type portfolioResponse struct {
	Value      decimal.Decimal     `json:"value"`
	Cost       decimal.Decimal     `json:"cost"`
	ProfitLoss decimal.Decimal     `json:"profit_loss"`
	Formatted  string              `json:"formatted"`
	Holdings   []finance.Holding   `json:"holdings"`
	ByKind     []finance.KindTotal `json:"by_kind"`
}

// GET /api/portfolio
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	dash, ok := s.compute(w, 0)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, portfolioResponse{
		Value:      dash.Portfolio,
		Cost:       dash.Finance.InvestedCost,
		ProfitLoss: dash.Finance.PortfolioProfitLoss,
		Formatted:  utils.FormatINR(dash.Portfolio),
		Holdings:   dash.Holdings,
		ByKind:     dash.ByKind,
	})
}

// GET /api/reminders?min_priority=high
func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	min := models.PriorityLow
	if p := r.URL.Query().Get("min_priority"); p != "" {
		min = models.Priority(p)
		if !min.Valid() {
			s.writeError(w, http.StatusBadRequest, "Invalid min_priority")
			return
		}
	}
	dash, ok := s.compute(w, 0)
	if !ok {
		return
	}
	rs := make([]models.Reminder, 0, len(dash.Reminders))
	for _, rem := range dash.Reminders {
		if rem.Priority.AtLeast(min) {
			rs = append(rs, rem)
		}
	}
	s.writeJSON(w, http.StatusOK, rs)
}

type productivityResponse struct {
	Today   models.ProductivityEntry   `json:"today"`
	Streak  int                        `json:"streak"`
	Entries []models.ProductivityEntry `json:"entries"`
	Summary productivity.Summary       `json:"summary"`
	Heatmap []productivity.Cell        `json:"heatmap"`
}

// GET /api/productivity?days=N
func (s *Server) handleProductivity(w http.ResponseWriter, r *http.Request) {
	days, ok := s.daysParam(w, r)
	if !ok {
		return
	}
	dash, ok := s.compute(w, days)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, productivityResponse{
		Today:   dash.Today,
		Streak:  dash.Streak,
		Entries: dash.Productivity,
		Summary: dash.Summary,
		Heatmap: dash.Heatmap,
	})
}

// POST /api/productivity/refresh?date=YYYY-MM-DD (repeatable, defaults to today)
func (s *Server) handleRefreshProductivity(w http.ResponseWriter, r *http.Request) {
	now, err := s.localNow()
	if err != nil {
		s.serverError(w, "Failed to load settings", err)
		return
	}
	dates := r.URL.Query()["date"]
	for _, date := range dates {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid date: "+date)
			return
		}
	}
	if len(dates) == 0 {
		dates = []string{utils.FormatDate(now)}
	}

	entries, err := dashboard.RefreshProductivity(s.store, dates...)
	if err != nil {
		s.serverError(w, "Failed to refresh productivity", err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

type tasksResponse struct {
	Date  string                   `json:"date"`
	Tasks []models.DailyTask       `json:"tasks"`
	Score models.ProductivityEntry `json:"score"`
}

// GET /api/tasks?date=YYYY-MM-DD
func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		now, err := s.localNow()
		if err != nil {
			s.serverError(w, "Failed to load settings", err)
			return
		}
		date = utils.FormatDate(now)
	} else if _, err := time.Parse(constants.DateFormat, date); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	tasks, err := s.store.GetAllTasks()
	if err != nil {
		s.serverError(w, "Failed to get tasks", err)
		return
	}
	s.writeJSON(w, http.StatusOK, tasksResponse{
		Date:  date,
		Tasks: productivity.TasksForDate(tasks, date),
		Score: productivity.Score(tasks, date),
	})
}

// POST /api/tasks/{id}/toggle
func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, err := s.store.GetTask(id)
	if errors.Is(err, models.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	if err != nil {
		s.serverError(w, "Failed to get task", err)
		return
	}

	task.Completed = !task.Completed
	if err := s.store.UpdateTask(task); err != nil {
		s.serverError(w, "Failed to update task", err)
		return
	}

	now, err := s.localNow()
	if err != nil {
		s.serverError(w, "Failed to load settings", err)
		return
	}
	if _, err := dashboard.RefreshProductivity(s.store, dashboard.AffectedDates(task, utils.FormatDate(now))...); err != nil {
		s.serverError(w, "Failed to refresh productivity", err)
		return
	}
	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) daysParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return constants.DefaultProductivityDays, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 || days > constants.MaxProductivityDays {
		s.writeError(w, http.StatusBadRequest, "days must be between 1 and "+strconv.Itoa(constants.MaxProductivityDays))
		return 0, false
	}
	return days, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func (s *Server) serverError(w http.ResponseWriter, message string, err error) {
	s.log.Error(message, "error", err)
	s.writeError(w, http.StatusInternalServerError, message)
}
