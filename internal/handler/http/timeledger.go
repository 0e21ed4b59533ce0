package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salonops/timecore-backend-go/internal/domain/timeledger"
	"github.com/salonops/timecore-backend-go/internal/handler/http/response"
)

type TimeLedgerHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartExit(w http.ResponseWriter, r *http.Request)
	EndExit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	OvertimeTotal(w http.ResponseWriter, r *http.Request)
}

type timeLedgerHandlerImpl struct {
	ledgerService timeledger.Service
}

func NewTimeLedgerHandler(ledgerService timeledger.Service) TimeLedgerHandler {
	return &timeLedgerHandlerImpl{
		ledgerService: ledgerService,
	}
}

// CheckIn implements TimeLedgerHandler.
func (h *timeLedgerHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req timeledger.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.ledgerService.CheckIn(r.Context(), req, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements TimeLedgerHandler.
func (h *timeLedgerHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	result, err := h.ledgerService.CheckOut(r.Context(), entryID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// StartExit implements TimeLedgerHandler.
func (h *timeLedgerHandlerImpl) StartExit(w http.ResponseWriter, r *http.Request) {
	var req timeledger.StartExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EntryID = chi.URLParam(r, "id")

	result, err := h.ledgerService.StartExit(r.Context(), req, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Exit started", result)
}

// EndExit implements TimeLedgerHandler.
func (h *timeLedgerHandlerImpl) EndExit(w http.ResponseWriter, r *http.Request) {
	exitID := chi.URLParam(r, "exitID")

	result, err := h.ledgerService.EndExit(r.Context(), exitID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exit ended", result)
}

// Get implements TimeLedgerHandler.
func (h *timeLedgerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	result, err := h.ledgerService.GetEntry(r.Context(), entryID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TimeLedgerHandler.
func (h *timeLedgerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := timeledger.EntryFilter{}

	if staffID := r.URL.Query().Get("staff_id"); staffID != "" {
		filter.StaffID = &staffID
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	filter.Page = page

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	filter.Limit = limit

	if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
		filter.SortBy = sortBy
	}
	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	results, err := h.ledgerService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// OvertimeTotal implements TimeLedgerHandler.
func (h *timeLedgerHandlerImpl) OvertimeTotal(w http.ResponseWriter, r *http.Request) {
	staffID := r.URL.Query().Get("staff_id")
	if staffID == "" {
		response.BadRequest(w, "Query parameter 'staff_id' is required", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Query parameter 'month' must be 1-12", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' is required", nil)
		return
	}

	result, err := h.ledgerService.OvertimeTotal(r.Context(), staffID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
