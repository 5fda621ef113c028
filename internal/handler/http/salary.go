package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/report"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/middleware"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
)

type SalaryIncreaseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ExportOne(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Resubmit(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

// Salary increases are filed by kepegawaian, so the create permission also
// allows revising and cancelling them.
var salaryPermissions = kindPermissions{
	viewAll:   user.PermissionSalaryViewAll,
	cancelAny: user.PermissionSalaryCreate,
}

type salaryIncreaseHandlerImpl struct {
	salaryService salary.SalaryIncreaseService
	reportService report.ReportService
	authz         middleware.Authorizer
}

func NewSalaryIncreaseHandler(salaryService salary.SalaryIncreaseService, reportService report.ReportService, authz middleware.Authorizer) SalaryIncreaseHandler {
	return &salaryIncreaseHandlerImpl{
		salaryService: salaryService,
		reportService: reportService,
		authz:         authz,
	}
}

func (h *salaryIncreaseHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, salaryPermissions)
	if !ok {
		return
	}
	var req salary.CreateSalaryIncreaseRequest
	if !decodeJSON(w, r, &req, "CreateSalaryIncrease") {
		return
	}

	increase, err := h.salaryService.Create(r.Context(), a, req)
	if err != nil {
		slog.Error("CreateSalaryIncrease service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary increase created successfully", increase)
}

func (h *salaryIncreaseHandlerImpl) filter(w http.ResponseWriter, r *http.Request) (salary.SalaryIncreaseFilter, bool) {
	a, ok := actor(w, r, h.authz, salaryPermissions)
	if !ok {
		return salary.SalaryIncreaseFilter{}, false
	}
	requested := ""
	if v := queryPtr(r, "employee_id"); v != nil {
		requested = *v
	}
	employeeID, ok := scopeEmployee(w, a, a.ViewAll, requested)
	if !ok {
		return salary.SalaryIncreaseFilter{}, false
	}

	return salary.SalaryIncreaseFilter{
		EmployeeID: employeeID,
		Status:     queryPtr(r, "status"),
		Params:     pageParams(r),
	}, true
}

func (h *salaryIncreaseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	increases, err := h.salaryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, increases)
}

func (h *salaryIncreaseHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.SalaryIncreases(r.Context(), filter, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}

func (h *salaryIncreaseHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, salaryPermissions)
	if !ok {
		return
	}

	increase, err := h.salaryService.Get(r.Context(), a, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, increase)
}

func (h *salaryIncreaseHandlerImpl) ExportOne(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	a, ok := actor(w, r, h.authz, salaryPermissions)
	if !ok {
		return
	}

	file, err := h.reportService.SalaryIncrease(r.Context(), a, chi.URLParam(r, "id"), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}

func (h *salaryIncreaseHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, salaryPermissions)
	if !ok {
		return
	}
	var req approval.DecisionRequest
	if !decodeJSON(w, r, &req, "DecideSalaryIncrease") {
		return
	}

	increase, err := h.salaryService.Decide(r.Context(), a, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("DecideSalaryIncrease service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", increase)
}

func (h *salaryIncreaseHandlerImpl) Resubmit(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, salaryPermissions)
	if !ok {
		return
	}
	var req salary.ResubmitSalaryIncreaseRequest
	if !decodeJSON(w, r, &req, "ResubmitSalaryIncrease") {
		return
	}
	req.ID = chi.URLParam(r, "id")

	increase, err := h.salaryService.Resubmit(r.Context(), a, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary increase resubmitted", increase)
}

func (h *salaryIncreaseHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, salaryPermissions)
	if !ok {
		return
	}
	var req approval.CancelRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req, "CancelSalaryIncrease") {
		return
	}

	increase, err := h.salaryService.Cancel(r.Context(), a, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary increase cancelled", increase)
}
