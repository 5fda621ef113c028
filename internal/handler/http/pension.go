package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/report"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/middleware"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
)

type PensionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ExportOne(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Resubmit(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
}

var pensionPermissions = kindPermissions{
	viewAll:   user.PermissionPensionViewAll,
	cancelAny: user.PermissionPensionComplete,
}

type pensionHandlerImpl struct {
	pensionService pension.PensionService
	reportService  report.ReportService
	authz          middleware.Authorizer
}

func NewPensionHandler(pensionService pension.PensionService, reportService report.ReportService, authz middleware.Authorizer) PensionHandler {
	return &pensionHandlerImpl{
		pensionService: pensionService,
		reportService:  reportService,
		authz:          authz,
	}
}

func (h *pensionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, pensionPermissions)
	if !ok {
		return
	}

	var req pension.CreatePensionRequest
	file, fileHeader, ok := decodeSubmission(w, r, &req, "CreatePension")
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	employeeID, ok := scopeEmployee(w, a, h.authz.Can(a.Role, user.PermissionEmployeeManage), req.EmployeeID)
	if !ok {
		return
	}
	if employeeID != nil {
		req.EmployeeID = *employeeID
	}
	req.File = file
	req.FileHeader = fileHeader

	pensionRequest, err := h.pensionService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreatePension service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pension request created successfully", pensionRequest)
}

func (h *pensionHandlerImpl) filter(w http.ResponseWriter, r *http.Request) (pension.PensionFilter, bool) {
	a, ok := actor(w, r, h.authz, pensionPermissions)
	if !ok {
		return pension.PensionFilter{}, false
	}
	requested := ""
	if v := queryPtr(r, "employee_id"); v != nil {
		requested = *v
	}
	employeeID, ok := scopeEmployee(w, a, a.ViewAll, requested)
	if !ok {
		return pension.PensionFilter{}, false
	}

	return pension.PensionFilter{
		EmployeeID:  employeeID,
		Status:      queryPtr(r, "status"),
		PensionType: queryPtr(r, "pension_type"),
		Params:      pageParams(r),
	}, true
}

func (h *pensionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	requests, err := h.pensionService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *pensionHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.Pensions(r.Context(), filter, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}

func (h *pensionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, pensionPermissions)
	if !ok {
		return
	}

	pensionRequest, err := h.pensionService.Get(r.Context(), a, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pensionRequest)
}

func (h *pensionHandlerImpl) ExportOne(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	a, ok := actor(w, r, h.authz, pensionPermissions)
	if !ok {
		return
	}

	file, err := h.reportService.Pension(r.Context(), a, chi.URLParam(r, "id"), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}

func (h *pensionHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, pensionPermissions)
	if !ok {
		return
	}
	var req approval.DecisionRequest
	if !decodeJSON(w, r, &req, "DecidePension") {
		return
	}

	pensionRequest, err := h.pensionService.Decide(r.Context(), a, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("DecidePension service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", pensionRequest)
}

func (h *pensionHandlerImpl) Resubmit(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, pensionPermissions)
	if !ok {
		return
	}
	var req pension.ResubmitPensionRequest
	if !decodeJSON(w, r, &req, "ResubmitPension") {
		return
	}
	req.ID = chi.URLParam(r, "id")

	pensionRequest, err := h.pensionService.Resubmit(r.Context(), a, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pension request resubmitted", pensionRequest)
}

func (h *pensionHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, pensionPermissions)
	if !ok {
		return
	}
	var req approval.CancelRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req, "CancelPension") {
		return
	}

	pensionRequest, err := h.pensionService.Cancel(r.Context(), a, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pension request cancelled", pensionRequest)
}

func (h *pensionHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, pensionPermissions)
	if !ok {
		return
	}

	pensionRequest, err := h.pensionService.Complete(r.Context(), a, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pension request marked as completed", pensionRequest)
}
