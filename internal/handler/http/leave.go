package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/report"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/middleware"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
)

type LeaveHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)

	CreateQuota(w http.ResponseWriter, r *http.Request)
	UpdateQuota(w http.ResponseWriter, r *http.Request)
	ListQuota(w http.ResponseWriter, r *http.Request)
	GetMyQuota(w http.ResponseWriter, r *http.Request)

	Preview(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ExportRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ExportRequest(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Resubmit(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

var leavePermissions = kindPermissions{
	viewAll:   user.PermissionLeaveViewAll,
	cancelAny: user.PermissionLeaveCancelAny,
}

type LeaveHandlerImpl struct {
	leaveService  leave.LeaveService
	reportService report.ReportService
	authz         middleware.Authorizer
}

func NewLeaveHandler(leaveService leave.LeaveService, reportService report.ReportService, authz middleware.Authorizer) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService:  leaveService,
		reportService: reportService,
		authz:         authz,
	}
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	response.Success(w, l.leaveService.ListLeaveTypes())
}

// CreateQuota implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateQuota(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveQuotaRequest
	if !decodeJSON(w, r, &req, "CreateQuota") {
		return
	}

	quota, err := l.leaveService.CreateLeaveQuota(r.Context(), req)
	if err != nil {
		slog.Error("CreateQuota service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave quota created successfully", quota)
}

// UpdateQuota implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateQuota(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveQuotaRequest
	if !decodeJSON(w, r, &req, "UpdateQuota") {
		return
	}
	req.ID = chi.URLParam(r, "id")

	quota, err := l.leaveService.UpdateLeaveQuota(r.Context(), req)
	if err != nil {
		slog.Error("UpdateQuota service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave quota updated successfully", quota)
}

// ListQuota implements LeaveHandler.
func (l *LeaveHandlerImpl) ListQuota(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveQuotaFilter{
		EmployeeID: queryPtr(r, "employee_id"),
		Params:     pageParams(r),
	}
	if yearStr := queryPtr(r, "year"); yearStr != nil {
		year, err := strconv.Atoi(*yearStr)
		if err != nil {
			response.ValidationError(w, map[string]string{"year": "year must be a number"})
			return
		}
		filter.Year = &year
	}

	quotas, err := l.leaveService.ListLeaveQuota(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, quotas)
}

// GetMyQuota implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyQuota(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return
	}
	if a.EmployeeID == nil {
		response.Forbidden(w, errNoEmployee.Error())
		return
	}

	year := 0
	if yearStr := queryPtr(r, "year"); yearStr != nil {
		y, err := strconv.Atoi(*yearStr)
		if err != nil {
			response.ValidationError(w, map[string]string{"year": "year must be a number"})
			return
		}
		year = y
	}

	quota, err := l.leaveService.GetMyQuota(r.Context(), *a.EmployeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, quota)
}

// Preview implements LeaveHandler.
func (l *LeaveHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return
	}

	var req leave.PreviewLeaveRequest
	if !decodeJSON(w, r, &req, "Preview") {
		return
	}
	employeeID, ok := scopeEmployee(w, a, l.authz.Can(a.Role, user.PermissionEmployeeManage), req.EmployeeID)
	if !ok {
		return
	}
	if employeeID != nil {
		req.EmployeeID = *employeeID
	}

	preview, err := l.leaveService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, preview)
}

// CreateRequest implements LeaveHandler. Kepegawaian may file on behalf of
// another employee; everyone else files for themselves.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	file, fileHeader, ok := decodeSubmission(w, r, &req, "CreateLeaveRequest")
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	employeeID, ok := scopeEmployee(w, a, l.authz.Can(a.Role, user.PermissionEmployeeManage), req.EmployeeID)
	if !ok {
		return
	}
	if employeeID != nil {
		req.EmployeeID = *employeeID
	}
	req.File = file
	req.FileHeader = fileHeader

	leaveRequest, err := l.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		slog.Error("CreateLeaveRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leaveRequest)
}

func (l *LeaveHandlerImpl) filter(w http.ResponseWriter, r *http.Request) (leave.LeaveRequestFilter, bool) {
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return leave.LeaveRequestFilter{}, false
	}
	requested := ""
	if v := queryPtr(r, "employee_id"); v != nil {
		requested = *v
	}
	employeeID, ok := scopeEmployee(w, a, a.ViewAll, requested)
	if !ok {
		return leave.LeaveRequestFilter{}, false
	}

	return leave.LeaveRequestFilter{
		EmployeeID: employeeID,
		Status:     queryPtr(r, "status"),
		LeaveType:  queryPtr(r, "leave_type"),
		StartDate:  queryPtr(r, "start_date"),
		EndDate:    queryPtr(r, "end_date"),
		Params:     pageParams(r),
	}, true
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter, ok := l.filter(w, r)
	if !ok {
		return
	}

	requests, err := l.leaveService.ListLeaveRequest(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ExportRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ExportRequests(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter, ok := l.filter(w, r)
	if !ok {
		return
	}

	file, err := l.reportService.LeaveRequests(r.Context(), filter, format)
	if err != nil {
		slog.Error("ExportLeaveRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return
	}

	leaveRequest, err := l.leaveService.GetLeaveRequest(r.Context(), a, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveRequest)
}

// ExportRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ExportRequest(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return
	}

	file, err := l.reportService.LeaveRequest(r.Context(), a, chi.URLParam(r, "id"), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}

// Decide implements LeaveHandler.
func (l *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return
	}
	var req approval.DecisionRequest
	if !decodeJSON(w, r, &req, "DecideLeaveRequest") {
		return
	}

	leaveRequest, err := l.leaveService.DecideLeaveRequest(r.Context(), a, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("DecideLeaveRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", leaveRequest)
}

// Resubmit implements LeaveHandler.
func (l *LeaveHandlerImpl) Resubmit(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return
	}
	var req leave.ResubmitLeaveRequestRequest
	if !decodeJSON(w, r, &req, "ResubmitLeaveRequest") {
		return
	}
	req.ID = chi.URLParam(r, "id")

	leaveRequest, err := l.leaveService.ResubmitLeaveRequest(r.Context(), a, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request resubmitted", leaveRequest)
}

// Cancel implements LeaveHandler.
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, l.authz, leavePermissions)
	if !ok {
		return
	}
	var req approval.CancelRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req, "CancelLeaveRequest") {
		return
	}

	leaveRequest, err := l.leaveService.CancelLeaveRequest(r.Context(), a, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", leaveRequest)
}
