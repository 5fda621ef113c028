package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/report"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/middleware"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
)

type StudyPermitHandler interface {
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

var studyPermitPermissions = kindPermissions{
	viewAll:   user.PermissionStudyPermitViewAll,
	cancelAny: user.PermissionStudyPermitComplete,
}

type studyPermitHandlerImpl struct {
	studyPermitService studypermit.StudyPermitService
	reportService      report.ReportService
	authz              middleware.Authorizer
}

func NewStudyPermitHandler(studyPermitService studypermit.StudyPermitService, reportService report.ReportService, authz middleware.Authorizer) StudyPermitHandler {
	return &studyPermitHandlerImpl{
		studyPermitService: studyPermitService,
		reportService:      reportService,
		authz:              authz,
	}
}

func (h *studyPermitHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, studyPermitPermissions)
	if !ok {
		return
	}

	var req studypermit.CreateStudyPermitRequest
	file, fileHeader, ok := decodeSubmission(w, r, &req, "CreateStudyPermit")
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

	permit, err := h.studyPermitService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateStudyPermit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Study permit request created successfully", permit)
}

func (h *studyPermitHandlerImpl) filter(w http.ResponseWriter, r *http.Request) (studypermit.StudyPermitFilter, bool) {
	a, ok := actor(w, r, h.authz, studyPermitPermissions)
	if !ok {
		return studypermit.StudyPermitFilter{}, false
	}
	requested := ""
	if v := queryPtr(r, "employee_id"); v != nil {
		requested = *v
	}
	employeeID, ok := scopeEmployee(w, a, a.ViewAll, requested)
	if !ok {
		return studypermit.StudyPermitFilter{}, false
	}

	return studypermit.StudyPermitFilter{
		EmployeeID: employeeID,
		Status:     queryPtr(r, "status"),
		Degree:     queryPtr(r, "degree"),
		StartDate:  queryPtr(r, "start_date"),
		EndDate:    queryPtr(r, "end_date"),
		Params:     pageParams(r),
	}, true
}

func (h *studyPermitHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	permits, err := h.studyPermitService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, permits)
}

func (h *studyPermitHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter, ok := h.filter(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.StudyPermits(r.Context(), filter, format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}

func (h *studyPermitHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, studyPermitPermissions)
	if !ok {
		return
	}

	permit, err := h.studyPermitService.Get(r.Context(), a, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, permit)
}

func (h *studyPermitHandlerImpl) ExportOne(w http.ResponseWriter, r *http.Request) {
	format, err := document.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	a, ok := actor(w, r, h.authz, studyPermitPermissions)
	if !ok {
		return
	}

	file, err := h.reportService.StudyPermit(r.Context(), a, chi.URLParam(r, "id"), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}

func (h *studyPermitHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, studyPermitPermissions)
	if !ok {
		return
	}
	var req approval.DecisionRequest
	if !decodeJSON(w, r, &req, "DecideStudyPermit") {
		return
	}

	permit, err := h.studyPermitService.Decide(r.Context(), a, chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("DecideStudyPermit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", permit)
}

func (h *studyPermitHandlerImpl) Resubmit(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, studyPermitPermissions)
	if !ok {
		return
	}
	var req studypermit.ResubmitStudyPermitRequest
	if !decodeJSON(w, r, &req, "ResubmitStudyPermit") {
		return
	}
	req.ID = chi.URLParam(r, "id")

	permit, err := h.studyPermitService.Resubmit(r.Context(), a, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Study permit request resubmitted", permit)
}

func (h *studyPermitHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, studyPermitPermissions)
	if !ok {
		return
	}
	var req approval.CancelRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req, "CancelStudyPermit") {
		return
	}

	permit, err := h.studyPermitService.Cancel(r.Context(), a, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Study permit request cancelled", permit)
}

func (h *studyPermitHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r, h.authz, studyPermitPermissions)
	if !ok {
		return
	}

	permit, err := h.studyPermitService.Complete(r.Context(), a, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Study permit marked as completed", permit)
}
