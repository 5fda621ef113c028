package http

import (
	"net/http"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/dashboard"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/middleware"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns request counts, scoped to the caller unless they may see every employee
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	authz            middleware.Authorizer
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, authz middleware.Authorizer) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, authz: authz}
}

// GetDashboard handles GET /dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var employeeID *string
	if !h.authz.Can(id.Role, user.PermissionEmployeeViewAll) {
		if id.EmployeeID == nil {
			response.Forbidden(w, errNoEmployee.Error())
			return
		}
		employeeID = id.EmployeeID
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
