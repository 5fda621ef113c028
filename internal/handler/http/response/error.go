package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/auth"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/employee"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/notification"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/pension"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/salary"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/studypermit"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/document"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/storage"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
	"github.com/simpeg-id/simpeg-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrInvalidOAuthState):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive),
		errors.Is(err, user.ErrUserInactive),
		errors.Is(err, auth.ErrGoogleAccountLinked):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrGoogleNotConfigured):
		NotFound(w, err.Error())

	// User domain errors
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, user.ErrUsernameExists),
		errors.Is(err, user.ErrEmployeeAlreadyLinked):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrCannotDeleteSelf), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNIPExists):
		Conflict(w, "NIP already registered")
	case errors.Is(err, employee.ErrInvalidNIP):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrEmployeeRetired):
		Conflict(w, err.Error())

	// Request not found
	case errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, leave.ErrLeaveQuotaNotFound),
		errors.Is(err, studypermit.ErrStudyPermitNotFound),
		errors.Is(err, salary.ErrSalaryIncreaseNotFound),
		errors.Is(err, pension.ErrPensionRequestNotFound),
		errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, err.Error())

	// Ownership and approver checks
	case errors.Is(err, leave.ErrNotOwner),
		errors.Is(err, studypermit.ErrNotOwner),
		errors.Is(err, salary.ErrNotOwner),
		errors.Is(err, pension.ErrNotOwner),
		errors.Is(err, approval.ErrNotCurrentApprover),
		errors.Is(err, approval.ErrCancelNotAllowed):
		Forbidden(w, err.Error())

	// Workflow state conflicts
	case errors.Is(err, approval.ErrInvalidTransition),
		errors.Is(err, approval.ErrNoPendingStep),
		errors.Is(err, leave.ErrLeaveQuotaExists),
		errors.Is(err, salary.ErrPendingIncreaseExists),
		errors.Is(err, pension.ErrActivePensionExists):
		Conflict(w, err.Error())

	// Business rule violations on otherwise valid input
	case errors.Is(err, leave.ErrInvalidDateRange), errors.Is(err, studypermit.ErrInvalidDateRange):
		ValidationError(w, map[string]string{"end_date": err.Error()})
	case errors.Is(err, leave.ErrInsufficientQuota),
		errors.Is(err, leave.ErrUnknownLeaveType),
		errors.Is(err, approval.ErrNoteRequired),
		errors.Is(err, approval.ErrInvalidDecision),
		errors.Is(err, leave.ErrInvalidAttachment),
		errors.Is(err, studypermit.ErrInvalidAttachment),
		errors.Is(err, pension.ErrInvalidAttachment),
		errors.Is(err, file.ErrInvalidFileType),
		errors.Is(err, storage.ErrTooLarge),
		errors.Is(err, document.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
