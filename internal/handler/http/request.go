package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/middleware"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
)

const maxUploadSize = 10 << 20

var errNoEmployee = errors.New("account is not linked to an employee")

// kindPermissions are the permissions that widen what an actor may do on one request kind.
type kindPermissions struct {
	viewAll   user.Permission
	cancelAny user.Permission
}

// actor builds the approval actor for the caller. It writes 401 and returns
// false when the request carries no identity.
func actor(w http.ResponseWriter, r *http.Request, authz middleware.Authorizer, perms kindPermissions) (approval.Actor, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return approval.Actor{}, false
	}
	return approval.Actor{
		UserID:     id.UserID,
		EmployeeID: id.EmployeeID,
		Name:       id.Name,
		Role:       id.Role,
		ViewAll:    authz.Can(id.Role, perms.viewAll),
		CancelAny:  perms.cancelAny != "" && authz.Can(id.Role, perms.cancelAny),
	}, true
}

// scopeEmployee picks the employee a list or submission is about. Callers
// with the wider permission may name any employee; everyone else is pinned to
// their own record.
func scopeEmployee(w http.ResponseWriter, a approval.Actor, wide bool, requested string) (*string, bool) {
	if wide {
		if requested == "" {
			return nil, true
		}
		return &requested, true
	}
	if a.EmployeeID == nil {
		response.Forbidden(w, errNoEmployee.Error())
		return nil, false
	}
	return a.EmployeeID, true
}

// queryPtr returns the trimmed query value, or nil when it is absent.
func queryPtr(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func pageParams(r *http.Request) pagination.Params {
	return pagination.FromQuery(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// decodeSubmission reads a request body that is either plain JSON or a
// multipart form with the JSON in the "data" field and an optional
// "attachment" file. The caller closes the returned file.
func decodeSubmission(w http.ResponseWriter, r *http.Request, dst any, op string) (multipart.File, *multipart.FileHeader, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return nil, nil, decodeJSON(w, r, dst, op)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "op", op, "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, nil, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return nil, nil, false
	}
	if err := json.Unmarshal([]byte(dataJSON), dst); err != nil {
		slog.Error("Failed to unmarshal JSON data", "op", op, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return nil, nil, false
	}

	file, fileHeader, err := r.FormFile("attachment")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, true
		}
		slog.Error("Failed to get file from form", "op", op, "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, nil, false
	}
	return file, fileHeader, true
}
