package http

import (
	"net/http"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/handler/http/response"
)

type StatusHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Classify(w http.ResponseWriter, r *http.Request)
}

type statusHandlerImpl struct{}

func NewStatusHandler() StatusHandler {
	return statusHandlerImpl{}
}

// List returns every workflow status with its badge.
func (statusHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, approval.StatusList())
}

// Classify maps any status string, including legacy aliases, to a badge.
// Unknown values get the neutral badge rather than an error.
func (statusHandlerImpl) Classify(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	response.Success(w, approval.StatusResponse{
		Status: status,
		Badge:  approval.Classify(status),
	})
}
