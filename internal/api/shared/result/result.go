package result

import (
	"net/http"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// Result is the envelope every lifecycle operation answers with.
// Successes carry a 2xx status and their data (null for void operations);
// failures carry the error status and either null or a short diagnostic code.
type Result struct {
	OK     bool        `json:"ok"`
	Status int         `json:"status"`
	Data   interface{} `json:"data"`
}

// Success wraps data with a 2xx status
func Success(status int, data interface{}) Result {
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		status = http.StatusOK
	}
	return Result{OK: true, Status: status, Data: data}
}

// Failure maps err onto the envelope. Internal failures never expose their cause.
func Failure(err error) Result {
	e := domain.AsError(err)
	if e == nil {
		return Result{OK: false, Status: http.StatusInternalServerError}
	}

	r := Result{OK: false, Status: e.Status}
	if e.Kind != domain.KindInternal && e.Code != "" {
		r.Data = e.Code
	}
	return r
}

// Of builds the envelope of an operation outcome
func Of(status int, data interface{}, err error) Result {
	if err != nil {
		return Failure(err)
	}
	return Success(status, data)
}
