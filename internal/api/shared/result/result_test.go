package result

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name   string
		status int
		data   interface{}
		err    error
		want   Result
	}{
		{
			name:   "created",
			status: http.StatusCreated,
			data:   map[string]uint64{"id": 7},
			want:   Result{OK: true, Status: http.StatusCreated, Data: map[string]uint64{"id": 7}},
		},
		{
			name:   "void success",
			status: http.StatusOK,
			want:   Result{OK: true, Status: http.StatusOK},
		},
		{
			name:   "non-2xx success status is normalized",
			status: http.StatusTeapot,
			data:   "x",
			want:   Result{OK: true, Status: http.StatusOK, Data: "x"},
		},
		{
			name: "domain error exposes its code",
			err:  domain.NewDomainError(domain.CodeInsufficientAvailableQuantity, errors.New("30 available")),
			want: Result{OK: false, Status: http.StatusBadRequest, Data: domain.CodeInsufficientAvailableQuantity},
		},
		{
			name: "conflict",
			err:  domain.NewConflictError(domain.CodeAlreadyInUse, nil),
			want: Result{OK: false, Status: http.StatusConflict, Data: domain.CodeAlreadyInUse},
		},
		{
			name: "internal error hides its cause",
			err:  domain.NewInternalError("write ownership index", errors.New("pq: connection refused")),
			want: Result{OK: false, Status: http.StatusInternalServerError},
		},
		{
			name: "unclassified error is internal",
			err:  errors.New("boom"),
			want: Result{OK: false, Status: http.StatusInternalServerError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(tt.status, tt.data, tt.err))
		})
	}
}

func TestResult_JSON(t *testing.T) {
	raw, err := json.Marshal(Failure(domain.NewInternalError("index", errors.New("down"))))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":false,"status":500,"data":null}`, string(raw))

	raw, err = json.Marshal(Success(http.StatusCreated, map[string]uint64{"id": 7}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"status":201,"data":{"id":7}}`, string(raw))
}
