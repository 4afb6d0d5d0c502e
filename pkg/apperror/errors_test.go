package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAppErrorPassesThroughAppErrors(t *testing.T) {
	appErr := NewNotFoundError("Invoice")
	require.Equal(t, appErr, GetAppError(appErr))

	wrapped := fmt.Errorf("lookup failed: %w", NewConflictError("duplicate"))
	require.Equal(t, http.StatusConflict, GetAppError(wrapped).Code)
}

func TestGetAppErrorHidesUnexpectedDetail(t *testing.T) {
	err := errors.New(`pq: syntax error at or near "SELECT" host=db.internal`)

	appErr := GetAppError(err)
	require.Equal(t, http.StatusInternalServerError, appErr.Code)
	require.Equal(t, ErrInternalServer.Message, appErr.Message)
	require.NotContains(t, appErr.Message, "SELECT")
	require.NotContains(t, appErr.Message, "db.internal")
}
