package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrNotFound, "student not found"))
	appErr := FromError(wrapped)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "student not found", appErr.Message)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(stderrors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, "boom", appErr.Detail())
}

func TestIsMatchesByCode(t *testing.T) {
	err := WrapAs(ErrDataUnavailable, stderrors.New("connection refused"), "failed to count teachers")
	assert.True(t, stderrors.Is(err, ErrDataUnavailable))
	assert.False(t, stderrors.Is(err, ErrTimeout))
	assert.Equal(t, "failed to count teachers: connection refused", err.Error())
}

func TestFromErrorNil(t *testing.T) {
	assert.Nil(t, FromError(nil))
}
