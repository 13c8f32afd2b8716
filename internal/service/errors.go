package service

import (
	appErrors "github.com/noah-isme/school-dashboard-api/pkg/errors"
)

// storeFailure relabels a generic store failure with an operation message.
// Timeouts and not-found errors keep their own wording.
func storeFailure(err error, message string) error {
	appErr := appErrors.FromError(err)
	if appErr.Code == appErrors.ErrDataUnavailable.Code || appErr.Code == appErrors.ErrInternal.Code {
		return appErrors.Clone(appErr, message)
	}
	return appErr
}
