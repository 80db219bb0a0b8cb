package api

import (
	"errors"
	"fmt"
	"net/http"
	"owprofile-backend/internal/client"
	"owprofile-backend/internal/components/fetch"
	"owprofile-backend/pkg/owtypes"

	"github.com/go-playground/validator/v10"
)

// InputError is a request the api refused to forward upstream.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

type notFoundError struct {
	what string
	name string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.what, e.name)
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestId string `json:"requestId,omitempty"`
}

// statusOf maps an error to the status the api answers with. Upstream status
// codes pass through, anything unrecognized is a 500.
func statusOf(err error) int {
	var input *InputError
	var invalidBtag *owtypes.InvalidBattletagError
	var validation validator.ValidationErrors
	var httpErr *fetch.HttpError
	var notFound *notFoundError

	switch {
	case errors.As(err, &input),
		errors.As(err, &invalidBtag),
		errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrPlayerNotFound),
		errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &httpErr):
		if httpErr.StatusCode < 400 || httpErr.StatusCode > 599 {
			return http.StatusBadGateway
		}
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}
