package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/lft-board/internal/domain/listing"
	"github.com/riskibarqy/lft-board/internal/domain/playstyle"
	"github.com/riskibarqy/lft-board/internal/domain/resultnotice"
	"github.com/riskibarqy/lft-board/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "lft-board"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	var rateErr *usecase.RateLimitError
	if errors.As(err, &rateErr) {
		w.Header().Set("Retry-After", retryAfterSeconds(rateErr.RetryAfter))
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: err.Error(),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: err.Error(),
				},
			},
		},
	})
}

// retryAfterSeconds rounds up so clients never retry before the window
// resets.
func retryAfterSeconds(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return strconv.Itoa(max(secs, 1))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "internalError",
					Message: msg,
				},
			},
		},
	})
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var (
	invalidArgument = mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	alreadyExists   = mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ALREADY_EXISTS"}
	internalError   = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
)

// errorRules is checked in order; the first rule with a matching target wins.
// Usecase sentinels come first so a wrapped domain error keeps the status
// its usecase chose.
var errorRules = []struct {
	targets []error
	mapped  mappedError
}{
	{[]error{usecase.ErrInvalidInput}, invalidArgument},
	{[]error{usecase.ErrNotFound}, mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}},
	{[]error{usecase.ErrUnauthorized}, mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}},
	{[]error{usecase.ErrForbidden}, mappedError{HTTPStatus: http.StatusForbidden, Reason: "forbidden", Status: "PERMISSION_DENIED"}},
	{[]error{usecase.ErrConflict}, alreadyExists},
	{[]error{usecase.ErrRateLimited}, mappedError{HTTPStatus: http.StatusTooManyRequests, Reason: "rateLimitExceeded", Status: "RESOURCE_EXHAUSTED"}},
	{[]error{usecase.ErrDependencyUnavailable}, mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}},
	{[]error{
		listing.ErrTitleRequired,
		listing.ErrTitleTooLong,
		listing.ErrInvalidRecruitCount,
		listing.ErrPlayStyleCount,
		listing.ErrDuplicatePlayStyle,
		listing.ErrOtherTextTooLong,
		playstyle.ErrNameRequired,
		playstyle.ErrNameTooLong,
		resultnotice.ErrAccountNameRequired,
		resultnotice.ErrMessageRequired,
	}, invalidArgument},
	{[]error{listing.ErrOwnerHasOpenListing, playstyle.ErrDuplicateName}, alreadyExists},
}

func mapError(err error) mappedError {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.mapped
			}
		}
	}
	return internalError
}
