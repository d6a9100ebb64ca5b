package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/secmon-lab/riskcalc/pkg/utils/safe"
)

// PublicError is implemented by errors whose message may be shown to clients
type PublicError interface {
	error
	PublicMessage() string
}

// internalErrorMessage replaces the message of every 5xx response
const internalErrorMessage = "Internal server error"

// ErrorResponse is the body written for every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handle logs the error with a message and reports it to Sentry.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	report(ctx, err)
}

// HandleHTTP logs the error and writes a JSON error response. Server errors
// are reported to Sentry and their message is hidden from the client.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)
	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
		report(ctx, err)
	}

	attrs := []any{
		"status", statusCode,
		"error", err.Error(),
	}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs = append(attrs, "values", ge.Values())
		if level == slog.LevelError {
			attrs = append(attrs, "stack", ge.Stacks())
		}
	}
	logger.Log(ctx, level, "HTTP error", attrs...)

	WriteJSON(ctx, w, statusCode, ErrorResponse{Error: ClientMessage(err, statusCode)})
}

// ClientMessage returns the message shown to the client for err
func ClientMessage(err error, statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return internalErrorMessage
	}

	var pe PublicError
	if errors.As(err, &pe) {
		return pe.PublicMessage()
	}
	return err.Error()
}

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		Handle(ctx, goerr.Wrap(err, "failed to marshal response"), "failed to write JSON response")
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, data)
}

func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.CaptureException(err)
}
