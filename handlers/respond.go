package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"users-tasks-service/apperr"

	"github.com/google/uuid"
	"github.com/umakantv/go-utils/httpserver"
	"go.uber.org/zap"
)

// unexpectedErrorMessage is sent when a handler panics with a non-error value.
const unexpectedErrorMessage = "Erro inesperado"

var allowedMethods = []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"}

// Response is a successful handler result. A string Body is written as
// plain text, anything else as JSON.
type Response struct {
	Status int
	Body   any
}

func Text(status int, msg string) Response {
	return Response{Status: status, Body: msg}
}

func JSON(status int, body any) Response {
	return Response{Status: status, Body: body}
}

// Func is a request handler. Failures are returned as errors and translated
// to a status by Serve.
type Func func(ctx context.Context, r *http.Request) (Response, error)

// Serve adapts fn to the http server: it tags the request with an id, sets
// CORS headers and writes either the response or the error.
func Serve(fn Func) httpserver.HandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ctx = withRequestID(ctx, requestID)

		w.Header().Set("X-Request-ID", requestID)
		setCORSHeaders(w)

		resp, err := invoke(ctx, fn, r)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeResponse(ctx, w, resp)
	}
}

// Preflight answers CORS preflight requests on any path.
func Preflight() httpserver.HandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(allowedMethods, ","))
		if h := r.Header.Get("Access-Control-Request-Headers"); h != "" {
			w.Header().Set("Access-Control-Allow-Headers", h)
			w.Header().Add("Vary", "Access-Control-Request-Headers")
		}
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusNoContent)
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func invoke(ctx context.Context, fn Func, r *http.Request) (resp Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = &apperr.Error{Kind: apperr.KindUnknown, Message: e.Error(), Err: e}
				return
			}
			err = apperr.Internal(unexpectedErrorMessage)
		}
	}()
	return fn(ctx, r)
}

func writeResponse(ctx context.Context, w http.ResponseWriter, resp Response) {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	if msg, ok := resp.Body.(string); ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(msg))
		return
	}

	body, err := json.Marshal(resp.Body)
	if err != nil {
		logRequest(ctx, "error", "Failed to encode response", zap.Error(err))
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	e := apperr.From(err)
	status := e.Kind.Status()

	if status >= http.StatusInternalServerError {
		logRequest(ctx, "error", "Request failed", zap.String("kind", e.Kind.String()), zap.Error(err))
	} else {
		logRequest(ctx, "info", "Request rejected", zap.String("kind", e.Kind.String()), zap.String("reason", e.Message))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(e.Message))
}
