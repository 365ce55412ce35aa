// Package handler adapts webhook calls from the NLU layer onto the
// fulfillment service, for both the Lambda runtime and plain net/http.
package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fund-agent/internal/usecase"
)

const (
	correlationHeader = "X-Correlation-Id"
	greeting          = "Hello from ABC Mutual Fund Bot!"
	maxBodyBytes      = 1 << 20
)

var newUUID = func() string { return uuid.NewString() }

type Fulfiller interface {
	Fulfill(ctx context.Context, in usecase.FulfillInput) (usecase.FulfillOutput, error)
}

type Handler struct {
	uc     Fulfiller
	logger *zap.Logger
}

func NewHandler(uc Fulfiller, logger *zap.Logger) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: fulfiller must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{uc: uc, logger: logger}, nil
}

// Handle routes an API Gateway proxy event. GET / answers the greeting and
// POST /webhook fulfills one Dialogflow turn.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := headerValue(req.Headers, correlationHeader)
	if corrID == "" {
		corrID = newUUID()
	}
	log := h.logger.With(zap.String("correlation_id", corrID))

	path := strings.TrimSuffix(req.Path, "/")
	switch path {
	case "":
		if req.HTTPMethod != http.MethodGet {
			return errorJSON(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", corrID), nil
		}
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers: map[string]string{
				"Content-Type":    "text/plain; charset=utf-8",
				correlationHeader: corrID,
			},
			Body: greeting,
		}, nil
	case "/webhook":
		if req.HTTPMethod != http.MethodPost {
			return errorJSON(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", corrID), nil
		}
		return h.webhook(ctx, req, corrID, log), nil
	default:
		return errorJSON(http.StatusNotFound, "NOT_FOUND", corrID), nil
	}
}

func (h *Handler) webhook(ctx context.Context, req events.APIGatewayProxyRequest, corrID string, log *zap.Logger) events.APIGatewayProxyResponse {
	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			log.Warn("webhook body is not valid base64", zap.Error(err))
			return errorJSON(http.StatusBadRequest, string(usecase.ErrorInvalidInput), corrID)
		}
		body = decoded
	}

	var in webhookRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		log.Warn("webhook body is not valid JSON", zap.Error(err))
		return errorJSON(http.StatusBadRequest, string(usecase.ErrorInvalidInput), corrID)
	}

	out, err := h.uc.Fulfill(ctx, usecase.FulfillInput{
		ConversationID: conversationID(in.Session),
		Intent:         in.QueryResult.Intent.DisplayName,
		Parameters:     in.QueryResult.Parameters,
		Contexts:       toDomainContexts(in.QueryResult.OutputContexts),
	})
	if err != nil {
		status, code := mapError(err)
		fields := []zap.Field{
			zap.String("intent_name", in.QueryResult.Intent.DisplayName),
			zap.Int("status", status),
			zap.Error(err),
		}
		if status >= http.StatusInternalServerError {
			log.Error("fulfillment failed", fields...)
		} else {
			log.Warn("fulfillment rejected", fields...)
		}
		return errorJSON(status, code, corrID)
	}

	log.Debug("webhook fulfilled",
		zap.String("session", in.Session),
		zap.Stringer("intent", out.Intent),
	)
	return writeJSON(http.StatusOK, newWebhookResponse(strings.TrimSpace(in.Session), out.Responses, out.Contexts), corrID)
}

// ServeHTTP lets the same handler run behind net/http for local use.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		resp := errorJSON(http.StatusRequestEntityTooLarge, string(usecase.ErrorInvalidInput), newUUID())
		writeResponse(w, resp)
		return
	}

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}
	query := make(map[string]string, len(r.URL.Query()))
	for k := range r.URL.Query() {
		query[k] = r.URL.Query().Get(k)
	}

	resp, err := h.Handle(r.Context(), events.APIGatewayProxyRequest{
		HTTPMethod:            r.Method,
		Path:                  r.URL.Path,
		Headers:               headers,
		QueryStringParameters: query,
		Body:                  string(body),
	})
	if err != nil {
		resp = errorJSON(http.StatusInternalServerError, string(usecase.ErrorInternal), headerValue(headers, correlationHeader))
	}
	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}

func mapError(err error) (int, string) {
	var uerr *usecase.Error
	if !errors.As(err, &uerr) {
		return http.StatusInternalServerError, string(usecase.ErrorInternal)
	}
	switch uerr.Code {
	case usecase.ErrorInvalidInput, usecase.ErrorUnknownIntent:
		return http.StatusBadRequest, string(uerr.Code)
	case usecase.ErrorUnknownResumeTarget:
		return http.StatusInternalServerError, string(uerr.Code)
	default:
		return http.StatusInternalServerError, string(usecase.ErrorInternal)
	}
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func errorJSON(status int, code, corrID string) events.APIGatewayProxyResponse {
	return writeJSON(status, errorResponse{Error: code}, corrID)
}

func writeJSON(status int, v any, corrID string) events.APIGatewayProxyResponse {
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: corrID,
		},
		Body: string(b),
	}
}
