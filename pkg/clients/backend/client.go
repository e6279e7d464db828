package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/mfgconsole/internal/config"
	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

// IdempotencyHeader carries the key that lets the backend collapse repeated writes.
const IdempotencyHeader = "Idempotency-Key"

// Client exposes the manufacturing backend operations used by the console.
type Client interface {
	ListQCParameters(ctx context.Context, materialName string) ([]models.QCParameter, error)
	CreateQualityCheck(ctx context.Context, rec models.QualityCheckRecord, idempotencyKey string) (string, error)
	CreateParameterResult(ctx context.Context, result models.ParameterResult, idempotencyKey string) error
	EditProductionOutput(ctx context.Context, rec models.ProductionOutputRecord, idempotencyKey string) (string, error)
	DeleteQualityCheck(ctx context.Context, qualityCheckID string) (string, error)
	ListQualityChecks(ctx context.Context) ([]models.QualityCheck, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a backend client using the provided configuration values.
func NewClient(cfg config.BackendConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{httpClient: restyClient}
}

// APIError is a non-2xx backend answer. Message is empty when the backend did not
// send one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend api error: status=%d", e.Status)
	}
	return fmt.Sprintf("backend api error: status=%d, message=%s", e.Status, e.Message)
}

// MessageOf returns the human-readable message the backend attached to err, or ""
// when err is not a backend answer or carries no message.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return strings.TrimSpace(apiErr.Message)
	}
	return ""
}

// apiError is the backend error payload.
type apiError struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createQualityCheckResponse struct {
	QCID string `json:"qcId"`
}

func checkResponse(resp *resty.Response, payload *apiError) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode()}
	if payload != nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

func (c *APIClient) ListQCParameters(ctx context.Context, materialName string) ([]models.QCParameter, error) {
	var params []models.QCParameter
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("materialName", materialName).
		SetResult(&params).
		SetError(apiErr).
		Get("/qc-parameters")
	if err != nil {
		return nil, fmt.Errorf("list qc parameters: %w", err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return nil, fmt.Errorf("list qc parameters: %w", err)
	}

	return params, nil
}

func (c *APIClient) CreateQualityCheck(ctx context.Context, rec models.QualityCheckRecord, idempotencyKey string) (string, error) {
	result := new(createQualityCheckResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader(IdempotencyHeader, idempotencyKey).
		SetBody(rec).
		SetResult(result).
		SetError(apiErr).
		Post("/newQualityCheck")
	if err != nil {
		return "", fmt.Errorf("create quality check: %w", err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return "", fmt.Errorf("create quality check: %w", err)
	}
	if result.QCID == "" {
		return "", errors.New("create quality check: response carried no qcId")
	}

	return result.QCID, nil
}

func (c *APIClient) CreateParameterResult(ctx context.Context, result models.ParameterResult, idempotencyKey string) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader(IdempotencyHeader, idempotencyKey).
		SetBody(result).
		SetError(apiErr).
		Post("/newQualityCheckParameterResult")
	if err != nil {
		return fmt.Errorf("create parameter result %s: %w", result.Parameter, err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return fmt.Errorf("create parameter result %s: %w", result.Parameter, err)
	}

	return nil
}

func (c *APIClient) EditProductionOutput(ctx context.Context, rec models.ProductionOutputRecord, idempotencyKey string) (string, error) {
	result := new(messageResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader(IdempotencyHeader, idempotencyKey).
		SetBody(rec).
		SetResult(result).
		SetError(apiErr).
		Put("/editProductionOrderCreationOutput")
	if err != nil {
		return "", fmt.Errorf("edit production output: %w", err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return "", fmt.Errorf("edit production output: %w", err)
	}

	return result.Message, nil
}

func (c *APIClient) DeleteQualityCheck(ctx context.Context, qualityCheckID string) (string, error) {
	result := new(messageResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("qualityCheckId", qualityCheckID).
		SetResult(result).
		SetError(apiErr).
		Delete("/removeQualityCheck")
	if err != nil {
		return "", fmt.Errorf("delete quality check: %w", err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return "", fmt.Errorf("delete quality check: %w", err)
	}

	return result.Message, nil
}

func (c *APIClient) ListQualityChecks(ctx context.Context) ([]models.QualityCheck, error) {
	var checks []models.QualityCheck
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&checks).
		SetError(apiErr).
		Get("/qualityChecks")
	if err != nil {
		return nil, fmt.Errorf("list quality checks: %w", err)
	}
	if err := checkResponse(resp, apiErr); err != nil {
		return nil, fmt.Errorf("list quality checks: %w", err)
	}

	return checks, nil
}
