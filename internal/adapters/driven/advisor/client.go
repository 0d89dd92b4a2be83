// Package advisor provides the HTTP client for the FundWise analysis service.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
	"github.com/fundwise/fundwise-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.AdvisorClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL       = domain.DefaultAdvisorURL
	DefaultRatePerSecond = domain.DefaultRatePerSecond
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// Config holds configuration for the advisor client.
type Config struct {
	// BaseURL is the service root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request. Zero means no timeout; the caller's
	// context is the only limit.
	Timeout time.Duration

	// RatePerSecond throttles outbound requests (default: 2).
	RatePerSecond float64

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client calls the analysis service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a new advisor client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRatePerSecond
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Analyse runs the full profile analysis.
func (c *Client) Analyse(ctx context.Context, in domain.ProfileInput) (*domain.AnalysisResult, error) {
	body, err := c.postJSON(ctx, domain.OpAnalyse, "/analyse", in)
	if err != nil {
		return nil, err
	}

	var result domain.AnalysisResult
	if err := decodeTolerant(domain.OpAnalyse, body, &result); err != nil {
		return nil, decodeError(domain.OpAnalyse, err)
	}
	result.Raw = body
	return &result, nil
}

// RepaymentPlan requests an EMI schedule.
func (c *Client) RepaymentPlan(ctx context.Context, in domain.ProfileInput) (*domain.RepaymentPlan, error) {
	body, err := c.postJSON(ctx, domain.OpRepaymentPlan, "/repayment-plan", in)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		RepaymentPlan json.RawMessage `json:"repayment_plan"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, decodeError(domain.OpRepaymentPlan, err)
	}
	if len(envelope.RepaymentPlan) == 0 {
		return nil, decodeError(domain.OpRepaymentPlan, errors.New("missing repayment_plan"))
	}

	var plan domain.RepaymentPlan
	if err := decodeTolerant(domain.OpRepaymentPlan, envelope.RepaymentPlan, &plan); err != nil {
		return nil, decodeError(domain.OpRepaymentPlan, err)
	}
	plan.Raw = envelope.RepaymentPlan
	return &plan, nil
}

// AssessLoan requests a loan suitability verdict.
func (c *Client) AssessLoan(ctx context.Context, in domain.ProfileInput) (*domain.LoanAssessment, error) {
	body, err := c.postJSON(ctx, domain.OpAssessLoan, "/assess-loan", in)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		LoanAssessment *domain.LoanAssessment `json:"loan_assessment"`
	}
	if err := decodeTolerant(domain.OpAssessLoan, body, &envelope); err != nil {
		return nil, decodeError(domain.OpAssessLoan, err)
	}
	if envelope.LoanAssessment == nil {
		return nil, decodeError(domain.OpAssessLoan, errors.New("missing loan_assessment"))
	}
	return envelope.LoanAssessment, nil
}

// Schemes fetches the scheme catalog.
func (c *Client) Schemes(ctx context.Context) ([]domain.Scheme, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schemes", nil)
	if err != nil {
		return nil, requestError(domain.OpSchemes, err)
	}

	body, err := c.do(domain.OpSchemes, req)
	if err != nil {
		return nil, err
	}

	var schemes []domain.Scheme
	if err := json.Unmarshal(body, &schemes); err != nil {
		return nil, decodeError(domain.OpSchemes, err)
	}
	return schemes, nil
}

// AnalyseDocument uploads one file as multipart form field "file".
func (c *Client) AnalyseDocument(
	ctx context.Context,
	name, mimeType string,
	content []byte,
) (*domain.DocumentAnalysis, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, requestError(domain.OpAnalyseDocument, err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, requestError(domain.OpAnalyseDocument, err)
	}
	if err := w.Close(); err != nil {
		return nil, requestError(domain.OpAnalyseDocument, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyse-document", &buf)
	if err != nil {
		return nil, requestError(domain.OpAnalyseDocument, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	body, err := c.do(domain.OpAnalyseDocument, req)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Analysis json.RawMessage `json:"analysis"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, decodeError(domain.OpAnalyseDocument, err)
	}
	if len(envelope.Analysis) == 0 {
		return nil, decodeError(domain.OpAnalyseDocument, errors.New("missing analysis"))
	}

	var analysis domain.DocumentAnalysis
	if err := decodeTolerant(domain.OpAnalyseDocument, envelope.Analysis, &analysis); err != nil {
		return nil, decodeError(domain.OpAnalyseDocument, err)
	}
	analysis.RiskLevel = domain.RiskLevel(strings.ToLower(string(analysis.RiskLevel)))
	analysis.Raw = envelope.Analysis
	return &analysis, nil
}

func (c *Client) postJSON(ctx context.Context, op domain.Operation, path string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, requestError(op, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, requestError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(op, req)
}

// do sends req after waiting for the limiter and returns the body of a
// 2xx response. Everything else becomes a *domain.RemoteError.
func (c *Client) do(op domain.Operation, req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, &domain.RemoteError{Op: op, Detail: "request cancelled", Err: err}
	}

	logger.Debug("advisor: %s %s", req.Method, req.URL.Path)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Detail: genericDetail(op), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.RemoteError{Op: op, StatusCode: resp.StatusCode, Detail: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := parseDetail(body)
		if detail == "" {
			detail = genericDetail(op)
		}
		return nil, &domain.RemoteError{Op: op, StatusCode: resp.StatusCode, Detail: detail}
	}

	return body, nil
}

// parseDetail extracts the FastAPI-style "detail" field, which is either
// a string or a list of validation errors with "msg" fields.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg == "" {
				continue
			}
			if field := lastLoc(item.Loc); field != "" {
				msgs = append(msgs, field+": "+item.Msg)
			} else {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

func lastLoc(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if s, ok := loc[len(loc)-1].(string); ok {
		return s
	}
	return ""
}

func genericDetail(op domain.Operation) string {
	switch op {
	case domain.OpAnalyse:
		return "analysis failed, check that the advisor service is running"
	case domain.OpAnalyseDocument:
		return "document analysis failed"
	case domain.OpSchemes:
		return "could not load the scheme catalog"
	default:
		return "advisor request failed"
	}
}

func requestError(op domain.Operation, err error) error {
	return &domain.RemoteError{Op: op, Detail: "could not build request", Err: err}
}

// decodeTolerant decodes a success body into v. The service relays model
// output, so a field whose JSON type does not match is left at its zero
// value and the rest of the body is still decoded. Malformed JSON and a
// body that is not an object still fail.
func decodeTolerant(op domain.Operation, data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return decodeError(op, err)
	}
	logger.Warn("advisor: %s: ignoring field %s: %v", op, typeErr.Field, err)
	return nil
}

func decodeError(op domain.Operation, err error) error {
	return &domain.RemoteError{Op: op, Detail: "unexpected response from advisor", Err: fmt.Errorf("decode response: %w", err)}
}
