package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rupsadmin/storefront-admin-go/internal/domain"
)

// FunctionInvoker calls a named edge function with the caller's own bearer
// token. Implements port.StatusNotifier. There is deliberately no retry here:
// the function performs side effects (customer notifications) that must not be
// duplicated.
type FunctionInvoker struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
	function   string
	logger     *zap.Logger
}

// NewFunctionInvoker creates an invoker bound to one edge function.
func NewFunctionInvoker(httpClient *http.Client, baseURL, anonKey, function string, logger *zap.Logger) *FunctionInvoker {
	return &FunctionInvoker{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		function:   function,
		logger:     logger,
	}
}

// NotifyStatusChange posts the status-change payload to the edge function.
// A non-2xx response surfaces the response body text as the error detail.
func (f *FunctionInvoker) NotifyStatusChange(ctx context.Context, accessToken string, sc *domain.StatusChangeRequest) error {
	ctx, span := tracer.Start(ctx, "Supabase.NotifyStatusChange")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", sc.OrderID),
		attribute.String("status", sc.Status),
	)

	jsonBody, err := json.Marshal(sc)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/functions/v1/%s", f.baseURL, f.function)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", f.anonKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error("supabase: function invoke failed",
			zap.String("function", f.function),
			zap.String("order_id", sc.OrderID),
			zap.Error(err),
		)
		return &domain.ErrExternalService{Service: "supabase/functions", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("supabase: function non-2xx",
			zap.String("function", f.function),
			zap.String("order_id", sc.OrderID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		detail := strings.TrimSpace(string(body))
		if detail == "" {
			detail = fmt.Sprintf("function returned %d", resp.StatusCode)
		}
		return &domain.ErrExternalService{
			Service: "supabase/functions",
			Err:     fmt.Errorf("%s", detail),
		}
	}

	f.logger.Info("supabase: status change notified",
		zap.String("function", f.function),
		zap.String("order_id", sc.OrderID),
		zap.String("status", sc.Status),
	)
	return nil
}
