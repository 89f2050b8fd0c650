package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/qs3c/market_admin_server/config"
)

var (
	ErrNotConfigured = errors.New("支付服务未配置")
)

// Client 外部支付函数客户端（HTTPS + Bearer Token），不在本服务内实现任何支付逻辑
type Client struct {
	functionURL string
	bearerToken string
	successURL  string
	cancelURL   string
	httpClient  *http.Client
}

// CheckoutRequest 创建结账会话请求
type CheckoutRequest struct {
	PackageID   string  `json:"package_id"`
	PackageType string  `json:"package_type"`
	Amount      float64 `json:"amount"`
	Credits     int     `json:"credits"`
	UserID      *int64  `json:"user_id,omitempty"`
	SuccessURL  string  `json:"success_url"`
	CancelURL   string  `json:"cancel_url"`
}

// CheckoutSession 支付函数返回的会话
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

func NewClient(cfg *config.PaymentConfig) *Client {
	return &Client{
		functionURL: cfg.FunctionURL,
		bearerToken: cfg.BearerToken,
		successURL:  cfg.SuccessURL,
		cancelURL:   cfg.CancelURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCheckoutSession 调用支付函数创建结账会话
func (c *Client) CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if c.functionURL == "" {
		return nil, ErrNotConfigured
	}

	if req.SuccessURL == "" {
		req.SuccessURL = c.successURL
	}
	if req.CancelURL == "" {
		req.CancelURL = c.cancelURL
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.functionURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call payment function: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment function returned %d: %s", resp.StatusCode, string(data))
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %w", err)
	}

	return &session, nil
}
