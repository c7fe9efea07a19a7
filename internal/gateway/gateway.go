// Package gateway talks to the Razorpay payment gateway: it creates remote
// orders and verifies the signed payment callbacks.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"time"

	"travel-booking/pkg/utils"

	razorpay "github.com/razorpay/razorpay-go"
	rzperrors "github.com/razorpay/razorpay-go/errors"
	rzputils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
)

var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected the request")
	ErrSignatureInvalid   = errors.New("payment signature invalid")
)

// Order is a payment intent created on the gateway.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// orderAPI is the order resource of the SDK client.
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type Client struct {
	keyID     string
	keySecret string
	orders    orderAPI
	timeout   time.Duration
	log       *zap.Logger
}

func NewClient(config utils.GatewayConfig, log *zap.Logger) *Client {
	timeout := config.Timeout
	if timeout < time.Second {
		timeout = 10 * time.Second
	}

	rzp := razorpay.NewClient(config.KeyID, config.KeySecret)
	rzp.Request.SetTimeout(int16(timeout / time.Second))

	return newClient(config.KeyID, config.KeySecret, rzp.Order, timeout, log)
}

func newClient(keyID, keySecret string, orders orderAPI, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		orders:    orders,
		timeout:   timeout,
		log:       log.With(zap.String("component", "gateway")),
	}
}

// KeyID is the public key handed to the checkout client.
func (c *Client) KeyID() string {
	return c.keyID
}

type orderResult struct {
	body map[string]interface{}
	err  error
}

// CreateOrder registers amount (in the smallest currency unit) with the
// gateway. The call is bounded by the configured timeout and by ctx.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("create order %s: amount must be positive, got %d: %w", receipt, amount, ErrGatewayRejected)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan orderResult, 1)
	go func() {
		body, err := c.orders.Create(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}, nil)
		done <- orderResult{body: body, err: err}
	}()

	var res orderResult
	select {
	case <-ctx.Done():
		c.log.Error("Gateway request timed out", zap.Error(ctx.Err()), zap.String("receipt", receipt))
		return nil, fmt.Errorf("create order %s: %v: %w", receipt, ctx.Err(), ErrGatewayUnavailable)
	case res = <-done:
	}

	if res.err != nil {
		cause := classify(res.err)
		if errors.Is(cause, ErrGatewayRejected) {
			c.log.Warn("Gateway rejected order", zap.Error(res.err), zap.String("receipt", receipt))
		} else {
			c.log.Error("Gateway request failed", zap.Error(res.err), zap.String("receipt", receipt))
		}
		return nil, fmt.Errorf("create order %s: %v: %w", receipt, res.err, cause)
	}

	order := orderFromBody(res.body)
	if order.ID == "" {
		c.log.Error("Malformed gateway response", zap.Any("body", res.body), zap.String("receipt", receipt))
		return nil, fmt.Errorf("decode order response %s: %w", receipt, ErrGatewayUnavailable)
	}

	c.log.Info("Gateway order created",
		zap.String("order_id", order.ID),
		zap.String("receipt", receipt),
		zap.Int64("amount", order.Amount),
	)
	return order, nil
}

// classify maps SDK errors: transport failures and gateway side errors are
// worth retrying, anything else is a rejected request.
func classify(err error) error {
	var netErr net.Error
	var serverErr *rzperrors.ServerError
	var gatewayErr *rzperrors.GatewayError

	switch {
	case errors.As(err, &netErr), errors.As(err, &serverErr), errors.As(err, &gatewayErr):
		return ErrGatewayUnavailable
	default:
		return ErrGatewayRejected
	}
}

func orderFromBody(body map[string]interface{}) *Order {
	order := &Order{}
	order.ID, _ = body["id"].(string)
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)

	switch v := body["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	case int:
		order.Amount = int64(v)
	}
	return order
}

// VerifySignature checks the callback signature for orderID and paymentID.
func (c *Client) VerifySignature(orderID, paymentID, signature string) error {
	attrs := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	if signature == "" || !rzputils.VerifyPaymentSignature(attrs, signature, c.keySecret) {
		return ErrSignatureInvalid
	}
	return nil
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" under secret, the
// signature the gateway attaches to a successful payment.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
