// Package stripe is a thin client for the pieces of the Stripe REST API
// RentFlow uses: customers and payment intents. Webhook verification is
// intentionally out of scope.
package stripe

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type PaymentIntent struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
	Customer     string `json:"customer"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/x-www-form-urlencoded")
	return &Client{http: http, logger: logger}
}

func (c *Client) CreateCustomer(email, name string) (*Customer, error) {
	var out Customer
	var apiErr apiError
	resp, err := c.http.R().
		SetFormData(map[string]string{
			"email": email,
			"name":  name,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/customers")
	if err != nil {
		return nil, fmt.Errorf("stripe create customer: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stripe create customer: %s (%s)", apiErr.Error.Message, resp.Status())
	}
	c.logger.Info("stripe customer created", zap.String("customer_id", out.ID))
	return &out, nil
}

func (c *Client) CreatePaymentIntent(amountCents int64, currency, customerID string) (*PaymentIntent, error) {
	form := map[string]string{
		"amount":   strconv.FormatInt(amountCents, 10),
		"currency": currency,
	}
	if customerID != "" {
		form["customer"] = customerID
	}

	var out PaymentIntent
	var apiErr apiError
	resp, err := c.http.R().
		SetFormData(form).
		SetResult(&out).
		SetError(&apiErr).
		Post("/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stripe create payment intent: %s (%s)", apiErr.Error.Message, resp.Status())
	}
	c.logger.Info("stripe payment intent created",
		zap.String("payment_intent_id", out.ID),
		zap.Int64("amount_cents", out.Amount),
	)
	return &out, nil
}
