// Package service holds clients for external collaborators. The only
// one today is the pizza factory, the third-party fulfillment service
// that physically prepares orders. A factory failure is distinct from
// a database failure and is surfaced to the diner as its own error.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pizzastack/pizza-service/internal/model"
)

// ErrFulfillment is returned when the factory rejects an order (any
// non-2xx response).
var ErrFulfillment = errors.New("failed to fulfill order at factory")

// FulfillmentResult is the factory's acknowledgement of an accepted
// order. JWT is the factory-signed proof of purchase, ReportURL a page
// where the diner can follow up on the order.
type FulfillmentResult struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

// Fulfiller forwards a recorded order to the fulfillment service. The
// order handler depends on this interface so tests can substitute a
// fake factory.
type Fulfiller interface {
	Fulfill(ctx context.Context, diner *model.User, order *model.Order) (*FulfillmentResult, error)
}

// FactoryClient is the HTTP implementation of Fulfiller.
type FactoryClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewFactoryClient builds a client for the factory at baseURL,
// authenticating with apiKey.
func NewFactoryClient(baseURL, apiKey string) *FactoryClient {
	return &FactoryClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type factoryOrderReq struct {
	Diner factoryDiner `json:"diner"`
	Order *model.Order `json:"order"`
}

type factoryDiner struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type factoryOrderResp struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

// Fulfill POSTs {diner, order} to the factory's order endpoint. A 2xx
// response yields the factory's JWT and report URL; anything else
// yields ErrFulfillment carrying the factory's report URL when one was
// provided.
func (f *FactoryClient) Fulfill(ctx context.Context, diner *model.User, order *model.Order) (*FulfillmentResult, error) {
	payload := factoryOrderReq{
		Diner: factoryDiner{ID: diner.ID, Name: diner.Name, Email: diner.Email},
		Order: order,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out factoryOrderResp
	// The error path also carries a JSON body with a report URL; decode
	// failures there are ignored because the status already tells the story.
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FulfillmentResult{ReportURL: out.ReportURL},
			fmt.Errorf("%w: status %d", ErrFulfillment, resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return &FulfillmentResult{JWT: out.JWT, ReportURL: out.ReportURL}, nil
}
