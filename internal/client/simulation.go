package client

import (
	"context"
	"net/http"

	"vitalwatch/internal/models"
)

// SimulateData asks the backend to regenerate its demo data set. Simulation
// triggers are optional harness operations: any failure is swallowed and
// treated as success, regardless of fallback mode.
func (c *Client) SimulateData(ctx context.Context) bool {
	var env models.Envelope
	if apiErr := c.call(ctx, "SimulateData", http.MethodPost, "/simulate/data", nil, nil, &env); apiErr != nil {
		c.logger.Warnf("simulation API not available: %v", apiErr)
		return true
	}
	return true
}

// SimulateFailure toggles the backend's simulated node failure. Never
// returns an error for the same reason as SimulateData.
func (c *Client) SimulateFailure(ctx context.Context) bool {
	var env models.Envelope
	if apiErr := c.call(ctx, "SimulateFailure", http.MethodPost, "/simulate/failure", nil, nil, &env); apiErr != nil {
		c.logger.Warnf("simulation failure API not available: %v", apiErr)
		return true
	}
	return true
}
