package api

import (
	"context"
	"net/http"

	"github.com/codevf/codevf-go/internal/transport"
	"github.com/codevf/codevf-go/internal/types"
)

// GetBalance retrieves the current credit balance.
func GetBalance(ctx context.Context, rt *transport.Transport) (*types.CreditBalance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var balance types.CreditBalance
	if _, err := rt.Do(ctx, http.MethodGet, "/credits/balance", nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}
