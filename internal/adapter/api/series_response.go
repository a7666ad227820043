package api

import (
	"time"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// Money values are serialized as decimal strings to avoid any float
// round-trip on the wire.

type sourceBalanceResponse struct {
	SourceID   string `json:"sourceId"`
	SourceName string `json:"sourceName"`
	SourceType string `json:"sourceType"`
	Balance    string `json:"balance"`
}

type cryptoValueResponse struct {
	TotalValueUSD    string `json:"totalValueUsd"`
	WalletsValueUSD  string `json:"walletsValueUsd"`
	ExchangeValueUSD string `json:"exchangeValueUsd"`
}

type financeValueResponse struct {
	TotalBalance   string                  `json:"totalBalance"`
	SourceBalances []sourceBalanceResponse `json:"sourceBalances"`
}

// unifiedPointResponse mirrors domain.UnifiedPoint: a missing side is
// omitted from the JSON entirely.
type unifiedPointResponse struct {
	Timestamp string                `json:"timestamp"`
	Crypto    *cryptoValueResponse  `json:"crypto,omitempty"`
	Finance   *financeValueResponse `json:"finance,omitempty"`
}

func toSeriesResponse(points []domain.UnifiedPoint) []unifiedPointResponse {
	response := make([]unifiedPointResponse, len(points))
	for i, p := range points {
		response[i] = unifiedPointResponse{
			Timestamp: p.Timestamp.UTC().Format(time.RFC3339),
			Crypto:    toCryptoValueResponse(p.Crypto),
			Finance:   toFinanceValueResponse(p.Finance),
		}
	}
	return response
}

func toCryptoValueResponse(v *domain.CryptoValue) *cryptoValueResponse {
	if v == nil {
		return nil
	}
	return &cryptoValueResponse{
		TotalValueUSD:    v.TotalValueUSD.String(),
		WalletsValueUSD:  v.WalletsValueUSD.String(),
		ExchangeValueUSD: v.ExchangeValueUSD.String(),
	}
}

func toFinanceValueResponse(v *domain.FinanceValue) *financeValueResponse {
	if v == nil {
		return nil
	}

	balances := make([]sourceBalanceResponse, len(v.SourceBalances))
	for i, sb := range v.SourceBalances {
		balances[i] = sourceBalanceResponse{
			SourceID:   sb.SourceID.String(),
			SourceName: sb.SourceName,
			SourceType: sb.SourceType,
			Balance:    sb.Balance.String(),
		}
	}

	return &financeValueResponse{
		TotalBalance:   v.TotalBalance.String(),
		SourceBalances: balances,
	}
}
