package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/config"
	"github.com/robdata/tradestats/trade"
)

// AssetMoney is the currency outcome of one asset. Money amounts use exact
// decimal arithmetic; points stay float like everywhere else in the engine.
type AssetMoney struct {
	Asset  string          `json:"asset"`
	Trades int             `json:"trades"`
	Points float64         `json:"points"`
	Amount decimal.Decimal `json:"amount"`
}

// FinancialReport converts point results into account currency using the
// configured per-asset point values, and relates the outcome to margin.
type FinancialReport struct {
	TotalTrades   int             `json:"total_trades"`
	TotalPoints   float64         `json:"total_points"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalMargin   decimal.Decimal `json:"total_margin"`
	ReturnPercent decimal.Decimal `json:"return_percent"`
	Contracts     float64         `json:"contracts"`

	ByAsset []AssetMoney `json:"by_asset"`
}

// ComputeFinancial builds the currency report. contracts scales trades that
// carry no quantity of their own; totalMargin overrides the margin estimate
// when positive, otherwise the margin of the most-traded asset times
// contracts is used.
func ComputeFinancial(cfg config.Config, recs []trade.Record, contracts, totalMargin float64) FinancialReport {
	if contracts <= 0 {
		contracts = 1
	}

	valid, _ := aggregate.Valid(recs)

	rep := FinancialReport{
		TotalTrades: len(valid),
		TotalAmount: decimal.Zero,
		TotalMargin: decimal.Zero,
		Contracts:   contracts,
	}

	byAsset := make(map[string]*AssetMoney)
	assetTrades := make(map[string]int)

	for _, r := range valid {
		lots := r.Lots(contracts)
		pv := decimal.NewFromFloat(cfg.PointValue(r.Asset))
		amount := decimal.NewFromFloat(r.Points()).
			Mul(pv).
			Mul(decimal.NewFromFloat(lots))

		rep.TotalPoints += r.Points()
		rep.TotalAmount = rep.TotalAmount.Add(amount)

		am, ok := byAsset[r.Asset]
		if !ok {
			am = &AssetMoney{Asset: r.Asset, Amount: decimal.Zero}
			byAsset[r.Asset] = am
		}
		am.Trades++
		am.Points += r.Points()
		am.Amount = am.Amount.Add(amount)
		assetTrades[r.Asset]++
	}

	if totalMargin > 0 {
		rep.TotalMargin = decimal.NewFromFloat(totalMargin)
	} else if len(assetTrades) > 0 {
		// estimate from the most-traded asset
		principal := ""
		best := -1
		for asset, n := range assetTrades {
			if n > best || (n == best && asset < principal) {
				principal, best = asset, n
			}
		}
		rep.TotalMargin = decimal.NewFromFloat(cfg.Margin(principal)).
			Mul(decimal.NewFromFloat(contracts))
	}

	if rep.TotalMargin.IsPositive() {
		rep.ReturnPercent = rep.TotalAmount.
			Div(rep.TotalMargin).
			Mul(decimal.NewFromInt(100)).
			Round(4)
	} else {
		rep.ReturnPercent = decimal.Zero
	}

	rep.ByAsset = make([]AssetMoney, 0, len(byAsset))
	for _, am := range byAsset {
		rep.ByAsset = append(rep.ByAsset, *am)
	}
	sort.Slice(rep.ByAsset, func(i, j int) bool {
		return rep.ByAsset[i].Asset < rep.ByAsset[j].Asset
	})
	return rep
}
