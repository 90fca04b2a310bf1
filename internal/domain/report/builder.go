package report

import (
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Builder derives one report type from a loaded dataset. Builders never fail:
// missing data contributes zero.
type Builder func(ds *Dataset, req Request) *Report

var builders = map[Type]Builder{
	TypeProfitLoss:   buildProfitLoss,
	TypeTrialBalance: buildTrialBalance,
	TypeGST:          buildGST,
	TypeAging:        buildAging,
	TypeReturns:      buildReturns,
	TypeSales:        buildSales,
	TypePurchases:    buildPurchases,
}

// Build validates the request and runs its builder. Every needed part that
// failed to load is reported as a warning.
func Build(ds *Dataset, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if ds == nil {
		ds = NewDataset()
	}
	rep := builders[req.Type](ds, req)
	for _, part := range Needs(req.Type) {
		if err, failed := ds.Failures[part]; failed {
			rep.warn(failureWarning(part, err))
		}
	}
	return rep, nil
}

func period(req Request) ledger.Period {
	from, to := req.From, req.To
	return ledger.Period{From: &from, To: &to}
}

func amountRow(group, label string, amount decimal.Decimal) Row {
	return Row{Group: group, Label: label, Values: map[string]decimal.Decimal{"amount": amount}}
}
