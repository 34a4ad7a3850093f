// Package loanengine implements the loan calculator computation engine.
//
// Like the other engines this is a pure-function module: the tool
// handlers and the loan view both call into the same code, so the values
// a view recomputes locally after a slider edit are always in lockstep
// with what the server produced.
package loanengine

import (
	"fmt"
	"math"
)

// MaxTermYears bounds amortization work to 600 monthly rows.
const MaxTermYears = 50

// MaxAnnualRatePct is the highest annual rate the engine accepts.
const MaxAnnualRatePct = 30

const monthsPerYear = 12

// Params are the inputs to Calculate and Amortize.
type Params struct {
	Principal          float64 `json:"principal"`
	AnnualRatePct      float64 `json:"annualRate"`
	TermYears          int     `json:"termYears"`
	DownPayment        float64 `json:"downPayment,omitempty"`
	PropertyTaxRatePct float64 `json:"propertyTaxRate,omitempty"`
	AnnualInsurance    float64 `json:"annualInsurance,omitempty"`
	Label              string  `json:"label,omitempty"`
}

// Result is the outcome of Calculate. All currency fields are rounded to
// two decimal places; rounding happens only at this boundary, never in
// intermediate computation.
type Result struct {
	LoanAmount               float64 `json:"loanAmount"`
	MonthlyPrincipalInterest float64 `json:"monthlyPrincipalInterest"`
	MonthlyTax               float64 `json:"monthlyTax"`
	MonthlyInsurance         float64 `json:"monthlyInsurance"`
	MonthlyTotal             float64 `json:"monthlyTotal"`
	TotalInterest            float64 `json:"totalInterest"`
	TotalCost                float64 `json:"totalCost"`
	TermMonths               int     `json:"termMonths"`
}

// Row is one month of an amortization schedule.
type Row struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	PrincipalPortion float64 `json:"principalPortion"`
	InterestPortion  float64 `json:"interestPortion"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// Schedule is the outcome of Amortize.
type Schedule struct {
	Rows           []Row   `json:"schedule"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// Validate checks Params preconditions and returns a descriptive error on
// the first violation. The handler layer converts these into error
// envelopes.
func (p Params) Validate() error {
	if p.Principal <= 0 {
		return fmt.Errorf("principal must be greater than zero, got %v", p.Principal)
	}
	if p.AnnualRatePct < 0 {
		return fmt.Errorf("annual rate must not be negative, got %v", p.AnnualRatePct)
	}
	if p.AnnualRatePct > MaxAnnualRatePct {
		return fmt.Errorf("annual rate must not exceed %d%%, got %v", MaxAnnualRatePct, p.AnnualRatePct)
	}
	if p.TermYears <= 0 {
		return fmt.Errorf("term must be greater than zero years, got %d", p.TermYears)
	}
	if p.TermYears > MaxTermYears {
		return fmt.Errorf("term must not exceed %d years, got %d", MaxTermYears, p.TermYears)
	}
	if p.DownPayment < 0 {
		return fmt.Errorf("down payment must not be negative, got %v", p.DownPayment)
	}
	if p.DownPayment >= p.Principal {
		return fmt.Errorf(
			"down payment (%v) must be less than the principal (%v)",
			p.DownPayment, p.Principal,
		)
	}

	return nil
}

// MonthlyPayment computes the fixed payment that fully amortizes
// loanAmount over termMonths at monthlyRate, using the standard annuity
// formula. A zero rate degenerates to straight division.
func MonthlyPayment(loanAmount, monthlyRate float64, termMonths int) float64 {
	if monthlyRate == 0 {
		return loanAmount / float64(termMonths)
	}

	factor := math.Pow(1+monthlyRate, float64(termMonths))

	return loanAmount * monthlyRate * factor / (factor - 1)
}

// Calculate produces the full cost breakdown for a loan.
func Calculate(p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	termMonths := p.TermYears * monthsPerYear
	loanAmount := p.Principal - p.DownPayment
	monthlyRate := p.AnnualRatePct / 100 / monthsPerYear

	pi := MonthlyPayment(loanAmount, monthlyRate, termMonths)
	monthlyTax := p.Principal * p.PropertyTaxRatePct / 100 / monthsPerYear
	monthlyInsurance := p.AnnualInsurance / monthsPerYear
	monthlyTotal := pi + monthlyTax + monthlyInsurance

	return Result{
		LoanAmount:               round2(loanAmount),
		MonthlyPrincipalInterest: round2(pi),
		MonthlyTax:               round2(monthlyTax),
		MonthlyInsurance:         round2(monthlyInsurance),
		MonthlyTotal:             round2(monthlyTotal),
		TotalInterest:            round2(pi*float64(termMonths) - loanAmount),
		TotalCost:                round2(monthlyTotal*float64(termMonths) + p.DownPayment),
		TermMonths:               termMonths,
	}, nil
}

// Amortize produces the month-by-month schedule for a loan. Balances are
// clamped to zero for display; the running totals use the unrounded
// values.
func Amortize(p Params) (Schedule, error) {
	if err := p.Validate(); err != nil {
		return Schedule{}, err
	}

	termMonths := p.TermYears * monthsPerYear
	loanAmount := p.Principal - p.DownPayment
	monthlyRate := p.AnnualRatePct / 100 / monthsPerYear
	payment := MonthlyPayment(loanAmount, monthlyRate, termMonths)

	rows := make([]Row, 0, termMonths)
	balance := loanAmount
	totalInterest := 0.0

	for month := 1; month <= termMonths; month++ {
		interest := balance * monthlyRate
		principal := payment - interest
		balance -= principal
		totalInterest += interest

		display := balance
		if display < 0 {
			display = 0
		}

		rows = append(rows, Row{
			Month:            month,
			Payment:          round2(payment),
			PrincipalPortion: round2(principal),
			InterestPortion:  round2(interest),
			RemainingBalance: round2(display),
		})
	}

	return Schedule{
		Rows:           rows,
		MonthlyPayment: round2(payment),
		TotalInterest:  round2(totalInterest),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
