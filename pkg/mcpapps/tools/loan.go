package tools

import (
	"fmt"
	"strings"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/loanengine"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

// scheduleTextRows caps how many amortization rows appear in the text
// block; the envelope always carries the full schedule.
const scheduleTextRows = 12

// Loan handles the loan calculator tools. Stateless: every call is a
// pure engine invocation; validation errors surface as handler errors
// which the Safe wrapper turns into error envelopes.
type Loan struct{}

// Calculate runs calculate_loan.
func (Loan) Calculate(p loanengine.Params) (ToolResult, error) {
	result, err := loanengine.Calculate(p)
	if err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Text:     formatCalculateText(p, result),
		Envelope: envelope.CalculateEnvelope{Params: p, Result: result},
	}, nil
}

// Amortize runs amortization_schedule.
func (Loan) Amortize(p loanengine.Params) (ToolResult, error) {
	result, err := loanengine.Calculate(p)
	if err != nil {
		return ToolResult{}, err
	}

	schedule, err := loanengine.Amortize(p)
	if err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Text: formatAmortizeText(p, schedule),
		Envelope: envelope.AmortizationEnvelope{
			Params:   p,
			Result:   result,
			Schedule: schedule,
		},
	}, nil
}

// Compare runs compare_loans over 2-4 scenarios.
func (Loan) Compare(params []loanengine.Params) (ToolResult, error) {
	comparison, err := loanengine.Compare(params)
	if err != nil {
		return ToolResult{}, err
	}

	return ToolResult{
		Text:     formatCompareLoansText(comparison),
		Envelope: envelope.CompareLoansEnvelope{Comparison: comparison},
	}, nil
}

func formatCalculateText(p loanengine.Params, r loanengine.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Loan: $%.2f at %.2f%% over %d years", p.Principal, p.AnnualRatePct, p.TermYears)
	if p.DownPayment > 0 {
		fmt.Fprintf(&b, " with $%.2f down", p.DownPayment)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Monthly principal and interest: $%.2f\n", r.MonthlyPrincipalInterest)
	if r.MonthlyTax > 0 || r.MonthlyInsurance > 0 {
		fmt.Fprintf(&b, "Monthly tax: $%.2f, insurance: $%.2f\n", r.MonthlyTax, r.MonthlyInsurance)
	}
	fmt.Fprintf(&b, "Monthly total: $%.2f\n", r.MonthlyTotal)
	fmt.Fprintf(&b, "Total interest over %d months: $%.2f\n", r.TermMonths, r.TotalInterest)
	fmt.Fprintf(&b, "Total cost: $%.2f", r.TotalCost)

	return b.String()
}

func formatAmortizeText(p loanengine.Params, s loanengine.Schedule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Amortization for $%.2f at %.2f%% over %d years\n",
		p.Principal, p.AnnualRatePct, p.TermYears)
	fmt.Fprintf(&b, "Monthly payment: $%.2f, total interest: $%.2f\n",
		s.MonthlyPayment, s.TotalInterest)

	shown := len(s.Rows)
	if shown > scheduleTextRows {
		shown = scheduleTextRows
	}

	for _, row := range s.Rows[:shown] {
		fmt.Fprintf(&b, "Month %d: principal $%.2f, interest $%.2f, balance $%.2f\n",
			row.Month, row.PrincipalPortion, row.InterestPortion, row.RemainingBalance)
	}

	if len(s.Rows) > shown {
		fmt.Fprintf(&b, "... %d more months in the schedule view", len(s.Rows)-shown)
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatCompareLoansText(c loanengine.Comparison) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Comparing %d loan scenarios:\n", len(c.Scenarios))

	for i, s := range c.Scenarios {
		label := s.Params.Label
		if label == "" {
			label = fmt.Sprintf("Scenario %d", i+1)
		}
		fmt.Fprintf(&b, "%s: $%.2f/mo, interest $%.2f, total $%.2f\n",
			label, s.Result.MonthlyTotal, s.Result.TotalInterest, s.Result.TotalCost)
	}

	fmt.Fprintf(&b, "Lowest monthly payment: scenario %d\n", c.BestMonthlyIdx+1)
	fmt.Fprintf(&b, "Lowest total interest: scenario %d\n", c.BestInterestIdx+1)
	fmt.Fprintf(&b, "Lowest total cost: scenario %d", c.BestCostIdx+1)

	return b.String()
}
