package envelope

import "github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/loanengine"

// Loan calculator viewTypes. ViewTypeError is shared (envelope.go).
const (
	ViewTypeCalculate    = "calculate"
	ViewTypeAmortization = "amortization"
	ViewTypeCompareLoans = "compare"
)

// CalculateEnvelope carries a loan cost breakdown along with its inputs,
// so the view can seed its sliders and recompute locally.
type CalculateEnvelope struct {
	Params loanengine.Params `json:"params"`
	Result loanengine.Result `json:"result"`
}

func (CalculateEnvelope) Marker() string   { return MarkerLoan }
func (CalculateEnvelope) ViewType() string { return ViewTypeCalculate }
func (CalculateEnvelope) envelope()        {}

// AmortizationEnvelope carries a full month-by-month schedule.
type AmortizationEnvelope struct {
	Params   loanengine.Params   `json:"params"`
	Result   loanengine.Result   `json:"result"`
	Schedule loanengine.Schedule `json:"scheduleResult"`
}

func (AmortizationEnvelope) Marker() string   { return MarkerLoan }
func (AmortizationEnvelope) ViewType() string { return ViewTypeAmortization }
func (AmortizationEnvelope) envelope()        {}

// CompareLoansEnvelope carries a 2-4 scenario comparison.
type CompareLoansEnvelope struct {
	Comparison loanengine.Comparison `json:"comparison"`
}

func (CompareLoansEnvelope) Marker() string   { return MarkerLoan }
func (CompareLoansEnvelope) ViewType() string { return ViewTypeCompareLoans }
func (CompareLoansEnvelope) envelope()        {}
