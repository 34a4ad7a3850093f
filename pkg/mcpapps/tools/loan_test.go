package tools

import (
	"strings"
	"testing"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/loanengine"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
)

func TestLoanCalculate(t *testing.T) {
	res, err := Loan{}.Calculate(loanengine.Params{
		Principal:     350000,
		AnnualRatePct: 6.5,
		TermYears:     30,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(res.Text, "Monthly principal and interest: $2212.24") {
		t.Errorf("text:\n%s", res.Text)
	}

	env := res.Envelope.(envelope.CalculateEnvelope)
	if env.Result.MonthlyPrincipalInterest != 2212.24 {
		t.Errorf("envelope payment: got %.2f", env.Result.MonthlyPrincipalInterest)
	}
}

func TestLoanCalculateValidationError(t *testing.T) {
	_, err := Loan{}.Calculate(loanengine.Params{Principal: -1, AnnualRatePct: 5, TermYears: 10})
	if err == nil {
		t.Error("expected a validation error")
	}
}

func TestLoanAmortizeTextCapsRows(t *testing.T) {
	res, err := Loan{}.Amortize(loanengine.Params{
		Principal:     350000,
		AnnualRatePct: 6.5,
		TermYears:     30,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(res.Text, "... 348 more months in the schedule view") {
		t.Errorf("text cap note:\n%s", res.Text)
	}

	// The envelope always carries the complete schedule.
	env := res.Envelope.(envelope.AmortizationEnvelope)
	if len(env.Schedule.Rows) != 360 {
		t.Errorf("envelope rows: got %d", len(env.Schedule.Rows))
	}
	if env.Result.TermMonths != 360 {
		t.Errorf("result term: got %d", env.Result.TermMonths)
	}
}

func TestLoanCompare(t *testing.T) {
	res, err := Loan{}.Compare([]loanengine.Params{
		{Principal: 350000, AnnualRatePct: 6.5, TermYears: 30, Label: "30-year"},
		{Principal: 350000, AnnualRatePct: 5.9, TermYears: 15, Label: "15-year"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(res.Text, "Lowest monthly payment: scenario 1") {
		t.Errorf("text:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "Lowest total interest: scenario 2") {
		t.Errorf("text:\n%s", res.Text)
	}

	env := res.Envelope.(envelope.CompareLoansEnvelope)
	if len(env.Comparison.Scenarios) != 2 {
		t.Errorf("scenarios: got %d", len(env.Comparison.Scenarios))
	}
}
