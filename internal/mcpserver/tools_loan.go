package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/loanengine"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/tools"
)

type compareLoansArgs struct {
	Scenarios []loanengine.Params `json:"scenarios"`
}

// loanParamsSchema is the shared scenario object schema.
var loanParamsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"principal":       map[string]any{"type": "number"},
		"annualRate":      map[string]any{"type": "number"},
		"termYears":       map[string]any{"type": "integer"},
		"downPayment":     map[string]any{"type": "number"},
		"propertyTaxRate": map[string]any{"type": "number"},
		"annualInsurance": map[string]any{"type": "number"},
		"label":           map[string]any{"type": "string"},
	},
	"required": []string{"principal", "annualRate", "termYears"},
}

func (s *Server) registerLoanTools() {
	s.mcp.AddTool(mcp.NewTool("calculate_loan",
		mcp.WithDescription("Compute the monthly payment and total cost breakdown for a loan."),
		mcp.WithNumber("principal", mcp.Required(), mcp.Description("Purchase price in dollars")),
		mcp.WithNumber("annualRate", mcp.Required(), mcp.Description("Annual interest rate in percent")),
		mcp.WithNumber("termYears", mcp.Required(), mcp.Description("Loan term in years")),
		mcp.WithNumber("downPayment", mcp.Description("Down payment in dollars")),
		mcp.WithNumber("propertyTaxRate", mcp.Description("Annual property tax rate in percent")),
		mcp.WithNumber("annualInsurance", mcp.Description("Annual insurance cost in dollars")),
	), s.handleCalculateLoan)

	s.mcp.AddTool(mcp.NewTool("amortization_schedule",
		mcp.WithDescription("Compute the month-by-month amortization schedule for a loan."),
		mcp.WithNumber("principal", mcp.Required(), mcp.Description("Purchase price in dollars")),
		mcp.WithNumber("annualRate", mcp.Required(), mcp.Description("Annual interest rate in percent")),
		mcp.WithNumber("termYears", mcp.Required(), mcp.Description("Loan term in years")),
		mcp.WithNumber("downPayment", mcp.Description("Down payment in dollars")),
	), s.handleAmortization)

	s.mcp.AddTool(mcp.NewTool("compare_loans",
		mcp.WithDescription("Compare 2-4 loan scenarios on monthly payment, total interest and total cost."),
		mcp.WithArray("scenarios", mcp.Required(),
			mcp.Description("Loan scenarios to compare"),
			mcp.Items(loanParamsSchema),
		),
	), s.handleCompareLoans)
}

func (s *Server) handleCalculateLoan(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("calculate_loan", envelope.MarkerLoan, func() (tools.ToolResult, error) {
		args, err := bind[loanengine.Params](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.loan.Calculate(args)
	}), nil
}

func (s *Server) handleAmortization(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("amortization_schedule", envelope.MarkerLoan, func() (tools.ToolResult, error) {
		args, err := bind[loanengine.Params](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.loan.Amortize(args)
	}), nil
}

func (s *Server) handleCompareLoans(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handle("compare_loans", envelope.MarkerLoan, func() (tools.ToolResult, error) {
		args, err := bind[compareLoansArgs](req)
		if err != nil {
			return tools.ToolResult{}, err
		}

		return s.loan.Compare(args.Scenarios)
	}), nil
}
