// Package loanview renders loan calculator envelopes and recomputes the
// breakdown locally when the rate, term or down payment sliders move.
// Recomputation calls the same loanengine package the server handlers
// use, including its rounding points and zero-rate branch.
package loanview

import (
	"fmt"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/engine/loanengine"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/envelope"
	"github.com/swapp1990/mcp-apps/pkg/mcpapps/views"
)

// scheduleDisplayRows caps how many schedule rows one render shows.
const scheduleDisplayRows = 24

// edit is the slider overlay over the last delivered params.
type edit struct {
	params loanengine.Params
}

// View is the loan calculator view instance. Single-threaded,
// event-driven: not safe for concurrent use.
type View struct {
	env        envelope.Envelope
	fallback   string
	hasContent bool
	cancelled  bool
	theme      string
	edit       *edit
}

// New creates an empty view showing the waiting placeholder.
func New() *View { return &View{} }

// Marker implements views.View.
func (*View) Marker() string { return envelope.MarkerLoan }

// ApplyContent implements views.View. A new delivery discards the slider
// overlay and reverts to server truth.
func (v *View) ApplyContent(blocks []envelope.Block) {
	v.cancelled = false
	v.edit = nil
	v.env = nil
	v.fallback = ""

	decoded := envelope.Extract(blocks, envelope.MarkerLoan)
	switch decoded.Kind {
	case envelope.KindEnvelope:
		v.env = decoded.Env
		v.hasContent = true
	case envelope.KindText:
		v.fallback = decoded.Text
		v.hasContent = true
	case envelope.KindEmpty:
		v.hasContent = false
	}
}

// Cancel implements views.View.
func (v *View) Cancel() {
	v.cancelled = true
	v.edit = nil
}

// ApplyTheme implements views.View.
func (v *View) ApplyTheme(theme string) { v.theme = theme }

// SetRate moves the annual rate slider and recomputes locally.
func (v *View) SetRate(annualRatePct float64) {
	if e := v.beginEdit(); e != nil {
		e.params.AnnualRatePct = annualRatePct
	}
}

// SetTermYears moves the term slider and recomputes locally.
func (v *View) SetTermYears(years int) {
	if e := v.beginEdit(); e != nil {
		e.params.TermYears = years
	}
}

// SetDownPayment edits the down payment and recomputes locally.
func (v *View) SetDownPayment(amount float64) {
	if e := v.beginEdit(); e != nil {
		e.params.DownPayment = amount
	}
}

// beginEdit starts (or continues) the overlay seeded from the delivered
// params. Sliders only apply in calculate and amortization modes.
func (v *View) beginEdit() *edit {
	if v.edit != nil {
		return v.edit
	}

	switch env := v.env.(type) {
	case envelope.CalculateEnvelope:
		v.edit = &edit{params: env.Params}
	case envelope.AmortizationEnvelope:
		v.edit = &edit{params: env.Params}
	default:
		return nil
	}

	return v.edit
}

// Render implements views.View with one exhaustive dispatch over the
// envelope variants.
func (v *View) Render() views.RenderModel {
	m := views.RenderModel{Title: "Loan Calculator", Theme: v.theme}

	switch {
	case v.cancelled:
		m.Status = views.StatusCancelled
		m.Sections = []views.Section{{Lines: []string{"Tool call cancelled."}}}

		return m
	case !v.hasContent:
		m.Status = views.StatusWaiting
		m.Sections = []views.Section{{Lines: []string{"Waiting for data..."}}}

		return m
	case v.fallback != "":
		m.Status = views.StatusFallback
		m.Sections = []views.Section{{Lines: []string{v.fallback}}}

		return m
	}

	m.Status = views.StatusRendered

	switch env := v.env.(type) {
	case envelope.CalculateEnvelope:
		m.Sections = v.renderCalculate(env)
	case envelope.AmortizationEnvelope:
		m.Sections = v.renderAmortization(env)
	case envelope.CompareLoansEnvelope:
		m.Sections = renderCompare(env.Comparison)
	case envelope.ErrorEnvelope:
		m.Sections = []views.Section{{Heading: "Error", Lines: []string{env.Message}}}
	}

	return m
}

// activeBreakdown returns the params and result to display: the server
// truth, or a local recomputation when a slider has moved. An overlay
// that fails engine validation falls back to server truth.
func (v *View) activeBreakdown(params loanengine.Params, result loanengine.Result) (loanengine.Params, loanengine.Result, string) {
	if v.edit == nil {
		return params, result, "server"
	}

	recomputed, err := loanengine.Calculate(v.edit.params)
	if err != nil {
		return params, result, "server"
	}

	return v.edit.params, recomputed, "edited locally"
}

func (v *View) renderCalculate(env envelope.CalculateEnvelope) []views.Section {
	params, result, source := v.activeBreakdown(env.Params, env.Result)

	return []views.Section{
		{Lines: []string{
			fmt.Sprintf("$%.2f at %.2f%% over %d years (%s)",
				params.Principal, params.AnnualRatePct, params.TermYears, source),
		}},
		breakdownSection(result),
	}
}

func (v *View) renderAmortization(env envelope.AmortizationEnvelope) []views.Section {
	params, result, source := v.activeBreakdown(env.Params, env.Result)

	schedule := env.Schedule
	if v.edit != nil {
		if recomputed, err := loanengine.Amortize(params); err == nil {
			schedule = recomputed
		}
	}

	rows := views.Section{
		Heading: fmt.Sprintf("Schedule (%d months, payment $%.2f)",
			len(schedule.Rows), schedule.MonthlyPayment),
	}

	shown := len(schedule.Rows)
	if shown > scheduleDisplayRows {
		shown = scheduleDisplayRows
	}
	for _, row := range schedule.Rows[:shown] {
		rows.Lines = append(rows.Lines, fmt.Sprintf(
			"Month %d: principal $%.2f, interest $%.2f, balance $%.2f",
			row.Month, row.PrincipalPortion, row.InterestPortion, row.RemainingBalance))
	}
	if len(schedule.Rows) > shown {
		rows.Lines = append(rows.Lines, fmt.Sprintf("... %d more months", len(schedule.Rows)-shown))
	}

	return []views.Section{
		{Lines: []string{
			fmt.Sprintf("$%.2f at %.2f%% over %d years (%s)",
				params.Principal, params.AnnualRatePct, params.TermYears, source),
		}},
		breakdownSection(result),
		rows,
	}
}

func breakdownSection(r loanengine.Result) views.Section {
	return views.Section{
		Heading: "Monthly breakdown",
		Lines: []string{
			fmt.Sprintf("Principal and interest: $%.2f", r.MonthlyPrincipalInterest),
			fmt.Sprintf("Tax: $%.2f, insurance: $%.2f", r.MonthlyTax, r.MonthlyInsurance),
			fmt.Sprintf("Total: $%.2f/mo", r.MonthlyTotal),
			fmt.Sprintf("Total interest: $%.2f", r.TotalInterest),
			fmt.Sprintf("Total cost: $%.2f", r.TotalCost),
		},
	}
}

func renderCompare(c loanengine.Comparison) []views.Section {
	s := views.Section{Heading: fmt.Sprintf("Comparing %d scenarios", len(c.Scenarios))}

	for i, sc := range c.Scenarios {
		label := sc.Params.Label
		if label == "" {
			label = fmt.Sprintf("Scenario %d", i+1)
		}

		marks := ""
		if i == c.BestMonthlyIdx {
			marks += " [best monthly]"
		}
		if i == c.BestInterestIdx {
			marks += " [least interest]"
		}
		if i == c.BestCostIdx {
			marks += " [lowest cost]"
		}

		s.Lines = append(s.Lines, fmt.Sprintf(
			"%s: $%.2f/mo, interest $%.2f, total $%.2f%s",
			label, sc.Result.MonthlyTotal, sc.Result.TotalInterest, sc.Result.TotalCost, marks))
	}

	return []views.Section{s}
}
