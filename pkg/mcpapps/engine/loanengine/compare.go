package loanengine

import "fmt"

// Scenario pairs the inputs of one compared loan with its computed
// result.
type Scenario struct {
	Params Params `json:"params"`
	Result Result `json:"result"`
}

// Comparison is the outcome of Compare: every scenario's result plus the
// index of the winner for each metric. Ties resolve to the lowest index.
type Comparison struct {
	Scenarios       []Scenario `json:"scenarios"`
	BestMonthlyIdx  int        `json:"bestMonthlyIdx"`
	BestInterestIdx int        `json:"bestInterestIdx"`
	BestCostIdx     int        `json:"bestCostIdx"`
}

// MinCompareScenarios and MaxCompareScenarios bound a Compare request.
const (
	MinCompareScenarios = 2
	MaxCompareScenarios = 4
)

// Compare calculates every scenario and finds the best monthly payment,
// total interest and total cost independently.
func Compare(params []Params) (Comparison, error) {
	if len(params) < MinCompareScenarios || len(params) > MaxCompareScenarios {
		return Comparison{}, fmt.Errorf(
			"compare requires between %d and %d scenarios, got %d",
			MinCompareScenarios, MaxCompareScenarios, len(params),
		)
	}

	c := Comparison{Scenarios: make([]Scenario, 0, len(params))}

	for i, p := range params {
		res, err := Calculate(p)
		if err != nil {
			return Comparison{}, fmt.Errorf("scenario %d: %w", i+1, err)
		}
		c.Scenarios = append(c.Scenarios, Scenario{Params: p, Result: res})
	}

	c.BestMonthlyIdx = argmin(c.Scenarios, func(r Result) float64 { return r.MonthlyTotal })
	c.BestInterestIdx = argmin(c.Scenarios, func(r Result) float64 { return r.TotalInterest })
	c.BestCostIdx = argmin(c.Scenarios, func(r Result) float64 { return r.TotalCost })

	return c, nil
}

// argmin returns the index of the lowest metric value; on ties the first
// occurrence wins because only a strictly smaller value replaces the
// current best.
func argmin(scenarios []Scenario, metric func(Result) float64) int {
	best := 0
	for i := 1; i < len(scenarios); i++ {
		if metric(scenarios[i].Result) < metric(scenarios[best].Result) {
			best = i
		}
	}

	return best
}
