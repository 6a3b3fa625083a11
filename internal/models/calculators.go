package models

// Scenario inputs and result bundles for the planning calculators. All rates
// are annual percentages (6 means 6%), all terms are in years.

// LoanScenario describes a fixed-payment loan
type LoanScenario struct {
	Amount     float64 `json:"amount"`
	AnnualRate float64 `json:"rate"`
	TermYears  float64 `json:"term"`
}

// LoanResult is the computed loan breakdown
type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPaid      float64 `json:"totalPaid"`
}

// SavingsScenario describes a contribution-only savings plan
type SavingsScenario struct {
	Goal                float64 `json:"goal"`
	AnnualRate          float64 `json:"rate"`
	TermYears           float64 `json:"term"`
	MonthlyContribution float64 `json:"monthlyContribution"`
}

// SavingsResult is the computed savings breakdown
type SavingsResult struct {
	TotalContributions float64 `json:"totalContributions"`
	InterestEarned     float64 `json:"interestEarned"`
	FutureValue        float64 `json:"futureValue"`
}

// InvestmentScenario describes an initial sum plus optional monthly additions
type InvestmentScenario struct {
	Initial             float64 `json:"initial"`
	AnnualRate          float64 `json:"rate"`
	TermYears           float64 `json:"term"`
	MonthlyContribution float64 `json:"monthlyContribution"`
}

// YearlyValue is one point in an investment growth series
type YearlyValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// InvestmentResult is the computed investment projection. Series runs from
// year 0 through the term inclusive.
type InvestmentResult struct {
	TotalInvested float64       `json:"totalInvested"`
	Growth        float64       `json:"growth"`
	FutureValue   float64       `json:"futureValue"`
	Series        []YearlyValue `json:"series"`
}

// RetirementScenario describes a retirement savings projection
type RetirementScenario struct {
	CurrentAge     float64 `json:"currentAge"`
	RetirementAge  float64 `json:"retirementAge"`
	CurrentSavings float64 `json:"currentSavings"`
	MonthlySaving  float64 `json:"monthlySaving"`
	ExpectedReturn float64 `json:"expectedReturn"`
}

// RetirementResult is the computed retirement projection
type RetirementResult struct {
	YearsUntilRetirement float64 `json:"yearsUntilRetirement"`
	ProjectedSavings     float64 `json:"projectedSavings"`
	MonthlyIncome        float64 `json:"monthlyIncome"`
}

// MortgageScenario describes a home purchase financed after a down payment
type MortgageScenario struct {
	HomePrice   float64 `json:"homePrice"`
	DownPayment float64 `json:"downPayment"`
	AnnualRate  float64 `json:"rate"`
	TermYears   float64 `json:"term"`
}

// MortgageResult is the computed mortgage breakdown
type MortgageResult struct {
	LoanAmount     float64 `json:"loanAmount"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalCost      float64 `json:"totalCost"`
}
