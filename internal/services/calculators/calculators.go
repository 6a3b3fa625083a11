// Package calculators implements the amortization and projection math
// behind the what-if tools. Rates arrive as annual percentages and are
// compounded monthly throughout.
package calculators

import (
	"errors"
	"math"

	"financeiq/internal/models"
)

// SafeWithdrawalRate is the annual drawdown assumed when converting a
// retirement balance into monthly income.
const SafeWithdrawalRate = 0.04

var (
	errLoanInputs       = errors.New("amount, rate, and term must be positive")
	errSavingsInputs    = errors.New("goal, rate, and term must be positive")
	errInvestmentInputs = errors.New("investment inputs must be positive")
	errRetirementAges   = errors.New("retirement age must be greater than current age")
	errRetirementReturn = errors.New("expected return must be positive")
	errMortgageInputs   = errors.New("home price, rate, and term must be positive")
	errDownPayment      = errors.New("down payment must be less than the home price")
)

func monthlyRate(annualPercent float64) float64 {
	return annualPercent / 100 / 12
}

// futureValueAt projects a lump sum plus a monthly contribution
// forward a number of months at the given monthly rate.
func futureValueAt(initial, monthly, rate float64, months int) float64 {
	growth := math.Pow(1+rate, float64(months))
	value := initial * growth
	if monthly > 0 && rate > 0 {
		value += monthly * (growth - 1) / rate
	} else if monthly > 0 {
		value += monthly * float64(months)
	}
	return value
}

// Loan computes the fixed monthly payment for a fully amortizing loan.
func Loan(s models.LoanScenario) (*models.LoanResult, error) {
	if s.Amount <= 0 || s.AnnualRate <= 0 || s.TermYears <= 0 {
		return nil, errLoanInputs
	}

	rate := monthlyRate(s.AnnualRate)
	months := s.TermYears * 12
	growth := math.Pow(1+rate, months)
	payment := s.Amount * rate * growth / (growth - 1)
	totalPaid := payment * months

	return &models.LoanResult{
		MonthlyPayment: payment,
		TotalInterest:  totalPaid - s.Amount,
		TotalPaid:      totalPaid,
	}, nil
}

// Savings projects a recurring monthly contribution toward a goal.
func Savings(s models.SavingsScenario) (*models.SavingsResult, error) {
	if s.Goal <= 0 || s.AnnualRate <= 0 || s.TermYears <= 0 {
		return nil, errSavingsInputs
	}

	rate := monthlyRate(s.AnnualRate)
	months := s.TermYears * 12
	var futureValue float64
	if rate == 0 {
		futureValue = s.MonthlyContribution * months
	} else {
		futureValue = s.MonthlyContribution * (math.Pow(1+rate, months) - 1) / rate
	}
	contributions := s.MonthlyContribution * months

	return &models.SavingsResult{
		TotalContributions: contributions,
		InterestEarned:     futureValue - contributions,
		FutureValue:        futureValue,
	}, nil
}

// Investment projects an initial balance plus monthly contributions
// and returns the year-by-year growth series alongside the totals.
func Investment(s models.InvestmentScenario) (*models.InvestmentResult, error) {
	if (s.Initial <= 0 && s.MonthlyContribution <= 0) || s.AnnualRate <= 0 || s.TermYears <= 0 {
		return nil, errInvestmentInputs
	}

	rate := monthlyRate(s.AnnualRate)
	years := int(s.TermYears)
	months := s.TermYears * 12

	series := make([]models.YearlyValue, 0, years+1)
	for year := 0; year <= years; year++ {
		series = append(series, models.YearlyValue{
			Year:  year,
			Value: futureValueAt(s.Initial, s.MonthlyContribution, rate, year*12),
		})
	}

	futureValue := futureValueAt(s.Initial, s.MonthlyContribution, rate, int(months))
	invested := s.Initial + s.MonthlyContribution*months

	return &models.InvestmentResult{
		TotalInvested: invested,
		Growth:        futureValue - invested,
		FutureValue:   futureValue,
		Series:        series,
	}, nil
}

// Retirement projects current savings and ongoing contributions to
// retirement age, then converts the balance into monthly income at the
// safe withdrawal rate.
func Retirement(s models.RetirementScenario) (*models.RetirementResult, error) {
	if s.CurrentAge >= s.RetirementAge {
		return nil, errRetirementAges
	}
	if s.ExpectedReturn <= 0 {
		return nil, errRetirementReturn
	}

	years := s.RetirementAge - s.CurrentAge
	rate := monthlyRate(s.ExpectedReturn)
	months := int(years * 12)

	projected := futureValueAt(s.CurrentSavings, s.MonthlySaving, rate, months)

	return &models.RetirementResult{
		YearsUntilRetirement: years,
		ProjectedSavings:     projected,
		MonthlyIncome:        projected * SafeWithdrawalRate / 12,
	}, nil
}

// Mortgage amortizes the financed portion of a home purchase.
func Mortgage(s models.MortgageScenario) (*models.MortgageResult, error) {
	if s.HomePrice <= 0 || s.AnnualRate <= 0 || s.TermYears <= 0 {
		return nil, errMortgageInputs
	}
	if s.DownPayment < 0 || s.DownPayment >= s.HomePrice {
		return nil, errDownPayment
	}

	principal := s.HomePrice - s.DownPayment
	loan, err := Loan(models.LoanScenario{
		Amount:     principal,
		AnnualRate: s.AnnualRate,
		TermYears:  s.TermYears,
	})
	if err != nil {
		return nil, err
	}

	return &models.MortgageResult{
		LoanAmount:     principal,
		MonthlyPayment: loan.MonthlyPayment,
		TotalInterest:  loan.TotalInterest,
		TotalCost:      loan.TotalPaid,
	}, nil
}
