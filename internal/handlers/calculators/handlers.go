// Package calculators exposes the what-if financial calculators over
// the JSON API.
package calculators

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpx "financeiq/internal/http"
	"financeiq/internal/models"
	"financeiq/internal/services/calculators"
)

// RegisterRoutes registers all calculator routes
func RegisterRoutes(r chi.Router) {
	r.Post("/api/calculators/loan", handleLoan)
	r.Post("/api/calculators/savings", handleSavings)
	r.Post("/api/calculators/investment", handleInvestment)
	r.Post("/api/calculators/retirement", handleRetirement)
	r.Post("/api/calculators/mortgage", handleMortgage)
}

func handleLoan(w http.ResponseWriter, r *http.Request) {
	var scenario models.LoanScenario
	if err := httpx.DecodeJSON(r, &scenario); err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := calculators.Loan(scenario)
	if err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

func handleSavings(w http.ResponseWriter, r *http.Request) {
	var scenario models.SavingsScenario
	if err := httpx.DecodeJSON(r, &scenario); err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := calculators.Savings(scenario)
	if err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

func handleInvestment(w http.ResponseWriter, r *http.Request) {
	var scenario models.InvestmentScenario
	if err := httpx.DecodeJSON(r, &scenario); err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := calculators.Investment(scenario)
	if err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

func handleRetirement(w http.ResponseWriter, r *http.Request) {
	var scenario models.RetirementScenario
	if err := httpx.DecodeJSON(r, &scenario); err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := calculators.Retirement(scenario)
	if err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

func handleMortgage(w http.ResponseWriter, r *http.Request) {
	var scenario models.MortgageScenario
	if err := httpx.DecodeJSON(r, &scenario); err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := calculators.Mortgage(scenario)
	if err != nil {
		httpx.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}
