// Package main provides a CLI tool for validating analytics server endpoints.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type endpoint struct {
	path        string
	method      string
	body        string
	contentType string
	contains    []string
}

var endpoints = []endpoint{
	// API surface
	{path: "/api/health", method: "GET", contentType: "application/json", contains: []string{`"status":"ok"`}},
	{path: "/api/version", method: "GET", contentType: "application/json", contains: []string{`"version"`}},
	{path: "/api/transactions", method: "GET", contentType: "application/json", contains: []string{`"transactions"`, `"count"`}},
	{path: "/api/kpis", method: "GET", contentType: "application/json", contains: []string{`"totalRevenue"`, `"netProfit"`}},
	{path: "/api/anomalies", method: "GET", contentType: "application/json", contains: []string{`"anomalies"`, `"label"`}},
	{path: "/api/charts/category", method: "GET", contentType: "application/json", contains: []string{`"categories"`}},
	{path: "/api/charts/daily", method: "GET", contentType: "application/json", contains: []string{`"series"`}},

	// Calculators
	{path: "/api/calculators/loan", method: "POST",
		body:        `{"amount":100000,"rate":6,"term":30}`,
		contentType: "application/json", contains: []string{`"monthlyPayment"`}},
	{path: "/api/calculators/savings", method: "POST",
		body:        `{"goal":50000,"rate":5,"term":10,"monthlyContribution":300}`,
		contentType: "application/json", contains: []string{`"futureValue"`}},
	{path: "/api/calculators/investment", method: "POST",
		body:        `{"initial":10000,"rate":7,"term":5,"monthlyContribution":200}`,
		contentType: "application/json", contains: []string{`"series"`}},
	{path: "/api/calculators/retirement", method: "POST",
		body:        `{"currentAge":30,"retirementAge":65,"currentSavings":25000,"monthlySaving":500,"expectedReturn":7}`,
		contentType: "application/json", contains: []string{`"monthlyIncome"`}},
	{path: "/api/calculators/mortgage", method: "POST",
		body:        `{"homePrice":400000,"downPayment":80000,"rate":6.5,"term":30}`,
		contentType: "application/json", contains: []string{`"loanAmount"`}},
}

type result struct {
	endpoint endpoint
	status   int
	duration time.Duration
	err      error
	body     string
}

func main() {
	url := flag.String("url", "http://localhost:8080", "Base URL of the server to validate")
	verbose := flag.Bool("v", false, "Verbose output")
	timeout := flag.Int("timeout", 10, "Request timeout in seconds")
	flag.Parse()

	client := &http.Client{
		Timeout: time.Duration(*timeout) * time.Second,
	}

	fmt.Printf("Validating server at %s\n", *url)
	fmt.Printf("Testing %d endpoints...\n\n", len(endpoints))

	var passed, failed int

	for _, ep := range endpoints {
		r := validateEndpoint(client, *url, ep)

		if r.err != nil {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Error: %v\n", r.err)
		} else if r.status != http.StatusOK {
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Status: %d (expected 200)\n", r.status)
		} else {
			passed++
			if *verbose {
				fmt.Printf("PASS %s %s (%v)\n", ep.method, ep.path, r.duration)
			}
		}
	}

	fmt.Printf("\n========================================\n")
	fmt.Printf("Results: %d passed, %d failed\n", passed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func validateEndpoint(client *http.Client, baseURL string, ep endpoint) result {
	start := time.Now()

	var reqBody io.Reader
	if ep.body != "" {
		reqBody = strings.NewReader(ep.body)
	}

	req, err := http.NewRequest(ep.method, baseURL+ep.path, reqBody)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to create request: %w", err)}
	}
	if ep.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{endpoint: ep, err: fmt.Errorf("failed to read body: %w", err)}
	}

	duration := time.Since(start)

	r := result{
		endpoint: ep,
		status:   resp.StatusCode,
		duration: duration,
		body:     string(body),
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.Contains(ct, ep.contentType) {
		r.err = fmt.Errorf("wrong content type: got %q, expected %q", ct, ep.contentType)
		return r
	}

	if ep.contentType == "application/json" {
		var js interface{}
		if err := json.Unmarshal(body, &js); err != nil {
			r.err = fmt.Errorf("invalid JSON: %w", err)
			return r
		}
	}

	for _, needle := range ep.contains {
		if !strings.Contains(string(body), needle) {
			r.err = fmt.Errorf("missing expected content: %q", needle)
			return r
		}
	}

	return r
}
