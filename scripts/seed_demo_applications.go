//go:build ignore
// +build ignore

// Demo Data Seeder
// Posts sample loan applications and contact messages against a running server
// so the admin endpoints have data to page through.
//
// Usage:
//
//	go run scripts/seed_demo_applications.go --base=http://localhost:8080 --count=25
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

var (
	firstNames = []string{"James", "Maria", "Robert", "Linda", "Michael", "Susan", "David", "Karen"}
	lastNames  = []string{"Smith", "Garcia", "Johnson", "Brown", "Miller", "Davis", "Wilson", "Moore"}
	loanTypes  = []string{"mortgage", "auto", "personal", "business", "student", "home-equity"}
	subjects   = []string{"mortgage", "auto", "business", "personal", "student", "general", "other"}

	// Amounts sit inside each type's allowed range.
	loanAmounts = map[string]float64{
		"mortgage":    250000,
		"auto":        22000,
		"personal":    12000,
		"business":    75000,
		"student":     30000,
		"home-equity": 60000,
	}
)

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	count := flag.Int("count", 25, "number of applications to submit")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	for i := 0; i < *count; i++ {
		first := firstNames[i%len(firstNames)]
		last := lastNames[i%len(lastNames)]
		loanType := loanTypes[i%len(loanTypes)]
		payload := map[string]interface{}{
			"firstName":        first,
			"lastName":         last,
			"email":            fmt.Sprintf("%s.%s.%d@example.com", first, last, i),
			"phone":            fmt.Sprintf("555-01%02d", i%100),
			"dateOfBirth":      "1985-06-15",
			"loanType":         loanType,
			"loanAmount":       loanAmounts[loanType] + float64(i)*500,
			"employmentStatus": "employed",
			"annualIncome":     45000 + float64(i)*2500,
			"contactMethod":    "email",
			"bestTime":         "morning",
			"agreeTerms":       true,
		}
		if err := post(client, *base+"/api/loans/apply", payload); err != nil {
			log.Printf("application %d: %v", i, err)
		}
	}

	for i := 0; i < *count/5+1; i++ {
		payload := map[string]interface{}{
			"name":    fmt.Sprintf("%s %s", firstNames[i%len(firstNames)], lastNames[(i+3)%len(lastNames)]),
			"email":   fmt.Sprintf("contact.%d@example.com", i),
			"subject": subjects[i%len(subjects)],
			"message": fmt.Sprintf("Hello, I have a question about your loan products and current rates. Inquiry number %d.", i),
		}
		if err := post(client, *base+"/api/contact", payload); err != nil {
			log.Printf("contact %d: %v", i, err)
		}
	}

	log.Println("seeding complete")
}

func post(client *http.Client, url string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
