package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"backoffice/internal/app/server"
	"backoffice/internal/platform/config"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *apiError       `json:"error"`
	RequestID string          `json:"requestId"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func testConfig(t *testing.T, dbURL string) config.Config {
	t.Helper()
	return config.Config{
		Addr:              ":0",
		DatabaseURL:       dbURL,
		JWTSecret:         "test-secret",
		Environment:       "test",
		SeedAdminName:     "Test Admin",
		SeedAdminEmail:    "admin@test.local",
		SeedAdminPassword: "ChangeMe123!",
		PayslipDir:        t.TempDir(),
		RateLimitStateDir: t.TempDir(),
		EmailFrom:         "no-reply@test.local",
		RunMigrations:     true,
		RunSeed:           true,
		MaxBodyBytes:      1048576,
		FormMaxPerWindow:  3,
		FormWindow:        time.Hour,
		CaptchaTTL:        10 * time.Minute,
		LoginRatePerMin:   1000,
		MetricsEnabled:    true,
	}
}

func TestPayslipGenerationJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(t, dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	employeeEmail := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, token, employeeEmail, 30000)

	status, resp := getJSON(t, client, ts.URL+"/api/v1/payslips/breakdown?salary=30000", token)
	if status != http.StatusOK {
		t.Fatalf("breakdown returned status %d", status)
	}
	var breakdown map[string]float64
	if err := json.Unmarshal(resp.Data, &breakdown); err != nil {
		t.Fatalf("failed to decode breakdown: %v", err)
	}
	if breakdown["basicSalary"] != 15000 {
		t.Fatalf("expected basic 15000, got %v", breakdown["basicSalary"])
	}

	draft := map[string]any{
		"employeeId":          employeeID,
		"month":               3,
		"year":                2025,
		"workingDays":         31,
		"paidDays":            31,
		"ctc":                 30000,
		"basicSalary":         breakdown["basicSalary"],
		"hra":                 breakdown["hra"],
		"conveyanceAllowance": breakdown["conveyanceAllowance"],
		"medicalAllowance":    breakdown["medicalAllowance"],
		"specialAllowance":    breakdown["specialAllowance"],
		"providentFund":       breakdown["providentFund"],
		"professionalTax":     breakdown["professionalTax"],
		"incomeTax":           breakdown["incomeTax"],
	}

	status, resp = postJSON(t, client, ts.URL+"/api/v1/payslips", token, draft)
	if status != http.StatusCreated {
		t.Fatalf("generate returned status %d", status)
	}
	var rec map[string]any
	if err := json.Unmarshal(resp.Data, &rec); err != nil {
		t.Fatalf("failed to decode payslip: %v", err)
	}
	if rec["grossSalary"].(float64) != 30000 {
		t.Fatalf("expected gross 30000, got %v", rec["grossSalary"])
	}
	if rec["netSalary"].(float64) != 28000 {
		t.Fatalf("expected net 28000, got %v", rec["netSalary"])
	}
	payslipID, _ := rec["id"].(string)
	if payslipID == "" {
		t.Fatal("expected payslip id")
	}

	// The same period for the same employee must be rejected.
	status, resp = postJSON(t, client, ts.URL+"/api/v1/payslips", token, draft)
	if status != http.StatusConflict {
		t.Fatalf("expected duplicate conflict, got status %d", status)
	}
	if resp.Error == nil || resp.Error.Code != "duplicate_payslip" {
		t.Fatalf("expected duplicate_payslip error, got %+v", resp.Error)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/payslips/"+payslipID+"/download", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	downloadResp, err := client.Do(req)
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	defer downloadResp.Body.Close()
	if downloadResp.StatusCode != http.StatusOK {
		t.Fatalf("download returned status %d", downloadResp.StatusCode)
	}
	disposition := downloadResp.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, `filename="Journey_Tester_3_2025_payslip.pdf"`) {
		t.Fatalf("expected payslip filename in Content-Disposition, got %q", disposition)
	}
	body, err := io.ReadAll(downloadResp.Body)
	if err != nil {
		t.Fatalf("failed to read document: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}

func TestPublicSubmissionGate(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(t, dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	submit := func() (int, envelope) {
		answer, captchaID := solveCaptcha(t, client, ts.URL)
		return postJSON(t, client, ts.URL+"/api/v1/public/contact", "", map[string]any{
			"captchaId":     captchaID,
			"captchaAnswer": answer,
			"name":          "Visitor",
			"email":         "visitor@example.com",
			"message":       "Hello there",
		})
	}

	for i := 0; i < cfg.FormMaxPerWindow; i++ {
		status, resp := submit()
		if status != http.StatusCreated {
			t.Fatalf("submission %d returned status %d: %+v", i+1, status, resp.Error)
		}
	}

	status, resp := submit()
	if status != http.StatusTooManyRequests {
		t.Fatalf("expected rate limit after %d submissions, got status %d", cfg.FormMaxPerWindow, status)
	}
	if resp.Error == nil || resp.Error.Code != "rate_limited" {
		t.Fatalf("expected rate_limited error, got %+v", resp.Error)
	}

	// A missing gate never reaches the store.
	status, resp = postJSON(t, client, ts.URL+"/api/v1/public/contact", "", map[string]any{
		"name":    "Bot",
		"email":   "bot@example.com",
		"message": "spam",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected captcha rejection, got status %d", status)
	}
	if resp.Error == nil || resp.Error.Code != "captcha_failed" {
		t.Fatalf("expected captcha_failed error, got %+v", resp.Error)
	}
}

func solveCaptcha(t *testing.T, client *http.Client, baseURL string) (int, string) {
	t.Helper()
	status, resp := getJSON(t, client, baseURL+"/api/v1/public/captcha", "")
	if status != http.StatusOK {
		t.Fatalf("captcha returned status %d", status)
	}
	var challenge struct {
		ID       string `json:"id"`
		Question string `json:"question"`
	}
	if err := json.Unmarshal(resp.Data, &challenge); err != nil {
		t.Fatalf("failed to decode challenge: %v", err)
	}
	var a, b int
	if _, err := fmt.Sscanf(challenge.Question, "What is %d + %d?", &a, &b); err != nil {
		t.Fatalf("unexpected challenge question %q: %v", challenge.Question, err)
	}
	return a + b, challenge.ID
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	status, resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login returned status %d", status)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, email string, salary float64) string {
	t.Helper()
	status, resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]any{
		"firstName":     "Journey",
		"lastName":      "Tester",
		"email":         email,
		"designation":   "Engineer",
		"monthlySalary": salary,
		"status":        "active",
	})
	if status != http.StatusCreated {
		t.Fatalf("create employee returned status %d: %+v", status, resp.Error)
	}
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode employee response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected employee id")
	}
	return id
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return doJSON(t, client, req)
}

func getJSON(t *testing.T, client *http.Client, url, token string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return doJSON(t, client, req)
}

func doJSON(t *testing.T, client *http.Client, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", string(raw), err)
	}
	return resp.StatusCode, env
}
