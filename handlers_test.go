package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anthonyjpesce/calaccess-processed/models"
)

// helper to perform requests with an optional bearer token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewBuffer(b)
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	useDB(gdb)

	jwtSecret = []byte("test-secret")
	authUser = "ingest"
	hash, err := bcrypt.GenerateFromPassword([]byte("ingest-test"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	authHash = hash

	r := gin.New()
	setupRoutes(r)
	return r
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	body := jsonBody(t, map[string]string{"username": "ingest", "password": "ingest-test"})
	resp := performRequest(r, http.MethodPost, "/login", body, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var out map[string]string
	_ = json.Unmarshal(resp.Body.Bytes(), &out)
	if out["token"] == "" {
		t.Fatalf("empty token in login response: %s", resp.Body.String())
	}
	return out["token"]
}

func filingBody(filingID int, monetary int) map[string]any {
	return map[string]any{
		"filing_id":              filingID,
		"amendment_count":        0,
		"from_date":              "2020-01-01T00:00:00Z",
		"thru_date":              "2020-06-30T00:00:00Z",
		"monetary_contributions": monetary,
	}
}

func TestWriteEndpointsRequireToken(t *testing.T) {
	r := setupTestServer(t)
	resp := performRequest(r, http.MethodPost, "/filings", jsonBody(t, filingBody(1, 100)), "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
	resp = performRequest(r, http.MethodPost, "/filings", jsonBody(t, filingBody(1, 100)), "not-a-jwt")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setupTestServer(t)
	body := jsonBody(t, map[string]string{"username": "ingest", "password": "wrong"})
	resp := performRequest(r, http.MethodPost, "/login", body, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestFilingLifecycleOverHTTP(t *testing.T) {
	r := setupTestServer(t)
	token := login(t, r)

	// 1. Register filing 1001.
	resp := performRequest(r, http.MethodPost, "/filings", jsonBody(t, filingBody(1001, 5000)), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register filing status=%d body=%s", resp.Code, resp.Body.String())
	}
	// duplicate registration conflicts
	resp = performRequest(r, http.MethodPost, "/filings", jsonBody(t, filingBody(1001, 5000)), token)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate filing status=%d, want 409", resp.Code)
	}

	// 2. Record the original version.
	version := map[string]any{
		"amend_id":               0,
		"from_date":              "2020-01-01T00:00:00Z",
		"thru_date":              "2020-06-30T00:00:00Z",
		"monetary_contributions": 5000,
	}
	resp = performRequest(r, http.MethodPost, "/filings/1001/versions", jsonBody(t, version), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register version status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/filings/1001/versions", jsonBody(t, version), token)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate version status=%d, want 409", resp.Code)
	}

	// 3. Attach a Schedule A item and read it back by (filing, line_item).
	item := map[string]any{
		"line_item":            1,
		"amount":               "2500.00",
		"contributor_lastname": "Doe",
	}
	resp = performRequest(r, http.MethodPost, "/filings/1001/schedule-a", jsonBody(t, item), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("attach item status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/filings/1001/schedule-a/1", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get item status=%d body=%s", resp.Code, resp.Body.String())
	}
	var got models.Form460ScheduleAItem
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if got.Amount.StringFixed(2) != "2500.00" {
		t.Fatalf("amount = %s, want 2500.00", got.Amount)
	}
	// duplicate line item conflicts
	resp = performRequest(r, http.MethodPost, "/filings/1001/schedule-a", jsonBody(t, item), token)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate item status=%d, want 409", resp.Code)
	}

	// 4. Attach an item to the archived version.
	resp = performRequest(r, http.MethodPost, "/filings/1001/versions/0/schedule-a", jsonBody(t, item), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("attach version item status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/filings/1001/versions/0/schedule-a", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list version items status=%d", resp.Code)
	}

	// 5. Amendment 1 supersedes the summary.
	amendment := map[string]any{
		"amend_id":               1,
		"from_date":              "2020-01-01T00:00:00Z",
		"thru_date":              "2020-06-30T00:00:00Z",
		"monetary_contributions": 6000,
	}
	resp = performRequest(r, http.MethodPost, "/filings/1001/versions", jsonBody(t, amendment), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register amendment status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/filings/1001", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("get filing status=%d", resp.Code)
	}
	var f models.Form460Filing
	if err := json.Unmarshal(resp.Body.Bytes(), &f); err != nil {
		t.Fatalf("decode filing: %v", err)
	}
	if f.AmendmentCount != 1 || f.MonetaryContributions == nil || *f.MonetaryContributions != 6000 {
		t.Fatalf("summary not superseded: count=%d monetary=%v", f.AmendmentCount, f.MonetaryContributions)
	}

	// 6. Delete the filing; history survives orphaned.
	resp = performRequest(r, http.MethodDelete, "/filings/1001", nil, token)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/filings/1001", nil, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get deleted filing status=%d, want 404", resp.Code)
	}
	var versions []models.Form460FilingVersion
	if err := db.Order("amend_id").Find(&versions).Error; err != nil {
		t.Fatalf("find versions: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("versions = %d, want 2", len(versions))
	}
	for _, v := range versions {
		if v.FilingID != nil {
			t.Fatalf("version %d filing_id = %v, want NULL", v.AmendID, *v.FilingID)
		}
	}
}

func TestAttachItemValidationOverHTTP(t *testing.T) {
	r := setupTestServer(t)
	token := login(t, r)
	resp := performRequest(r, http.MethodPost, "/filings", jsonBody(t, filingBody(7, 100)), token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register filing status=%d", resp.Code)
	}
	cases := []map[string]any{
		{"amount": "10.00"}, // no line_item
		{"line_item": 1},    // no amount
	}
	for i, body := range cases {
		resp := performRequest(r, http.MethodPost, "/filings/7/schedule-e", jsonBody(t, body), token)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("case %d: status=%d, want 400 (%s)", i, resp.Code, resp.Body.String())
		}
	}
	resp = performRequest(r, http.MethodGet, fmt.Sprintf("/filings/%d/schedule-e/9", 7), nil, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("missing item status=%d, want 404", resp.Code)
	}
}
