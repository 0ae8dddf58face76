package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anthonyjpesce/calaccess-processed/models"
	"github.com/anthonyjpesce/calaccess-processed/pkg/form460"
)

const sampleDocument = `{
  "filing": {
    "filing_id": 1001,
    "amendment_count": 1,
    "from_date": "2020-01-01T00:00:00Z",
    "thru_date": "2020-06-30T00:00:00Z",
    "monetary_contributions": 6000
  },
  "versions": [
    {
      "amend_id": 1,
      "from_date": "2020-01-01T00:00:00Z",
      "thru_date": "2020-06-30T00:00:00Z",
      "monetary_contributions": 6000,
      "schedule_a": [
        {"line_item": 1, "amount": "3500.00", "contributor_lastname": "Doe"}
      ]
    },
    {
      "amend_id": 0,
      "from_date": "2020-01-01T00:00:00Z",
      "thru_date": "2020-06-30T00:00:00Z",
      "monetary_contributions": 5000,
      "schedule_a": [
        {"line_item": 1, "amount": "2500.00", "contributor_lastname": "Doe"}
      ]
    }
  ],
  "schedule_a": [
    {"line_item": 1, "amount": "3500.00", "contributor_lastname": "Doe"}
  ],
  "schedule_e": [
    {"line_item": 1, "amount": "120.00", "payee_lastname": "Print Shop"}
  ]
}`

func newLoaderStore(t *testing.T) *form460.Store {
	t.Helper()
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
	return form460.NewStore(gdb)
}

func writeSampleDocument(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "form460_1001.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	s := newLoaderStore(t)
	path := writeSampleDocument(t)

	if err := loadDocument(s, path); err != nil {
		t.Fatalf("loadDocument: %v", err)
	}

	f, err := s.Filing(1001)
	if err != nil {
		t.Fatalf("filing: %v", err)
	}
	if f.AmendmentCount != 1 || f.MonetaryContributions == nil || *f.MonetaryContributions != 6000 {
		t.Fatalf("summary: count=%d monetary=%v", f.AmendmentCount, f.MonetaryContributions)
	}

	vs, err := s.Versions(1001)
	if err != nil {
		t.Fatalf("versions: %v", err)
	}
	if len(vs) != 2 {
		t.Fatalf("versions = %d, want 2", len(vs))
	}

	// Each archived version keeps its own Schedule A line.
	for i, want := range []string{"2500.00", "3500.00"} {
		items, err := form460.VersionItems[models.Form460ScheduleAItemVersion](s, vs[i].ID)
		if err != nil {
			t.Fatalf("version %d items: %v", i, err)
		}
		if len(items) != 1 || items[0].Amount.StringFixed(2) != want {
			t.Fatalf("version %d items = %+v, want one line of %s", i, items, want)
		}
	}

	item, err := form460.CurrentItemByLine[models.Form460ScheduleAItem](s, 1001, 1)
	if err != nil {
		t.Fatalf("current item: %v", err)
	}
	if item.Amount.StringFixed(2) != "3500.00" {
		t.Fatalf("current amount = %s, want 3500.00", item.Amount)
	}
	if _, err := form460.CurrentItemByLine[models.Form460ScheduleEItem](s, 1001, 1); err != nil {
		t.Fatalf("schedule e item: %v", err)
	}
}

func TestLoadDocumentIsIdempotent(t *testing.T) {
	s := newLoaderStore(t)
	path := writeSampleDocument(t)

	if err := loadDocument(s, path); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := loadDocument(s, path); err != nil {
		t.Fatalf("second load: %v", err)
	}

	vs, err := s.Versions(1001)
	if err != nil {
		t.Fatalf("versions: %v", err)
	}
	if len(vs) != 2 {
		t.Fatalf("versions = %d, want 2", len(vs))
	}
	items, err := form460.CurrentItems[models.Form460ScheduleAItem](s, 1001)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
}

const amendedDocument = `{
  "filing": {
    "filing_id": 1001,
    "amendment_count": 2,
    "from_date": "2020-01-01T00:00:00Z",
    "thru_date": "2020-06-30T00:00:00Z",
    "monetary_contributions": 7000
  },
  "versions": [
    {
      "amend_id": 2,
      "from_date": "2020-01-01T00:00:00Z",
      "thru_date": "2020-06-30T00:00:00Z",
      "monetary_contributions": 7000,
      "schedule_a": [
        {"line_item": 1, "amount": "7000.00", "contributor_lastname": "Doe"}
      ]
    }
  ],
  "schedule_a": [
    {"line_item": 1, "amount": "7000.00", "contributor_lastname": "Doe"}
  ]
}`

func TestReloadWithLaterAmendmentReplacesCurrentItems(t *testing.T) {
	s := newLoaderStore(t)
	path := writeSampleDocument(t)
	if err := loadDocument(s, path); err != nil {
		t.Fatalf("first load: %v", err)
	}

	// The processor re-emits the document after amendment 2 revises the
	// Schedule A line from 3500.00 to 7000.00.
	amended := filepath.Join(filepath.Dir(path), "form460_1001_amend2.json")
	if err := os.WriteFile(amended, []byte(amendedDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := loadDocument(s, amended); err != nil {
		t.Fatalf("second load: %v", err)
	}

	f, err := s.Filing(1001)
	if err != nil {
		t.Fatalf("filing: %v", err)
	}
	if f.AmendmentCount != 2 {
		t.Fatalf("amendment_count = %d, want 2", f.AmendmentCount)
	}
	item, err := form460.CurrentItemByLine[models.Form460ScheduleAItem](s, 1001, 1)
	if err != nil {
		t.Fatalf("current item: %v", err)
	}
	if item.Amount.StringFixed(2) != "7000.00" {
		t.Fatalf("current amount = %s, want 7000.00", item.Amount)
	}
	// The first document's Schedule E line belonged to the superseded
	// amendment and is gone from the current tier.
	if _, err := form460.CurrentItemByLine[models.Form460ScheduleEItem](s, 1001, 1); err == nil {
		t.Fatal("superseded schedule e item still in current tier")
	}
	vs, err := s.Versions(1001)
	if err != nil || len(vs) != 3 {
		t.Fatalf("versions = %d (%v), want 3", len(vs), err)
	}
}

func TestReloadLogsSkippedDuplicates(t *testing.T) {
	s := newLoaderStore(t)
	path := writeSampleDocument(t)
	if err := loadDocument(s, path); err != nil {
		t.Fatalf("first load: %v", err)
	}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	verbose = true
	defer func() {
		log.SetOutput(os.Stderr)
		verbose = false
	}()
	if err := loadDocument(s, path); err != nil {
		t.Fatalf("second load: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"filing 1001 already registered, skipping",
		"filing 1001 amend 0 already recorded, skipping",
		"filing 1001 line 1 already attached, skipping",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDryRunSkipsBrokenDocuments(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := readDocument(filepath.Join(dir, "broken.json")); err == nil {
		t.Fatal("expected decode error for truncated document")
	}
	if files := listDocumentFiles(dir); len(files) != 1 {
		t.Fatalf("files = %d, want 1", len(files))
	}
}
