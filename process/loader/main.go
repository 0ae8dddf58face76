// Loader bulk-writes processed Form 460 filing documents into the schema.
// It scans (and optionally watches) a directory of JSON documents emitted by
// the upstream processor; each document carries one filing's latest state,
// its full version history, and the itemized schedules. Re-running over the
// same directory is safe: records that already exist are skipped.
//
// The loader does not transform raw CAL-ACCESS extracts; it only moves
// already-processed records into storage.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/anthonyjpesce/calaccess-processed/models"
	"github.com/anthonyjpesce/calaccess-processed/pkg/form460"
)

var verbose bool

// filingDocument is one processed filing as emitted by the upstream
// processor: the latest-state record, every archived version with its
// itemized schedules, and the latest amendment's itemized schedules for the
// current tier.
type filingDocument struct {
	Filing   models.Form460Filing `json:"filing"`
	Versions []versionDocument    `json:"versions"`

	ScheduleA    []models.Form460ScheduleAItem    `json:"schedule_a"`
	ScheduleC    []models.Form460ScheduleCItem    `json:"schedule_c"`
	ScheduleD    []models.Form460ScheduleDItem    `json:"schedule_d"`
	ScheduleE    []models.Form460ScheduleEItem    `json:"schedule_e"`
	ScheduleESub []models.Form460ScheduleESubItem `json:"schedule_e_sub"`
	ScheduleG    []models.Form460ScheduleGItem    `json:"schedule_g"`
	ScheduleI    []models.Form460ScheduleIItem    `json:"schedule_i"`
}

func (d *filingDocument) items() []models.CurrentItem {
	var out []models.CurrentItem
	for i := range d.ScheduleA {
		out = append(out, &d.ScheduleA[i])
	}
	for i := range d.ScheduleC {
		out = append(out, &d.ScheduleC[i])
	}
	for i := range d.ScheduleD {
		out = append(out, &d.ScheduleD[i])
	}
	for i := range d.ScheduleE {
		out = append(out, &d.ScheduleE[i])
	}
	for i := range d.ScheduleESub {
		out = append(out, &d.ScheduleESub[i])
	}
	for i := range d.ScheduleG {
		out = append(out, &d.ScheduleG[i])
	}
	for i := range d.ScheduleI {
		out = append(out, &d.ScheduleI[i])
	}
	return out
}

type versionDocument struct {
	models.Form460FilingVersion

	ScheduleA    []models.Form460ScheduleAItemVersion    `json:"schedule_a"`
	ScheduleC    []models.Form460ScheduleCItemVersion    `json:"schedule_c"`
	ScheduleD    []models.Form460ScheduleDItemVersion    `json:"schedule_d"`
	ScheduleE    []models.Form460ScheduleEItemVersion    `json:"schedule_e"`
	ScheduleESub []models.Form460ScheduleESubItemVersion `json:"schedule_e_sub"`
	ScheduleG    []models.Form460ScheduleGItemVersion    `json:"schedule_g"`
	ScheduleI    []models.Form460ScheduleIItemVersion    `json:"schedule_i"`
}

func (d *versionDocument) items() []models.VersionItem {
	var out []models.VersionItem
	for i := range d.ScheduleA {
		out = append(out, &d.ScheduleA[i])
	}
	for i := range d.ScheduleC {
		out = append(out, &d.ScheduleC[i])
	}
	for i := range d.ScheduleD {
		out = append(out, &d.ScheduleD[i])
	}
	for i := range d.ScheduleE {
		out = append(out, &d.ScheduleE[i])
	}
	for i := range d.ScheduleESub {
		out = append(out, &d.ScheduleESub[i])
	}
	for i := range d.ScheduleG {
		out = append(out, &d.ScheduleG[i])
	}
	for i := range d.ScheduleI {
		out = append(out, &d.ScheduleI[i])
	}
	return out
}

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

func main() {
	_ = godotenv.Load()

	dirFlag := flag.String("dir", "filings", "directory to scan for filing documents")
	dryRun := flag.Bool("dry-run", false, "Parse documents without touching the database")
	watch := flag.Bool("watch", false, "Watch directory for new documents")
	workers := flag.Int("workers", 0, "Worker pool size (default NumCPU)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose per-document logging")
	flag.Parse()

	files := listDocumentFiles(*dirFlag)
	log.Printf("Found %d filing documents in %s", len(files), *dirFlag)

	if *dryRun {
		for _, name := range files {
			doc, err := readDocument(filepath.Join(*dirFlag, name))
			if err != nil {
				log.Printf("%s: %v", name, err)
				continue
			}
			logV("%s: filing %d, %d versions", name, doc.Filing.FilingID, len(doc.Versions))
		}
		return
	}

	store := form460.NewStore(mustInitDBFromEnv())
	runWorkerPool(store, *dirFlag, files, effectiveWorkers(*workers), nil)

	if *watch {
		if err := watchDirectory(store, *dirFlag, effectiveWorkers(*workers)); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}

func effectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

func logV(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func listDocumentFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isDocumentName(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isDocumentName(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".json"
}

func readDocument(path string) (*filingDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc filingDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// loadDocument writes one document through the store. Records that already
// exist are skipped so the loader can re-scan a directory safely.
func loadDocument(s *form460.Store, path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	return applyDocument(s, doc)
}

func applyDocument(s *form460.Store, doc *filingDocument) error {
	filingID := doc.Filing.FilingID

	if err := s.RegisterFiling(&doc.Filing); err != nil {
		if !errors.Is(err, form460.ErrDuplicateFiling) {
			return fmt.Errorf("filing %d: %w", filingID, err)
		}
		logV("filing %d already registered, skipping", filingID)
	}

	// Versions oldest first, so the summary row ends up mirroring the
	// highest amendment even when the document's current record is stale.
	sort.Slice(doc.Versions, func(i, j int) bool {
		return doc.Versions[i].AmendID < doc.Versions[j].AmendID
	})
	for i := range doc.Versions {
		v := &doc.Versions[i]
		id := filingID
		v.FilingID = &id
		err := s.RegisterAmendment(&v.Form460FilingVersion)
		if errors.Is(err, form460.ErrDuplicateVersion) {
			existing, lerr := s.Version(filingID, v.AmendID)
			if lerr != nil {
				return fmt.Errorf("filing %d amend %d: %w", filingID, v.AmendID, lerr)
			}
			v.ID = existing.ID
			logV("filing %d amend %d already recorded, skipping", filingID, v.AmendID)
			err = nil
		}
		if err != nil {
			return fmt.Errorf("filing %d amend %d: %w", filingID, v.AmendID, err)
		}
		for _, item := range v.items() {
			item.SetParentVersion(v.ID)
			if err := s.AttachVersionItem(item); err != nil {
				if !errors.Is(err, form460.ErrDuplicateLineItem) {
					return fmt.Errorf("filing %d amend %d line %d: %w", filingID, v.AmendID, item.Line(), err)
				}
				logV("filing %d amend %d line %d already attached, skipping", filingID, v.AmendID, item.Line())
			}
		}
	}

	// Registering a later amendment above cleared the current tier, so these
	// attaches carry the superseding itemization; on a plain re-scan they hit
	// the duplicate branch instead.
	for _, item := range doc.items() {
		item.SetParent(filingID)
		if err := s.AttachCurrentItem(item); err != nil {
			if !errors.Is(err, form460.ErrDuplicateLineItem) {
				return fmt.Errorf("filing %d line %d: %w", filingID, item.Line(), err)
			}
			logV("filing %d line %d already attached, skipping", filingID, item.Line())
		}
	}
	return nil
}

// runWorkerPool loads the initial file list, then keeps draining extraCh
// (watch events) if one is given.
func runWorkerPool(s *form460.Store, dir string, initial []string, workers int, extraCh <-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				if err := loadDocument(s, filepath.Join(dir, name)); err != nil {
					log.Printf("load %s: %v", name, err)
					continue
				}
				logV("loaded %s", name)
			}
		}()
	}
	for _, name := range initial {
		fileCh <- name
	}
	if extraCh != nil {
		go func() {
			for name := range extraCh {
				fileCh <- name
			}
			close(fileCh)
		}()
	} else {
		close(fileCh)
	}
	wg.Wait()
}

func watchDirectory(s *form460.Store, dir string, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// debounce map of pending files so half-written documents settle
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
					name := filepath.Base(ev.Name)
					if !isDocumentName(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, ts := range pending {
					if now.Sub(ts) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	runWorkerPool(s, dir, nil, workers, fileCh)
	return nil
}
