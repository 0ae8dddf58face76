// Package form460 implements the storage operations for processed Form 460
// filings: a keyed-overwrite store for the latest state of each filing, an
// append-only log of filing versions, and attach/lookup operations for the
// itemized schedule tables, parameterized over the schedule types.
//
// The store requires a *gorm.DB opened with TranslateError enabled so that
// uniqueness violations surface as gorm.ErrDuplicatedKey regardless of the
// backing driver.
package form460

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/anthonyjpesce/calaccess-processed/models"
)

// Store executes all writes and reads against the Form 460 schema. It holds
// no in-memory state; uniqueness is enforced by the storage layer, so
// concurrent writers of the same key are serialized or rejected there.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RegisterFiling inserts the latest-state row for a filing. Registering the
// same filing id twice fails with ErrDuplicateFiling; later amendments go
// through RegisterAmendment instead.
func (s *Store) RegisterFiling(f *models.Form460Filing) error {
	if err := validateSummary(f.FilingID, &f.Form460Summary); err != nil {
		return err
	}
	if f.AmendmentCount < 0 {
		return &MissingFieldError{Field: "amendment_count"}
	}
	return create(s.db, f, ErrDuplicateFiling)
}

// RegisterAmendment records one immutable version of a filing, amend id 0
// being the original statement. When the amend id exceeds the summary row's
// amendment count, the summary is overwritten wholesale from the version
// (including re-nulling totals the amendment left blank), its count set to
// the amend id, and the filing's current-tier items deleted so the writer can
// attach the superseding set. A version for an unknown filing creates the
// summary row.
func (s *Store) RegisterAmendment(v *models.Form460FilingVersion) error {
	if v.FilingID == nil {
		return &MissingFieldError{Field: "filing_id"}
	}
	if v.AmendID < 0 {
		return &MissingFieldError{Field: "amend_id"}
	}
	if err := validateSummary(*v.FilingID, &v.Form460Summary); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVersion
			}
			return err
		}
		var f models.Form460Filing
		err := tx.First(&f, *v.FilingID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			f = models.Form460Filing{
				FilingID:       *v.FilingID,
				AmendmentCount: v.AmendID,
				Form460Summary: v.Form460Summary,
			}
			// A concurrent writer racing the same missing summary
			// surfaces as a duplicate, not a storage error.
			return create(tx, &f, ErrDuplicateFiling)
		case err != nil:
			return err
		}
		if v.AmendID <= f.AmendmentCount {
			// Out-of-order amendment: the version row is kept, the
			// summary keeps mirroring the highest amend id seen.
			return nil
		}
		f.AmendmentCount = v.AmendID
		f.Form460Summary = v.Form460Summary
		// Save writes every column, so totals cleared by the amendment
		// go back to NULL instead of surviving from the old summary.
		if err := tx.Save(&f).Error; err != nil {
			return err
		}
		// The current tier mirrors the latest amendment only. Items of
		// the superseded amendment are removed, not orphaned; orphaning
		// is reserved for deletion of the parent itself.
		for _, m := range currentItemModels() {
			if err := tx.Where("filing_id = ?", f.FilingID).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Filing returns the latest-state row for a filing id.
func (s *Store) Filing(filingID int) (*models.Form460Filing, error) {
	var f models.Form460Filing
	if err := s.db.First(&f, filingID).Error; err != nil {
		return nil, asNotFound(err)
	}
	return &f, nil
}

// Version returns one archived version by (filing, amend_id).
func (s *Store) Version(filingID, amendID int) (*models.Form460FilingVersion, error) {
	var v models.Form460FilingVersion
	err := s.db.Where("filing_id = ? AND amend_id = ?", filingID, amendID).First(&v).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &v, nil
}

// Versions returns every archived version of a filing, oldest first.
func (s *Store) Versions(filingID int) ([]models.Form460FilingVersion, error) {
	var out []models.Form460FilingVersion
	err := s.db.Where("filing_id = ?", filingID).Order("amend_id").Find(&out).Error
	return out, err
}

// DeleteFiling removes the latest-state row only. Version rows and itemized
// current rows that referenced it survive with their filing reference nulled,
// preserving them as orphaned-but-intact history.
func (s *Store) DeleteFiling(filingID int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Form460Filing{}, filingID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&models.Form460FilingVersion{}).
			Where("filing_id = ?", filingID).
			Update("filing_id", nil).Error; err != nil {
			return err
		}
		for _, m := range currentItemModels() {
			if err := tx.Model(m).
				Where("filing_id = ?", filingID).
				Update("filing_id", nil).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteVersion removes one archived version; its itemized rows survive with
// the version reference nulled. The summary row is not recomputed.
func (s *Store) DeleteVersion(filingID, amendID int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var v models.Form460FilingVersion
		err := tx.Where("filing_id = ? AND amend_id = ?", filingID, amendID).First(&v).Error
		if err != nil {
			return asNotFound(err)
		}
		if err := tx.Delete(&models.Form460FilingVersion{}, v.ID).Error; err != nil {
			return err
		}
		for _, m := range versionItemModels() {
			if err := tx.Model(m).
				Where("filing_version_id = ?", v.ID).
				Update("filing_version_id", nil).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AttachCurrentItem stores one itemized line against the latest version of a
// filing. The caller sets the parent and line item beforehand; a duplicate
// (filing, line_item) pair within the item's schedule table fails with
// ErrDuplicateLineItem.
func (s *Store) AttachCurrentItem(item models.CurrentItem) error {
	if _, ok := item.Parent(); !ok {
		return &MissingFieldError{Field: "filing_id"}
	}
	if err := validateItem(item); err != nil {
		return err
	}
	return create(s.db, item, ErrDuplicateLineItem)
}

// AttachVersionItem stores one itemized line against an archived filing
// version. Version items are immutable historical facts, one set per
// amendment.
func (s *Store) AttachVersionItem(item models.VersionItem) error {
	if _, ok := item.ParentVersion(); !ok {
		return &MissingFieldError{Field: "filing_version_id"}
	}
	if err := validateItem(item); err != nil {
		return err
	}
	return create(s.db, item, ErrDuplicateLineItem)
}

// CurrentItemByLine fetches one itemized row by (filing, line_item) from the
// schedule table selected by T.
func CurrentItemByLine[T any](s *Store, filingID, lineItem int) (*T, error) {
	var rec T
	err := s.db.Where("filing_id = ? AND line_item = ?", filingID, lineItem).First(&rec).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &rec, nil
}

// CurrentItems lists a filing's itemized rows from the schedule table
// selected by T, ordered by line item.
func CurrentItems[T any](s *Store, filingID int) ([]T, error) {
	var out []T
	err := s.db.Where("filing_id = ?", filingID).Order("line_item").Find(&out).Error
	return out, err
}

// VersionItemByLine fetches one itemized row by (filing version, line_item)
// from the schedule table selected by T.
func VersionItemByLine[T any](s *Store, versionID uint, lineItem int) (*T, error) {
	var rec T
	err := s.db.Where("filing_version_id = ? AND line_item = ?", versionID, lineItem).First(&rec).Error
	if err != nil {
		return nil, asNotFound(err)
	}
	return &rec, nil
}

// VersionItems lists a filing version's itemized rows from the schedule table
// selected by T, ordered by line item.
func VersionItems[T any](s *Store, versionID uint) ([]T, error) {
	var out []T
	err := s.db.Where("filing_version_id = ?", versionID).Order("line_item").Find(&out).Error
	return out, err
}

// create inserts one record on the given handle (store or transaction),
// translating a duplicate-key failure into the caller's taxonomy error.
func create(db *gorm.DB, rec any, dup error) error {
	if err := db.Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dup
		}
		return err
	}
	return nil
}

type itemRecord interface {
	Line() int
	AmountValue() decimal.Decimal
}

func validateSummary(filingID int, sum *models.Form460Summary) error {
	if filingID == 0 {
		return &MissingFieldError{Field: "filing_id"}
	}
	if sum.FromDate.IsZero() {
		return &MissingFieldError{Field: "from_date"}
	}
	if sum.ThruDate.IsZero() {
		return &MissingFieldError{Field: "thru_date"}
	}
	return nil
}

func validateItem(item itemRecord) error {
	if item.Line() < 1 {
		return &MissingFieldError{Field: "line_item"}
	}
	// A body that omits the amount decodes as the decimal zero value, and
	// no itemized line legitimately reports a zero amount.
	if item.AmountValue().IsZero() {
		return &MissingFieldError{Field: "amount"}
	}
	return nil
}

func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// currentItemModels lists every schedule type carrying a filing reference,
// for the orphaning sweep on filing deletion.
func currentItemModels() []any {
	return []any{
		&models.Form460ScheduleAItem{},
		&models.Form460ScheduleCItem{},
		&models.Form460ScheduleDItem{},
		&models.Form460ScheduleEItem{},
		&models.Form460ScheduleESubItem{},
		&models.Form460ScheduleGItem{},
		&models.Form460ScheduleIItem{},
	}
}

// versionItemModels is the version-tier counterpart of currentItemModels.
func versionItemModels() []any {
	return []any{
		&models.Form460ScheduleAItemVersion{},
		&models.Form460ScheduleCItemVersion{},
		&models.Form460ScheduleDItemVersion{},
		&models.Form460ScheduleEItemVersion{},
		&models.Form460ScheduleESubItemVersion{},
		&models.Form460ScheduleGItemVersion{},
		&models.Form460ScheduleIItemVersion{},
	}
}
