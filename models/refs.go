package models

// FilingRef ties an itemized record to the latest version of a Form 460
// filing. The reference is logical only: AutoMigrate creates no foreign key
// constraint for it, and deleting the filing nulls it out application-side
// instead of cascading, so orphaned items remain queryable history.
//
// The empty index name plus a composite id makes GORM derive a distinct
// per-table index name, so the same embedded struct yields a valid
// (filing_id, line_item) unique index on every schedule table.
type FilingRef struct {
	FilingID *int `gorm:"index:,unique,composite:filing_line" json:"filing_id"` // from RCPT_CD.FILING_ID / EXPN_CD.FILING_ID
	LineItem int  `gorm:"not null;index:,unique,composite:filing_line" json:"line_item"`
}

// Parent reports the referenced filing id, if the reference is still set.
func (r *FilingRef) Parent() (int, bool) {
	if r.FilingID == nil {
		return 0, false
	}
	return *r.FilingID, true
}

func (r *FilingRef) SetParent(filingID int) { r.FilingID = &filingID }

func (r *FilingRef) Line() int { return r.LineItem }

// FilingVersionRef ties an itemized record to one archived version of a
// Form 460 filing. Same contract as FilingRef: nullable, unenforced,
// nulled on parent deletion.
type FilingVersionRef struct {
	FilingVersionID *uint `gorm:"index:,unique,composite:version_line" json:"filing_version_id"`
	LineItem        int   `gorm:"not null;index:,unique,composite:version_line" json:"line_item"`
}

// ParentVersion reports the referenced filing version id, if still set.
func (r *FilingVersionRef) ParentVersion() (uint, bool) {
	if r.FilingVersionID == nil {
		return 0, false
	}
	return *r.FilingVersionID, true
}

func (r *FilingVersionRef) SetParentVersion(id uint) { r.FilingVersionID = &id }

func (r *FilingVersionRef) Line() int { return r.LineItem }
