package models

import "time"

// Schedule E: payments made by the filer. Derived from EXPN_CD records where
// FORM_TYPE is 'E'. Excludes interest paid on loans received, loans made to
// others, transfers into savings accounts, payments made by agents on the
// filer's behalf (Schedule G) and purchases of assets readily converted to
// cash.
//
// A sub-item is a transaction whose amount is lumped into another "parent"
// payment reported elsewhere on the filing (EXPN_CD rows where MEMO_CODE is
// not blank): payments summarized on Schedule D, vendor payments over $100
// included in credit card payments, agent payments reported on E instead of
// G, and payments on accrued expenses from Schedule F.

// Form460ScheduleEItem is a payment itemized on the most recent amendment of
// a filing.
type Form460ScheduleEItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingRef
	ExpenditureItemBase

	CreatedAt time.Time `json:"created_at"`
}

// Form460ScheduleEItemVersion is a payment itemized on one archived version
// of a filing.
type Form460ScheduleEItemVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingVersionRef
	ExpenditureItemBase

	CreatedAt time.Time `json:"created_at"`
}

// Form460ScheduleESubItem is a payment sub-item on the most recent amendment
// of a filing.
type Form460ScheduleESubItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingRef
	ExpenditureSubItemBase

	CreatedAt time.Time `json:"created_at"`
}

// Form460ScheduleESubItemVersion is a payment sub-item on one archived
// version of a filing.
type Form460ScheduleESubItemVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingVersionRef
	ExpenditureSubItemBase

	CreatedAt time.Time `json:"created_at"`
}
