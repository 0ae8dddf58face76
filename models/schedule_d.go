package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule D: contributions and independent expenditures in support or
// opposition to other candidates and ballot measures. Derived from EXPN_CD
// records where FORM_TYPE is 'D'.

// Form460ScheduleDItem is a support/oppose payment itemized on the most
// recent amendment of a filing.
type Form460ScheduleDItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingRef
	ExpenditureItemBase

	// CumulativeElectionAmount is set when the supported candidate is
	// subject to contribution limits: the cumulative amount given by the
	// filer during the election cycle as of the filing date
	// (EXPN_CD.CUM_OTH).
	CumulativeElectionAmount *decimal.Decimal `gorm:"type:numeric(14,2)" json:"cumulative_election_amount"`

	CreatedAt time.Time `json:"created_at"`
}

// Form460ScheduleDItemVersion is a support/oppose payment itemized on one
// archived version of a filing.
type Form460ScheduleDItemVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingVersionRef
	ExpenditureItemBase

	CumulativeElectionAmount *decimal.Decimal `gorm:"type:numeric(14,2)" json:"cumulative_election_amount"` // EXPN_CD.CUM_OTH

	CreatedAt time.Time `json:"created_at"`
}
