package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule A: monetary contributions received. Derived from RCPT_CD records
// where FORM_TYPE is 'A' or 'A-1' (contributions transferred to special
// election committees, formerly itemized on Schedule A-1, are included).

// Form460ScheduleAItem is a monetary contribution itemized on the most recent
// amendment of a filing.
type Form460ScheduleAItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingRef
	ContributionBase

	// Amount received from the contributor in the period covered by the
	// filing (RCPT_CD.AMOUNT).
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Form460ScheduleAItem) AmountValue() decimal.Decimal { return i.Amount }

// Form460ScheduleAItemVersion is a monetary contribution itemized on one
// archived version of a filing.
type Form460ScheduleAItemVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingVersionRef
	ContributionBase

	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"` // RCPT_CD.AMOUNT

	CreatedAt time.Time `json:"created_at"`
}

func (i *Form460ScheduleAItemVersion) AmountValue() decimal.Decimal { return i.Amount }
