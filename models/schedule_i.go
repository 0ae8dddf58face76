package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule I: miscellaneous cash increases, meaning any transaction that increases
// the cash position of the filer but is not a monetary contribution, loan or
// loan repayment. Derived from RCPT_CD records where FORM_TYPE is 'I'.

// Form460ScheduleIItem is a miscellaneous cash increase itemized on the most
// recent amendment of a filing.
type Form460ScheduleIItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingRef
	ContributionBase

	// Amount of the cash increase in the period covered by the filing
	// (RCPT_CD.AMOUNT).
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`

	// ReceiptDescription describes the cash increase (RCPT_CD.CTRIB_DSCR).
	ReceiptDescription string `gorm:"size:90" json:"receipt_description"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Form460ScheduleIItem) AmountValue() decimal.Decimal { return i.Amount }

// Form460ScheduleIItemVersion is a miscellaneous cash increase itemized on
// one archived version of a filing.
type Form460ScheduleIItemVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingVersionRef
	ContributionBase

	Amount             decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"` // RCPT_CD.AMOUNT
	ReceiptDescription string          `gorm:"size:90" json:"receipt_description"`        // RCPT_CD.CTRIB_DSCR

	CreatedAt time.Time `json:"created_at"`
}

func (i *Form460ScheduleIItemVersion) AmountValue() decimal.Decimal { return i.Amount }
