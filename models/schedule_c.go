package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Schedule C: nonmonetary contributions received. Derived from RCPT_CD records
// where FORM_TYPE is 'C'. The monetary amount of these items is the fair
// market value of the donated goods or services.

// Form460ScheduleCItem is a nonmonetary contribution itemized on the most
// recent amendment of a filing.
type Form460ScheduleCItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingRef
	ContributionBase

	// FairMarketValue is what it would cost to purchase the donated goods
	// or services on the open market (RCPT_CD.AMOUNT).
	FairMarketValue decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"fair_market_value"`

	// ContributionDescription describes the contributed goods or services
	// (RCPT_CD.CTRIB_DSCR).
	ContributionDescription string `gorm:"size:90" json:"contribution_description"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Form460ScheduleCItem) AmountValue() decimal.Decimal { return i.FairMarketValue }

// Form460ScheduleCItemVersion is a nonmonetary contribution itemized on one
// archived version of a filing.
type Form460ScheduleCItemVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingVersionRef
	ContributionBase

	FairMarketValue         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"fair_market_value"` // RCPT_CD.AMOUNT
	ContributionDescription string          `gorm:"size:90" json:"contribution_description"`              // RCPT_CD.CTRIB_DSCR

	CreatedAt time.Time `json:"created_at"`
}

func (i *Form460ScheduleCItemVersion) AmountValue() decimal.Decimal { return i.FairMarketValue }
