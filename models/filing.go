package models

import "time"

// Form460Summary holds the cover-sheet and summary-page fields shared by the
// latest-state filing record and every archived version. The numeric totals
// are pointers: a summary line left blank on the form is stored as NULL and
// must never be coerced to zero.
type Form460Summary struct {
	// FilerID identifies the committee that submitted the statement
	// (from FILER_XREF_CD.FILER_ID).
	FilerID        *int   `gorm:"index" json:"filer_id"`
	FilerLastname  string `gorm:"size:200" json:"filer_lastname"` // CVR_CAMPAIGN_DISCLOSURE_CD.FILER_NAML
	FilerFirstname string `gorm:"size:45" json:"filer_firstname"` // CVR_CAMPAIGN_DISCLOSURE_CD.FILER_NAMF

	// DateFiled is the date the statement was received by the filing
	// officer (CVR_CAMPAIGN_DISCLOSURE_CD.RPT_DATE).
	DateFiled *time.Time `gorm:"type:date;index" json:"date_filed"`

	// FromDate and ThruDate bound the reporting period covered by the
	// statement (CVR_CAMPAIGN_DISCLOSURE_CD.FROM_DATE / THRU_DATE).
	FromDate time.Time `gorm:"type:date;index;not null" json:"from_date"`
	ThruDate time.Time `gorm:"type:date;index;not null" json:"thru_date"`

	// ElectionDate is set when the statement is tied to a specific
	// election.
	ElectionDate *time.Time `gorm:"type:date" json:"election_date"`

	// Summary page, column A. Line numbers refer to the printed form.
	MonetaryContributions      *int `json:"monetary_contributions"`       // line 1
	LoansReceived              *int `json:"loans_received"`               // line 2
	SubtotalCashContributions  *int `json:"subtotal_cash_contributions"`  // line 3
	NonmonetaryContributions   *int `json:"nonmonetary_contributions"`    // line 4
	TotalContributions         *int `json:"total_contributions"`          // line 5
	PaymentsMade               *int `json:"payments_made"`                // line 6
	LoansMade                  *int `json:"loans_made"`                   // line 7
	SubtotalCashPayments       *int `json:"subtotal_cash_payments"`       // line 8
	UnpaidBills                *int `json:"unpaid_bills"`                 // line 9
	NonmonetaryAdjustment      *int `json:"nonmonetary_adjustment"`       // line 10
	TotalExpendituresMade      *int `json:"total_expenditures_made"`      // line 11
	BeginCashBalance           *int `json:"begin_cash_balance"`           // line 12
	CashReceipts               *int `json:"cash_receipts"`                // line 13
	MiscellaneousCashIncreases *int `json:"miscellaneous_cash_increases"` // line 14
	CashPayments               *int `json:"cash_payments"`                // line 15
	EndingCashBalance          *int `json:"ending_cash_balance"`          // line 16
	LoanGuaranteesReceived     *int `json:"loan_guarantees_received"`     // line 17
	CashEquivalents            *int `json:"cash_equivalents"`             // line 18
	OutstandingDebts           *int `json:"outstanding_debts"`            // line 19
}

// Form460Filing is the most recent version of one Form 460 filing. It is
// overwritten wholesale whenever a later amendment is ingested; the history
// lives in Form460FilingVersion.
type Form460Filing struct {
	// FilingID is stable across amendments
	// (CVR_CAMPAIGN_DISCLOSURE_CD.FILING_ID).
	FilingID int `gorm:"primaryKey;index:idx_form460_filings_filing_amendment,priority:1" json:"filing_id"`

	// AmendmentCount mirrors the highest amendment id seen for this filing
	// (maximum CVR_CAMPAIGN_DISCLOSURE_CD.AMEND_ID).
	AmendmentCount int `gorm:"not null;index;index:idx_form460_filings_filing_amendment,priority:2" json:"amendment_count"`

	Form460Summary

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Form460FilingVersion is one amendment of one Form 460 filing, amend id 0
// being the original statement. Rows are immutable once created and survive
// deletion of the parent filing with FilingID nulled.
type Form460FilingVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// FilingID is a logical reference to Form460Filing; nullable and not
	// enforced as a database constraint.
	FilingID *int `gorm:"index:,unique,composite:filing_amend" json:"filing_id"`

	// AmendID identifies the version of the filing
	// (CVR_CAMPAIGN_DISCLOSURE_CD.AMEND_ID).
	AmendID int `gorm:"not null;index:,unique,composite:filing_amend" json:"amend_id"`

	Form460Summary

	CreatedAt time.Time `json:"created_at"`
}
