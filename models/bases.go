package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shared field groups factored out of the itemized schedule records. They are
// embedded by value into the concrete schedule types; they are never tables of
// their own. Provenance comments name the raw CAL-ACCESS column each field is
// populated from.

// ContributionBase carries the fields common to every itemized receipt
// (Schedules A, C and I), all sourced from RCPT_CD rows.
type ContributionBase struct {
	DateReceived     *time.Time `gorm:"type:date" json:"date_received"`      // RCPT_CD.RCPT_DATE
	DateReceivedThru *time.Time `gorm:"type:date" json:"date_received_thru"` // RCPT_CD.DATE_THRU

	// TransactionType distinguishes regular receipts from forgiven loans,
	// intermediary reports, returns and transfers (RCPT_CD.TRAN_TYPE).
	TransactionType     string `gorm:"size:1" json:"transaction_type"`
	TransactionID       string `gorm:"size:20" json:"transaction_id"`        // RCPT_CD.TRAN_ID
	MemoReferenceNumber string `gorm:"size:20" json:"memo_reference_number"` // RCPT_CD.MEMO_REFNO

	// ContributorCode identifies the kind of contributor: committee,
	// individual, other, political party or small contributor committee
	// (RCPT_CD.ENTITY_CD).
	ContributorCode           string `gorm:"size:3" json:"contributor_code"`
	ContributorCommitteeID    string `gorm:"size:9" json:"contributor_committee_id"` // RCPT_CD.CMTE_ID
	ContributorTitle          string `gorm:"size:10" json:"contributor_title"`       // RCPT_CD.CTRIB_NAMT
	ContributorLastname       string `gorm:"size:200" json:"contributor_lastname"`   // RCPT_CD.CTRIB_NAML
	ContributorFirstname      string `gorm:"size:255" json:"contributor_firstname"`  // RCPT_CD.CTRIB_NAMF
	ContributorNameSuffix     string `gorm:"size:10" json:"contributor_name_suffix"` // RCPT_CD.CTRIB_NAMS
	ContributorCity           string `gorm:"size:30" json:"contributor_city"`        // RCPT_CD.CTRIB_CITY
	ContributorState          string `gorm:"size:2" json:"contributor_state"`        // RCPT_CD.CTRIB_ST
	ContributorZip            string `gorm:"size:10" json:"contributor_zip"`         // RCPT_CD.CTRIB_ZIP4
	ContributorEmployer       string `gorm:"size:200" json:"contributor_employer"`   // RCPT_CD.CTRIB_EMP
	ContributorOccupation     string `gorm:"size:60" json:"contributor_occupation"`  // RCPT_CD.CTRIB_OCC
	ContributorIsSelfEmployed bool   `gorm:"default:false" json:"contributor_is_self_employed"`

	// Cumulative amount received from the contributor in the calendar year
	// as of the filing date (RCPT_CD.CUM_YTD).
	CumulativeYTDAmount *decimal.Decimal `gorm:"type:numeric(14,2)" json:"cumulative_ytd_amount"`
}

// ExpenditureItemBase carries the fields common to every itemized payment
// (Schedules D, E and G), all sourced from EXPN_CD rows.
type ExpenditureItemBase struct {
	// PayeeCode identifies the kind of payee, using the same entity codes
	// as contributors (EXPN_CD.ENTITY_CD).
	PayeeCode        string `gorm:"size:3" json:"payee_code"`
	PayeeCommitteeID string `gorm:"size:9" json:"payee_committee_id"` // EXPN_CD.CMTE_ID
	PayeeTitle       string `gorm:"size:10" json:"payee_title"`       // EXPN_CD.PAYEE_NAMT
	PayeeLastname    string `gorm:"size:200" json:"payee_lastname"`   // EXPN_CD.PAYEE_NAML, or business name
	PayeeFirstname   string `gorm:"size:45" json:"payee_firstname"`   // EXPN_CD.PAYEE_NAMF
	PayeeNameSuffix  string `gorm:"size:10" json:"payee_name_suffix"` // EXPN_CD.PAYEE_NAMS
	PayeeCity        string `gorm:"size:30" json:"payee_city"`        // EXPN_CD.PAYEE_CITY
	PayeeState       string `gorm:"size:2" json:"payee_state"`        // EXPN_CD.PAYEE_ST
	PayeeZip         string `gorm:"size:10" json:"payee_zip"`         // EXPN_CD.PAYEE_ZIP4

	PaymentCode        string `gorm:"size:3" json:"payment_code"`          // EXPN_CD.EXPN_CODE
	PaymentDescription string `gorm:"size:400" json:"payment_description"` // EXPN_CD.EXPN_DSCR

	// Amount paid to the payee in the period covered by the filing
	// (EXPN_CD.AMOUNT).
	Amount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`

	// Cumulative amount paid to the payee in the calendar year as of the
	// filing date (EXPN_CD.CUM_YTD).
	CumulativeYTDAmount *decimal.Decimal `gorm:"type:numeric(14,2)" json:"cumulative_ytd_amount"`

	TransactionID       string `gorm:"size:20" json:"transaction_id"`        // EXPN_CD.TRAN_ID
	MemoReferenceNumber string `gorm:"size:20" json:"memo_reference_number"` // EXPN_CD.MEMO_REFNO

	// SupportOpposeCode is S or O when the payment supports or opposes a
	// candidate or ballot measure (EXPN_CD.SUP_OPP_CD).
	SupportOpposeCode  string `gorm:"size:1" json:"support_oppose_code"`
	BallotMeasureName  string `gorm:"size:200" json:"ballot_measure_name"` // EXPN_CD.BAL_NAME
	CandidateLastname  string `gorm:"size:200" json:"candidate_lastname"`  // EXPN_CD.CAND_NAML
	CandidateFirstname string `gorm:"size:45" json:"candidate_firstname"`  // EXPN_CD.CAND_NAMF
}

// AmountValue exposes the payment amount for required-field validation.
func (b *ExpenditureItemBase) AmountValue() decimal.Decimal { return b.Amount }

// ExpenditureSubItemBase extends the expenditure fields for transactions whose
// amount is lumped into another "parent" payment reported elsewhere on the
// filing (Schedule E sub-items and Schedule G).
type ExpenditureSubItemBase struct {
	ExpenditureItemBase

	// Transaction id of the parent payment the sub-item is lumped into
	// (EXPN_CD.BAKREF_TID).
	ParentTransactionID string `gorm:"size:20" json:"parent_transaction_id"`
}
