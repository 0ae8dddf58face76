package models

import "time"

// Schedule G: payments made by agents or independent contractors on behalf of
// the filer. Derived from EXPN_CD records where FORM_TYPE is 'G'.

// Form460ScheduleGItem is an agent payment itemized on the most recent
// amendment of a filing.
type Form460ScheduleGItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingRef
	ExpenditureSubItemBase

	AgentTitle      string `gorm:"size:10" json:"agent_title"`       // EXPN_CD.AGENT_NAMT
	AgentLastname   string `gorm:"size:200" json:"agent_lastname"`   // EXPN_CD.AGENT_NAML, or business name
	AgentFirstname  string `gorm:"size:45" json:"agent_firstname"`   // EXPN_CD.AGENT_NAMF
	AgentNameSuffix string `gorm:"size:10" json:"agent_name_suffix"` // EXPN_CD.AGENT_NAMS

	// ParentSchedule is E or F, indicating which schedule carries the
	// parent item (EXPN_CD.G_FROM_E_F).
	ParentSchedule string `gorm:"size:1" json:"parent_schedule"`

	CreatedAt time.Time `json:"created_at"`
}

// Form460ScheduleGItemVersion is an agent payment itemized on one archived
// version of a filing.
type Form460ScheduleGItemVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`
	FilingVersionRef
	ExpenditureSubItemBase

	AgentTitle      string `gorm:"size:10" json:"agent_title"`       // EXPN_CD.AGENT_NAMT
	AgentLastname   string `gorm:"size:200" json:"agent_lastname"`   // EXPN_CD.AGENT_NAML
	AgentFirstname  string `gorm:"size:45" json:"agent_firstname"`   // EXPN_CD.AGENT_NAMF
	AgentNameSuffix string `gorm:"size:10" json:"agent_name_suffix"` // EXPN_CD.AGENT_NAMS

	ParentSchedule string `gorm:"size:1" json:"parent_schedule"` // EXPN_CD.G_FROM_E_F

	CreatedAt time.Time `json:"created_at"`
}
