// Package models defines the processed Form 460 schema: one latest-state
// record plus an append-only version history per filing, and a current/version
// table pair for each itemized schedule. Parent references are logical only:
// nullable columns without database constraints, nulled application-side when
// the parent is deleted.
package models

import "github.com/shopspring/decimal"

// CurrentItem is satisfied by every itemized record attached to the latest
// version of a filing (via the embedded FilingRef).
type CurrentItem interface {
	Parent() (int, bool)
	SetParent(int)
	Line() int
	AmountValue() decimal.Decimal
}

// VersionItem is satisfied by every itemized record attached to one archived
// filing version (via the embedded FilingVersionRef).
type VersionItem interface {
	ParentVersion() (uint, bool)
	SetParentVersion(uint)
	Line() int
	AmountValue() decimal.Decimal
}

// All returns one zero value of every persisted entity, in migration order.
func All() []any {
	return []any{
		&Form460Filing{},
		&Form460FilingVersion{},
		&Form460ScheduleAItem{},
		&Form460ScheduleAItemVersion{},
		&Form460ScheduleCItem{},
		&Form460ScheduleCItemVersion{},
		&Form460ScheduleDItem{},
		&Form460ScheduleDItemVersion{},
		&Form460ScheduleEItem{},
		&Form460ScheduleEItemVersion{},
		&Form460ScheduleESubItem{},
		&Form460ScheduleESubItemVersion{},
		&Form460ScheduleGItem{},
		&Form460ScheduleGItemVersion{},
		&Form460ScheduleIItem{},
		&Form460ScheduleIItemVersion{},
	}
}
