// Package domain contains billing account models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/record"
)

// Account is a billable relationship tied to one or more entities.
type Account struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Name    *string      `gorm:"type:text" json:"name,omitempty"`
	StartOn *time.Time   `gorm:"type:date" json:"start_on,omitempty"`
	EndOn   *time.Time   `gorm:"type:date" json:"end_on,omitempty"`

	record.SysFields
}

func (Account) TableName() string { return "acc_accounts" }

// IsBillable reports whether the account can be billed as of the given day:
// no end date, or an end date today or later.
func (a Account) IsBillable(today time.Time) bool {
	if a.EndOn == nil {
		return true
	}
	day := today.UTC().Truncate(24 * time.Hour)
	return !a.EndOn.Before(day)
}

// RelationshipType qualifies how an entity relates to an account.
type RelationshipType string

const (
	RelationshipAccountHolder  RelationshipType = "account_holder"
	RelationshipApprover       RelationshipType = "approver"
	RelationshipBillingContact RelationshipType = "billing_contact"
)

func (t RelationshipType) Valid() bool {
	switch t {
	case RelationshipAccountHolder, RelationshipApprover, RelationshipBillingContact:
		return true
	default:
		return false
	}
}

// EntityAccount links an entity to an account with its own validity window.
// Both "an account's entities" and "an entity's accounts" read this table.
type EntityAccount struct {
	ID               snowflake.ID     `gorm:"primaryKey" json:"id"`
	EntityID         snowflake.ID     `gorm:"not null;index" json:"entity_id"`
	AccountID        snowflake.ID     `gorm:"not null;index" json:"account_id"`
	RelationshipType RelationshipType `gorm:"type:text;not null" json:"relationship_type"`
	StartOn          *time.Time       `gorm:"type:date" json:"start_on,omitempty"`
	EndOn            *time.Time       `gorm:"type:date" json:"end_on,omitempty"`

	record.SysFields
}

func (EntityAccount) TableName() string { return "em_entity_accounts" }

// AccountContract is an agreement attached to an account.
type AccountContract struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	AccountID        snowflake.ID `gorm:"not null;index" json:"account_id"`
	Name             string       `gorm:"type:text;not null" json:"name"`
	StartOn          *time.Time   `gorm:"type:date" json:"start_on,omitempty"`
	EndOn            *time.Time   `gorm:"type:date" json:"end_on,omitempty"`
	NotificationDays *int         `json:"notification_days,omitempty"`
	Status           *string      `gorm:"type:text" json:"status,omitempty"`

	record.SysFields
}

func (AccountContract) TableName() string { return "acc_account_contracts" }
