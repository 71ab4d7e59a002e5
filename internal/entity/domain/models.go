// Package domain contains entity and contact-channel models.
package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/meridiancrm/meridian/internal/record"
)

// EntityType distinguishes people from organizations.
type EntityType string

const (
	EntityTypeIndividual    EntityType = "individual"
	EntityTypeNonIndividual EntityType = "non-individual"
)

func (t EntityType) Valid() bool {
	return t == EntityTypeIndividual || t == EntityTypeNonIndividual
}

// Entity is the root identity record. Individuals carry first/last name,
// non-individuals a company name; the two are mutually exclusive by type.
// Type is immutable after creation.
type Entity struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Type        EntityType   `gorm:"type:text;not null" json:"type"`
	FirstName   *string      `gorm:"type:text" json:"first_name,omitempty"`
	LastName    *string      `gorm:"type:text" json:"last_name,omitempty"`
	CompanyName *string      `gorm:"type:text" json:"company_name,omitempty"`
	TIN         *string      `gorm:"column:tin;type:text" json:"tin,omitempty"`

	record.SysFields
}

func (Entity) TableName() string { return "em_entities" }

// AddressParent scopes an address row to its owning table.
type AddressParent string

const (
	AddressParentEntity  AddressParent = "entities"
	AddressParentAccount AddressParent = "accounts"
)

// Address is a mailing address attached to an entity or an account.
type Address struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	ParentID     snowflake.ID  `gorm:"not null;index" json:"parent_id"`
	ParentTable  AddressParent `gorm:"type:text;not null" json:"parent_table"`
	AddressLine1 *string       `gorm:"type:text" json:"address_line1,omitempty"`
	AddressLine2 *string       `gorm:"type:text" json:"address_line2,omitempty"`
	City         *string       `gorm:"type:text" json:"city,omitempty"`
	State        *string       `gorm:"type:text" json:"state,omitempty"`
	Country      *string       `gorm:"type:text" json:"country,omitempty"`
	Zip          *string       `gorm:"type:text" json:"zip,omitempty"`

	record.SysFields
}

func (Address) TableName() string { return "em_addresses" }

// Email is an email contact channel attached to an entity.
type Email struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	EntityID snowflake.ID `gorm:"not null;index" json:"entity_id"`
	Email    string       `gorm:"type:text;not null" json:"email"`

	record.SysFields
}

func (Email) TableName() string { return "em_emails" }

// PhoneNumber is a phone contact channel attached to an entity.
type PhoneNumber struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	EntityID    snowflake.ID `gorm:"not null;index" json:"entity_id"`
	CountryCode *string      `gorm:"type:text" json:"country_code,omitempty"`
	AreaCode    *string      `gorm:"type:text" json:"area_code,omitempty"`
	LineNumber  *string      `gorm:"type:text" json:"line_number,omitempty"`
	Extension   *string      `gorm:"type:text" json:"extension,omitempty"`

	record.SysFields
}

func (PhoneNumber) TableName() string { return "em_numbers" }

// Website is a web contact channel attached to an entity.
type Website struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	EntityID    snowflake.ID `gorm:"not null;index" json:"entity_id"`
	URL         string       `gorm:"type:text;not null" json:"url"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`

	record.SysFields
}

func (Website) TableName() string { return "em_websites" }
