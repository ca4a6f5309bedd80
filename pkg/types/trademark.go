// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for trademark-engine: the
// canonical trademark vocabulary, search query and result shapes, local store
// records, and configuration.
package types

import "time"

// TrademarkType is the canonical kind of mark. Source-specific vocabularies
// are mapped onto this set; anything unrecognized becomes TypeOther.
type TrademarkType string

const (
	TypeWord             TrademarkType = "WORD"
	TypeFigurative       TrademarkType = "FIGURATIVE"
	TypeCombined         TrademarkType = "COMBINED"
	TypeThreeDimensional TrademarkType = "THREE_DIMENSIONAL"
	TypeSound            TrademarkType = "SOUND"
	TypeColor            TrademarkType = "COLOR"
	TypeOther            TrademarkType = "OTHER"
)

// TrademarkTypes lists every canonical type in declaration order.
var TrademarkTypes = []TrademarkType{
	TypeWord, TypeFigurative, TypeCombined, TypeThreeDimensional,
	TypeSound, TypeColor, TypeOther,
}

// Valid reports whether t is one of the canonical types.
func (t TrademarkType) Valid() bool {
	for _, v := range TrademarkTypes {
		if t == v {
			return true
		}
	}
	return false
}

// TrademarkStatus is the canonical lifecycle state of a mark.
type TrademarkStatus string

const (
	StatusDraft            TrademarkStatus = "DRAFT"
	StatusSubmitted        TrademarkStatus = "SUBMITTED"
	StatusUnderExamination TrademarkStatus = "UNDER_EXAMINATION"
	StatusPublished        TrademarkStatus = "PUBLISHED"
	StatusRegistered       TrademarkStatus = "REGISTERED"
	StatusRejected         TrademarkStatus = "REJECTED"
	StatusAbandoned        TrademarkStatus = "ABANDONED"
	StatusExpired          TrademarkStatus = "EXPIRED"

	// StatusOther holds source statuses with no canonical equivalent.
	StatusOther TrademarkStatus = "OTHER"
)

// TrademarkStatuses lists every canonical status in declaration order.
var TrademarkStatuses = []TrademarkStatus{
	StatusDraft, StatusSubmitted, StatusUnderExamination, StatusPublished,
	StatusRegistered, StatusRejected, StatusAbandoned, StatusExpired, StatusOther,
}

// Valid reports whether s is one of the canonical statuses.
func (s TrademarkStatus) Valid() bool {
	for _, v := range TrademarkStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// TrademarkRecord is a trademark held in the local record store.
type TrademarkRecord struct {
	ID                 string          `json:"id" yaml:"id"`
	Name               string          `json:"name" yaml:"name"`
	Description        string          `json:"description,omitempty" yaml:"description,omitempty"`
	Type               TrademarkType   `json:"type" yaml:"type"`
	Status             TrademarkStatus `json:"status" yaml:"status"`
	Owner              string          `json:"owner,omitempty" yaml:"owner,omitempty"`
	ApplicationNumber  string          `json:"application_number,omitempty" yaml:"application_number,omitempty"`
	RegistrationNumber string          `json:"registration_number,omitempty" yaml:"registration_number,omitempty"`
	FilingDate         *time.Time      `json:"filing_date,omitempty" yaml:"filing_date,omitempty"`
	RegistrationDate   *time.Time      `json:"registration_date,omitempty" yaml:"registration_date,omitempty"`
	ExpirationDate     *time.Time      `json:"expiration_date,omitempty" yaml:"expiration_date,omitempty"`
	NiceClasses        []int           `json:"nice_classes,omitempty" yaml:"nice_classes,omitempty"`
	GoodsServices      string          `json:"goods_services,omitempty" yaml:"goods_services,omitempty"`
	Jurisdiction       string          `json:"jurisdiction" yaml:"jurisdiction"`
	ImageURL           string          `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// TrademarkFilter selects local records. Zero-valued fields do not filter.
type TrademarkFilter struct {
	// NameContains matches names containing the text, ignoring case.
	NameContains string

	Jurisdiction string

	// Classes requires every listed class to be present on the record.
	Classes []int

	Type   TrademarkType
	Status TrademarkStatus

	Offset int
	Limit  int
}
