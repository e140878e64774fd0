package models

import (
	"math"
	"strings"
	"time"
)

type Status string

const (
	StatusDraft       Status = "DRAFT"
	StatusPendingDocs Status = "PENDING_DOCS"
	StatusReview      Status = "REVIEW"
	StatusRevision    Status = "REVISION"
	StatusApproved    Status = "APPROVED"
	StatusDone        Status = "DONE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingDocs, StatusReview, StatusRevision, StatusApproved, StatusDone:
		return true
	}
	return false
}

// Slot names one of the four attachment positions of an IPB. The string
// value doubles as the multipart form field name.
type Slot string

const (
	SlotKebun   Slot = "doc_kebun"
	SlotTeknis1 Slot = "doc_teknis_1"
	SlotTeknis2 Slot = "doc_teknis_2"
	SlotIPB     Slot = "doc_ipb"
)

var Slots = []Slot{SlotKebun, SlotTeknis1, SlotTeknis2, SlotIPB}

func (s Slot) IsValid() bool {
	switch s {
	case SlotKebun, SlotTeknis1, SlotTeknis2, SlotIPB:
		return true
	}
	return false
}

// DeleteField is the form field that asks for the slot to be cleared.
func (s Slot) DeleteField() string {
	return "delete_" + string(s)
}

type Attachments struct {
	Kebun   string `json:"doc_kebun,omitempty"`
	Teknis1 string `json:"doc_teknis_1,omitempty"`
	Teknis2 string `json:"doc_teknis_2,omitempty"`
	IPB     string `json:"doc_ipb,omitempty"`
}

func (a Attachments) Get(slot Slot) string {
	switch slot {
	case SlotKebun:
		return a.Kebun
	case SlotTeknis1:
		return a.Teknis1
	case SlotTeknis2:
		return a.Teknis2
	case SlotIPB:
		return a.IPB
	}
	return ""
}

func (a *Attachments) Set(slot Slot, locator string) {
	switch slot {
	case SlotKebun:
		a.Kebun = locator
	case SlotTeknis1:
		a.Teknis1 = locator
	case SlotTeknis2:
		a.Teknis2 = locator
	case SlotIPB:
		a.IPB = locator
	}
}

func (a Attachments) Locators() []string {
	locators := make([]string, 0, len(Slots))
	for _, slot := range Slots {
		if l := a.Get(slot); l != "" {
			locators = append(locators, l)
		}
	}
	return locators
}

type IPB struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Status         Status      `json:"status"`
	StatusDetail   string      `json:"status_detail"`
	Attachments    Attachments `json:"attachments"`
	TextIPB        string      `json:"text_ipb,omitempty"`
	CreatedByID    string      `json:"created_by_id"`
	CreatedByLogin string      `json:"created_by_login,omitempty"`
	CreatedByRole  Role        `json:"created_by_role,omitempty"`
	Items          []Item      `json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type Item struct {
	ID          string `json:"id"`
	IPBID       string `json:"ipb_id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

const (
	DefaultItemDescription = "Unknown Item"
	DefaultItemUnit        = "pcs"

	// MaxItemQuantity is the largest quantity the items table can store.
	MaxItemQuantity = math.MaxInt32
)

// Normalize fills the defaults used when an item line is imported or
// submitted without some of its columns.
func (i *Item) Normalize() {
	i.Description = strings.TrimSpace(i.Description)
	i.Unit = strings.TrimSpace(i.Unit)
	if i.Description == "" {
		i.Description = DefaultItemDescription
	}
	if i.Quantity < 0 {
		i.Quantity = 0
	}
	if i.Unit == "" {
		i.Unit = DefaultItemUnit
	}
}

// IsValid reports whether the quantity fits the items table. Run it after
// Normalize, which already clears negative quantities.
func (i Item) IsValid() bool {
	return i.Quantity <= MaxItemQuantity
}

type IPBFilter struct {
	Status    Status
	CreatedBy string
	Limit     int
}

func (f IPBFilter) IsValid() bool {
	return f.Status == "" || f.Status.IsValid()
}

func (f IPBFilter) IsEmpty() bool {
	return f.Status == "" && f.CreatedBy == "" && f.Limit == 0
}
