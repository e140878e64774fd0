package dto

import (
	"fmt"
	"ipbtracker/internal/models"
	"time"
)

type ItemRequest struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

type ItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

type IPBResponse struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Status       string            `json:"status"`
	StatusDetail string            `json:"statusDetail"`
	TextIPB      string            `json:"textIPB,omitempty"`
	Attachments  map[string]string `json:"attachments"`
	CreatedBy    CreatorResponse   `json:"createdBy"`
	Items        []ItemResponse    `json:"items"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type CreatorResponse struct {
	ID    string `json:"id"`
	Login string `json:"login,omitempty"`
	Role  string `json:"role,omitempty"`
}

type AuditEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func ItemsFromRequest(in []ItemRequest) []models.Item {
	items := make([]models.Item, 0, len(in))
	for _, item := range in {
		items = append(items, models.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
		})
	}
	return items
}

func ItemsToResponse(in []models.Item) []ItemResponse {
	items := make([]ItemResponse, 0, len(in))
	for _, item := range in {
		items = append(items, ItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
		})
	}
	return items
}

// AttachmentURL is the download path of the file stored in slot.
func AttachmentURL(ipbID string, slot models.Slot) string {
	return fmt.Sprintf("/api/ipbs/%s/attachments/%s", ipbID, slot)
}

// IPBToResponse exposes download paths instead of raw storage locators.
func IPBToResponse(ipb *models.IPB) IPBResponse {
	attachments := make(map[string]string, len(models.Slots))
	for _, slot := range models.Slots {
		if ipb.Attachments.Get(slot) != "" {
			attachments[string(slot)] = AttachmentURL(ipb.ID, slot)
		}
	}

	return IPBResponse{
		ID:           ipb.ID,
		Title:        ipb.Title,
		Status:       string(ipb.Status),
		StatusDetail: ipb.StatusDetail,
		TextIPB:      ipb.TextIPB,
		Attachments:  attachments,
		CreatedBy: CreatorResponse{
			ID:    ipb.CreatedByID,
			Login: ipb.CreatedByLogin,
			Role:  string(ipb.CreatedByRole),
		},
		Items:     ItemsToResponse(ipb.Items),
		CreatedAt: ipb.CreatedAt,
		UpdatedAt: ipb.UpdatedAt,
	}
}

func AuditEntriesToResponse(in []*models.AuditEntry) []AuditEntryResponse {
	entries := make([]AuditEntryResponse, 0, len(in))
	for _, e := range in {
		entries = append(entries, AuditEntryResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Action:    string(e.Action),
			Details:   e.Details,
			Timestamp: e.Timestamp,
		})
	}
	return entries
}
