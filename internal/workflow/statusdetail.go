// Package workflow holds the rules of the IPB approval flow: the derived
// completeness label and the role table that decides who may write what.
package workflow

import "ipbtracker/internal/models"

const (
	LabelComplete        = "Dokumen sudah lengkap"
	LabelAwaitingApprove = "Menunggu Approval"
	LabelEmpty           = "Dokumen kosong"
	LabelIncomplete      = "Dokumen belum lengkap"
)

// Resolve returns the status detail for the given attachment presence flags.
// Rules are evaluated in order and the first match wins.
func Resolve(hasKebun, hasTeknis1, hasTeknis2, hasIPB bool) string {
	if hasIPB {
		return LabelComplete
	}

	if hasKebun && hasTeknis1 && hasTeknis2 {
		return LabelAwaitingApprove
	}

	if !hasKebun && !hasTeknis1 && !hasTeknis2 {
		return LabelEmpty
	}

	return LabelIncomplete
}

// ResolveAttachments is Resolve applied to the slots of a record.
func ResolveAttachments(a models.Attachments) string {
	return Resolve(a.Kebun != "", a.Teknis1 != "", a.Teknis2 != "", a.IPB != "")
}
