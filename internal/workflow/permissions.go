package workflow

import (
	"ipbtracker/internal/models"
	"slices"
)

// Field names a writable part of an IPB record.
type Field string

// Record fields. Attachment fields share their names with the slots they guard.
const (
	FieldDocKebun   Field = Field(models.SlotKebun)
	FieldDocTeknis1 Field = Field(models.SlotTeknis1)
	FieldDocTeknis2 Field = Field(models.SlotTeknis2)
	FieldDocIPB     Field = Field(models.SlotIPB)
	FieldTitle      Field = "title"
	FieldItems      Field = "items"
	FieldStatus     Field = "status"
	FieldTextIPB    Field = "textIPB"
)

// SlotField maps an attachment slot to the field guarding it. Writing a new
// file and clearing the slot are both writes of that field.
func SlotField(slot models.Slot) Field {
	return Field(slot)
}

var writers = map[Field][]models.Role{
	FieldDocKebun:   {models.RoleKebun, models.RoleAdmin},
	FieldDocTeknis1: {models.RoleTeknis, models.RoleAdmin},
	FieldDocTeknis2: {models.RoleTeknis, models.RoleAdmin},
	FieldDocIPB:     {models.RoleAdmin},
	FieldTitle:      {models.RoleKebun, models.RoleTeknis, models.RoleAdmin},
	FieldItems:      {models.RoleKebun, models.RoleTeknis, models.RoleAdmin},
	FieldStatus:     {models.RoleAdmin},
	FieldTextIPB:    {models.RoleAdmin},
}

// Operation names a whole-record action gated by role.
type Operation string

// Operations checked by CanPerform.
const (
	OpCreate      Operation = "create"
	OpUpdate      Operation = "update"
	OpDelete      Operation = "delete"
	OpImportItems Operation = "import_items"
	OpReadAudit   Operation = "read_audit"
)

var operations = map[Operation][]models.Role{
	OpCreate:      {models.RoleKebun, models.RoleTeknis},
	OpUpdate:      {models.RoleKebun, models.RoleTeknis, models.RoleAdmin},
	OpDelete:      {models.RoleAdmin},
	OpImportItems: writers[FieldItems],
	OpReadAudit:   {models.RoleAdmin},
}

// CanWrite reports whether role may set or clear field. Unknown fields are
// writable by nobody.
func CanWrite(role models.Role, field Field) bool {
	return slices.Contains(writers[field], role)
}

// CanPerform reports whether role may invoke op at all.
func CanPerform(role models.Role, op Operation) bool {
	return slices.Contains(operations[op], role)
}

// Writers returns a copy of the writer set for field.
func Writers(field Field) []models.Role {
	return slices.Clone(writers[field])
}
