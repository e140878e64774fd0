package workflow

import (
	"ipbtracker/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     models.Role
		field    Field
		expected bool
	}{
		{"kebun writes kebun doc", models.RoleKebun, FieldDocKebun, true},
		{"teknis cannot write kebun doc", models.RoleTeknis, FieldDocKebun, false},
		{"admin writes kebun doc", models.RoleAdmin, FieldDocKebun, true},
		{"teknis writes teknis1", models.RoleTeknis, FieldDocTeknis1, true},
		{"teknis writes teknis2", models.RoleTeknis, FieldDocTeknis2, true},
		{"kebun cannot write teknis2", models.RoleKebun, FieldDocTeknis2, false},
		{"only admin writes ipb doc", models.RoleTeknis, FieldDocIPB, false},
		{"admin writes ipb doc", models.RoleAdmin, FieldDocIPB, true},
		{"kebun cannot set status", models.RoleKebun, FieldStatus, false},
		{"admin sets text", models.RoleAdmin, FieldTextIPB, true},
		{"teknis sets title", models.RoleTeknis, FieldTitle, true},
		{"unknown role", models.Role("GUEST"), FieldTitle, false},
		{"unknown field", models.RoleAdmin, Field("statusDetail"), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CanWrite(tt.role, tt.field))
		})
	}
}

func TestCanPerform(t *testing.T) {
	t.Parallel()

	assert.True(t, CanPerform(models.RoleKebun, OpCreate))
	assert.True(t, CanPerform(models.RoleTeknis, OpCreate))
	assert.False(t, CanPerform(models.RoleAdmin, OpCreate))
	assert.True(t, CanPerform(models.RoleAdmin, OpDelete))
	assert.False(t, CanPerform(models.RoleKebun, OpDelete))
	assert.True(t, CanPerform(models.RoleTeknis, OpUpdate))
	assert.True(t, CanPerform(models.RoleKebun, OpImportItems))
	assert.False(t, CanPerform(models.RoleTeknis, OpReadAudit))
}

func TestSlotField(t *testing.T) {
	t.Parallel()

	for _, slot := range models.Slots {
		assert.NotEmpty(t, Writers(SlotField(slot)))
	}
	assert.Equal(t, []models.Role{models.RoleAdmin}, Writers(SlotField(models.SlotIPB)))
}
