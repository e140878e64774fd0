package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"spaces", "Dok Kebun 01.pdf", "Dok_Kebun_01.pdf"},
		{"traversal", "../../etc/passwd", "passwd"},
		{"windows path", "C:\\Users\\kebun\\scan.jpg", "scan.jpg"},
		{"only dots", "..", "file"},
		{"empty", "", "file"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitize(tt.input))
		})
	}
}

func TestObjectName_Unique(t *testing.T) {
	t.Parallel()

	a := ObjectName("scan.pdf")
	b := ObjectName("scan.pdf")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "-scan.pdf"))
	assert.NotContains(t, a, "/")
}

func TestOriginalName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "surat_kebun.pdf", OriginalName(ObjectName("surat kebun.pdf")))
	assert.Equal(t, "plain.pdf", OriginalName("plain.pdf"))
	assert.Equal(t, "abc-def", OriginalName("abc-def"))
	assert.Equal(t, "123-not-a-uuid", OriginalName("123-not-a-uuid"))
}
