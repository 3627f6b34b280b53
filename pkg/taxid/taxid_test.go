package taxid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/salestax-api/pkg/taxid"
)

func TestIsNationalRegistration(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"123456789RT0001", true},
		{"123456789rt0001", true},
		{"123 456 789 RT 0001", true},
		{"123456789", false},
		{"12345678RT0001", false},
		{"1234567890RT0001", false},
		{"12345678XRT0001", false},
		{"123456789RP0001", false},
		{"123456789RT001", false},
		{"123456789RT00A1", false},
		{"123456789-RT-0001", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, taxid.IsNationalRegistration(tt.value), "valor %q", tt.value)
	}
}

func TestIsRegionalRegistration(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1234567", true},
		{"123456789012345", true},
		{"1006 123 456", true},
		{"PST-1234-5678", true},
		{"pst-1234-5678", true},
		{"QST-0001-0002", true},
		{"123456", false},
		{"1234567890123456", false},
		{"PST-123-5678", false},
		{"P-1234-5678", false},
		{"PST12345678", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, taxid.IsRegionalRegistration(tt.value), "valor %q", tt.value)
	}
}

func TestIsExemptionCertificate(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"EXEMPT-12345", true},
		{"exempt-ab123", true},
		{"12345", true},
		{"CERT-2024-0001", true},
		{"A1B2C3D4E5F6G7H8I9J0", true},
		{"EXEMPT-1234", false},
		{"1234", false},
		{"A1B2C3D4E5F6G7H8I9J0K", false},
		{"EXEMPT-", false},
		{"CERT_2024#1", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, taxid.IsExemptionCertificate(tt.value), "valor %q", tt.value)
	}
}

func TestValidate_DespachoPorCategoria(t *testing.T) {
	assert.True(t, taxid.Validate("123456789RT0001", taxid.CategoryNational))
	assert.False(t, taxid.Validate("123456789", taxid.CategoryNational))
	assert.True(t, taxid.Validate("PST-1234-5678", "regional"))
	assert.True(t, taxid.Validate("EXEMPT-99999", "Exempt"))
	assert.False(t, taxid.Validate("123456789RT0001", "FEDERAL"), "categoría desconocida no valida")
	assert.False(t, taxid.Validate("", ""))
}
