// Package taxid valida el formato de números de registro tributario de Canadá:
// número de negocio federal (BN con cuenta RT), registro provincial (PST/QST) y
// certificados de exención. Son predicados puros: una entrada mal formada simplemente no valida.
package taxid

import (
	"regexp"
	"strings"
	"unicode"
)

// Categorías de número tributario.
const (
	CategoryNational = "NATIONAL"
	CategoryRegional = "REGIONAL"
	CategoryExempt   = "EXEMPT"
)

// Límites del payload de un certificado de exención (inclusive).
const (
	certificateMinLen = 5
	certificateMaxLen = 20
)

// exemptPrefix prefijo opcional de los certificados de exención.
const exemptPrefix = "EXEMPT-"

var (
	// 9 dígitos de BN + "RT" + 4 dígitos de cuenta.
	nationalPattern = regexp.MustCompile(`^[0-9]{9}RT[0-9]{4}$`)
	regionalDigits  = regexp.MustCompile(`^[0-9]{7,15}$`)
	// PST-1234-5678
	regionalPrefixed = regexp.MustCompile(`^[A-Z]{2,4}-[0-9]{4}-[0-9]{4}$`)
)

// Categories lista las categorías soportadas.
func Categories() []string {
	return []string{CategoryNational, CategoryRegional, CategoryExempt}
}

// Validate despacha según la categoría (sin distinguir mayúsculas). Categoría desconocida → false.
func Validate(value, category string) bool {
	switch strings.ToUpper(strings.TrimSpace(category)) {
	case CategoryNational:
		return IsNationalRegistration(value)
	case CategoryRegional:
		return IsRegionalRegistration(value)
	case CategoryExempt:
		return IsExemptionCertificate(value)
	default:
		return false
	}
}

// IsNationalRegistration valida un BN federal: 123456789RT0001 (espacios ignorados).
func IsNationalRegistration(value string) bool {
	return nationalPattern.MatchString(strings.ToUpper(stripSpaces(value)))
}

// IsRegionalRegistration acepta 7 a 15 dígitos o el formato con prefijo PREFIJO-####-####.
func IsRegionalRegistration(value string) bool {
	clean := strings.ToUpper(stripSpaces(value))
	return regionalDigits.MatchString(clean) || regionalPrefixed.MatchString(clean)
}

// IsExemptionCertificate acepta un payload alfanumérico de 5 a 20 caracteres,
// con prefijo EXEMPT- opcional y guiones ignorados.
func IsExemptionCertificate(value string) bool {
	clean := strings.ToUpper(stripSpaces(value))
	clean = strings.TrimPrefix(clean, exemptPrefix)
	clean = strings.ReplaceAll(clean, "-", "")
	n := 0
	for _, r := range clean {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
		n++
	}
	return n >= certificateMinLen && n <= certificateMaxLen
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
