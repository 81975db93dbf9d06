package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

// Options ajusta la validación por campo. Los zero values aplican defaults
// por tipo (ver ValidateField).
type Options struct {
	Required  bool
	MinLength int
	MaxLength int
	Min       *float64
	Max       *float64
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateEmail valida formato de email. Retorna "" si es válido.
func ValidateEmail(value string) string {
	if isBlank(value) {
		return msgEmailRequired
	}
	if !emailRe.MatchString(value) {
		return msgEmailInvalid
	}
	return ""
}

// ValidateURL valida que el valor sea una URL absoluta parseable.
func ValidateURL(value string) string {
	if isBlank(value) {
		return msgURLRequired
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return msgURLInvalid
	}
	return ""
}

// ValidatePhone valida un número de teléfono: al menos 10 caracteres de
// dígitos/puntuación una vez removidos los espacios.
func ValidatePhone(value string) string {
	if isBlank(value) {
		return msgPhoneRequired
	}
	cleaned := strings.ReplaceAll(value, " ", "")
	if !phoneRe.MatchString(cleaned) {
		return msgPhoneInvalid
	}
	return ""
}

// ValidateDate valida que el valor parsee como fecha y no esté en el futuro.
func ValidateDate(value string) string {
	if isBlank(value) {
		return msgDateRequired
	}
	t, ok := parseDate(value)
	if !ok {
		return msgDateInvalid
	}
	if t.After(time.Now()) {
		return msgDateFuture
	}
	return ""
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateText valida longitud de texto libre.
func ValidateText(value string, minLen, maxLen int) string {
	if isBlank(value) {
		return msgRequired
	}
	if len(value) < minLen {
		return fmt.Sprintf("Text must be at least %d characters", minLen)
	}
	if len(value) > maxLen {
		return fmt.Sprintf("Text must be no more than %d characters", maxLen)
	}
	return ""
}

// ValidateNumber valida que el valor sea numérico y dentro de [min, max].
func ValidateNumber(value any, min, max *float64) string {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return msgNumberInvalid
		}
		n = f
	default:
		return msgNumberInvalid
	}
	if min != nil && n < *min {
		return fmt.Sprintf("Number must be at least %s", formatNum(*min))
	}
	if max != nil && n > *max {
		return fmt.Sprintf("Number must be no more than %s", formatNum(*max))
	}
	return ""
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ValidateComponentName valida un nombre de componente del registry:
// ^[a-z_]+$, longitud 2-50. La misma regla aplica a identificadores
// genéricos derivados de SanitizeComponentName.
func ValidateComponentName(value string) string {
	if isBlank(value) {
		return msgNameRequired
	}
	if !componentNameRe.MatchString(value) {
		return msgNameInvalid
	}
	if len(value) < ComponentNameMinLen {
		return fmt.Sprintf("Component name must be at least %d characters", ComponentNameMinLen)
	}
	if len(value) > ComponentNameMaxLen {
		return fmt.Sprintf("Component name must be no more than %d characters", ComponentNameMaxLen)
	}
	return ""
}

// ValidateZipCode valida un ZIP estadounidense (5 dígitos o 5+4).
func ValidateZipCode(value string) string {
	if !zipCodeRe.MatchString(strings.TrimSpace(value)) {
		return msgZipInvalid
	}
	return ""
}

// ValidateField valida un valor según tipo y opciones.
// El required-check va primero: vacío + required falla, vacío + opcional es
// válido sin mirar el formato. Retorna "" cuando el valor es aceptable.
func ValidateField(value any, t repository.ComponentType, opts Options) string {
	s, isStr := value.(string)
	empty := !isStr || isBlank(s)
	if t == repository.TypeNumber {
		// number acepta valores ya numéricos además de strings
		switch value.(type) {
		case float64, float32, int, int64:
			empty = false
		}
	}

	if empty {
		if opts.Required {
			return msgRequired
		}
		return ""
	}

	switch t {
	case repository.TypeEmail:
		return ValidateEmail(s)
	case repository.TypeURL:
		return ValidateURL(s)
	case repository.TypePhone:
		return ValidatePhone(s)
	case repository.TypeDate:
		return ValidateDate(s)
	case repository.TypeNumber:
		return ValidateNumber(value, opts.Min, opts.Max)
	case repository.TypeText:
		return ValidateText(s, textMin(opts), textMax(opts, TextMaxLen))
	case repository.TypeTextarea:
		return ValidateText(s, textMin(opts), textMax(opts, TextareaMaxLen))
	default:
		// address se valida en el motor de formularios, no acá
		return msgUnknownType
	}
}

func textMin(opts Options) int {
	if opts.MinLength > 0 {
		return opts.MinLength
	}
	return 1
}

func textMax(opts Options, def int) int {
	if opts.MaxLength > 0 {
		return opts.MaxLength
	}
	return def
}
