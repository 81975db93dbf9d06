package validation

import (
	"strconv"
	"strings"

	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

// SanitizeString limpia texto libre: trim, remueve tags <script> y escapa
// los caracteres especiales de HTML. Idempotente: un valor ya escapado no se
// vuelve a escapar.
func SanitizeString(input any) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	s = scriptTagRe.ReplaceAllString(s, "")
	return escapeHTML(s)
}

// Entidades que produce escapeHTML. Un '&' que ya abre una de estas se deja
// intacto para que sanitizar dos veces dé el mismo resultado.
var knownEntities = []string{"&lt;", "&gt;", "&quot;", "&#x27;", "&amp;"}

func escapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#x27;")
		case '&':
			if startsEntity(s[i:]) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func startsEntity(s string) bool {
	for _, e := range knownEntities {
		if strings.HasPrefix(s, e) {
			return true
		}
	}
	return false
}

// SanitizeEmail normaliza un email: lowercase y solo [a-z0-9@._-].
func SanitizeEmail(input any) string {
	s := strings.ToLower(SanitizeString(input))
	return emailCharsRe.ReplaceAllString(s, "")
}

// SanitizePhone deja solo dígitos y puntuación telefónica.
func SanitizePhone(input any) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	return phoneCharsRe.ReplaceAllString(s, "")
}

// SanitizeURL hace trim y antepone https:// cuando falta el scheme.
func SanitizeURL(input any) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s != "" && !urlSchemeRe.MatchString(s) {
		return "https://" + s
	}
	return s
}

// SanitizeNumber parsea a float64 descartando caracteres no numéricos.
// Retorna nil cuando no hay número parseable.
func SanitizeNumber(input any) any {
	switch v := input.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		cleaned := numberCharsRe.ReplaceAllString(v, "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return f
	default:
		return nil
	}
}

// SanitizeComponentName normaliza un nombre para el registry: lowercase,
// trim, caracteres inválidos a '_', colapsa repetidos y pela los extremos.
func SanitizeComponentName(input any) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(strings.ToLower(s))
	s = nameCharsRe.ReplaceAllString(s, "_")
	s = underscoresRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// SanitizeField limpia un valor según el tipo de componente.
// Para tipos desconocidos cae a SanitizeString.
func SanitizeField(value any, t repository.ComponentType) any {
	switch t {
	case repository.TypeEmail:
		return SanitizeEmail(value)
	case repository.TypeURL:
		return SanitizeURL(value)
	case repository.TypePhone:
		return SanitizePhone(value)
	case repository.TypeNumber:
		return SanitizeNumber(value)
	case repository.TypeDate:
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s)
		}
		return ""
	case repository.TypeAddress:
		return sanitizeAddress(value)
	case repository.TypeText, repository.TypeTextarea:
		return SanitizeString(value)
	default:
		return SanitizeString(value)
	}
}

// sanitizeAddress limpia cada sub-campo string del objeto address.
func sanitizeAddress(value any) any {
	m, ok := value.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = SanitizeString(s)
		} else {
			out[k] = v
		}
	}
	return out
}
