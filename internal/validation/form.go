package validation

import (
	"github.com/dropDatabas3/boardz/internal/domain/repository"
)

// Sub-campos del componente address, en el orden en que el formulario los
// renderiza. Los errores se emiten con key "address.<subcampo>".
var addressFields = []struct {
	key     string
	message string
}{
	{"street", "Street address is required"},
	{"city", "City is required"},
	{"state", "State is required"},
	{"zipCode", "ZIP code is required"},
	{"country", "Country is required"},
}

// FormValidator valida submissions de una página contra la configuración
// vigente y las definiciones del registry.
//
// La construcción arma el lookup name → definición una sola vez; Validate
// puede llamarse por cada submission sin costo adicional.
type FormValidator struct {
	config *repository.PageConfig
	byName map[string]repository.ComponentDefinition
}

// NewFormValidator crea el validador para una página.
// config puede ser nil: en ese caso toda submission es aceptable.
func NewFormValidator(config *repository.PageConfig, defs []repository.ComponentDefinition) *FormValidator {
	byName := make(map[string]repository.ComponentDefinition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	return &FormValidator{config: config, byName: byName}
}

// Validate chequea los valores submitidos contra los componentes de la
// página. Retorna un mapa campo → mensaje; un mapa vacío significa que la
// submission es aceptable.
//
// Reglas:
//   - Se itera config.Components en orden; la salida es determinística.
//   - Campos del registry que no están en la página se ignoran por completo.
//   - Nombres en la página sin definición en el registry se saltean en
//     silencio (inconsistencia tolerada, no un error).
//   - Solo valores string no vacíos pasan por la validación de formato; el
//     required-check aplica a cualquier valor vacío.
func (v *FormValidator) Validate(values map[string]any) map[string]string {
	errors := make(map[string]string)
	if v.config == nil {
		return errors
	}

	for _, name := range v.config.Components {
		def, ok := v.byName[name]
		if !ok {
			continue
		}

		if def.Type == repository.TypeAddress {
			v.validateAddress(def, values[def.Name], errors)
			continue
		}

		val := values[def.Name]
		if isEmptyValue(val) {
			if def.Required {
				errors[def.Name] = def.Label + " is required"
			}
			continue
		}

		if s, ok := val.(string); ok {
			if msg := v.validateByType(s, def.Type); msg != "" {
				errors[def.Name] = msg
			}
		}
	}
	return errors
}

// validateAddress maneja el componente compuesto address. Si es required,
// cada sub-campo vacío emite su error. El zipCode presente se valida contra
// el patrón ZIP independientemente del flag required.
func (v *FormValidator) validateAddress(def repository.ComponentDefinition, value any, errors map[string]string) {
	addr, _ := value.(map[string]any)

	if def.Required {
		for _, f := range addressFields {
			if isBlank(stringField(addr, f.key)) {
				errors["address."+f.key] = f.message
			}
		}
	}

	if zip := stringField(addr, "zipCode"); !isBlank(zip) {
		if msg := ValidateZipCode(zip); msg != "" {
			errors["address.zipCode"] = msg
		}
	}
}

// validateByType corre el validador de formato para valores no vacíos.
func (v *FormValidator) validateByType(value string, t repository.ComponentType) string {
	switch t {
	case repository.TypeEmail:
		return ValidateEmail(value)
	case repository.TypeURL:
		return ValidateURL(value)
	case repository.TypePhone:
		return ValidatePhone(value)
	case repository.TypeDate:
		return ValidateDate(value)
	case repository.TypeNumber:
		return ValidateNumber(value, nil, nil)
	case repository.TypeText:
		return ValidateText(value, 1, TextMaxLen)
	case repository.TypeTextarea:
		return ValidateText(value, 1, TextareaMaxLen)
	default:
		return ""
	}
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return isBlank(s)
	}
	return false
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// SanitizeSubmission limpia los valores de una submission según el tipo de
// cada componente de la página. Campos sin definición o fuera de la página
// no se incluyen en el resultado: el documento de perfil solo acepta keys
// que el registry declara para ese paso.
func SanitizeSubmission(values map[string]any, config *repository.PageConfig, defs []repository.ComponentDefinition) map[string]any {
	out := make(map[string]any)
	if config == nil {
		return out
	}
	byName := make(map[string]repository.ComponentDefinition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}
	for _, name := range config.Components {
		def, ok := byName[name]
		if !ok {
			continue
		}
		raw, present := values[def.Name]
		if !present {
			continue
		}
		out[def.Name] = SanitizeField(raw, def.Type)
	}
	return out
}
