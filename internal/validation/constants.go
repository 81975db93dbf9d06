package validation

import "regexp"

// Patrones de validación. Centralizados para que sanitizers, validators y
// tests usen exactamente los mismos.
var (
	emailRe         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe         = regexp.MustCompile(`^[0-9()+\-.\s]{10,}$`)
	componentNameRe = regexp.MustCompile(`^[a-z_]+$`)
	zipCodeRe       = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

	scriptTagRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)

	emailCharsRe  = regexp.MustCompile(`[^a-z0-9@._-]`)
	phoneCharsRe  = regexp.MustCompile(`[^0-9+()\-.\s]`)
	numberCharsRe = regexp.MustCompile(`[^0-9.\-]`)
	nameCharsRe   = regexp.MustCompile(`[^a-z0-9_]`)
	underscoresRe = regexp.MustCompile(`_{2,}`)
	urlSchemeRe   = regexp.MustCompile(`^https?://`)
)

// Límites de longitud.
const (
	ComponentNameMinLen = 2
	ComponentNameMaxLen = 50

	TextMaxLen     = 1000
	TextareaMaxLen = 5000
)

// Formatos de fecha aceptados, en orden de preferencia. El formulario envía
// ISO (input type=date); los demás cubren valores pre-cargados o importados.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// Mensajes de error visibles al usuario final. El frontend los muestra
// textualmente, no cambiar sin coordinar con producto.
const (
	msgRequired = "This field is required"

	msgEmailRequired = "Email is required"
	msgEmailInvalid  = "Please enter a valid email address"

	msgURLRequired = "URL is required"
	msgURLInvalid  = "Please enter a valid URL"

	msgPhoneRequired = "Phone number is required"
	msgPhoneInvalid  = "Please enter a valid phone number"

	msgDateRequired = "Date is required"
	msgDateInvalid  = "Please enter a valid date"
	msgDateFuture   = "Date cannot be in the future"

	msgNumberInvalid = "Please enter a valid number"

	msgNameRequired = "Component name is required"
	msgNameInvalid  = "Component name must contain only lowercase letters and underscores"

	msgZipInvalid = "Please enter a valid ZIP code"

	msgUnknownType = "Unknown field type"
)
