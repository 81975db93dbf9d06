// Package validation contiene las funciones puras de sanitización y
// validación de campos de formulario, y el motor dinámico que deriva las
// reglas por página desde el registry de componentes.
//
// Contrato: sanitize primero, validate después. Sanitize es idempotente y
// nunca hace panic; Validate no muta el input y retorna "" exactamente
// cuando el valor es aceptable.
package validation
