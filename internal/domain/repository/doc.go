// Package repository define los contratos de acceso a datos del dominio:
// componentes del registry, configuración de páginas, usuarios y perfiles.
//
// Las implementaciones viven en internal/store (postgres, memory). Los
// services dependen solo de estas interfaces y de los errores sentinela de
// este paquete; nunca de un driver concreto.
package repository
