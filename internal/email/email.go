// Package email envía los correos transaccionales del servicio.
//
// Hoy el único correo es la bienvenida post-signup. El envío es best-effort:
// un SMTP caído no puede voltear un registro de usuario, el caller loguea y
// sigue.
package email

import "context"

// Sender es la interfaz para enviar emails.
type Sender interface {
	// Send envía un email con contenido HTML y texto plano.
	// El destinatario recibe ambas versiones como multipart/alternative.
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// Noop descarta todos los envíos. Default cuando SMTP no está configurado.
type Noop struct{}

func (Noop) Send(ctx context.Context, to, subject, htmlBody, textBody string) error { return nil }

// Config SMTP. Host vacío significa sin email (Noop).
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	TLSMode   string // "auto" | "starttls" | "ssl" | "none"
}

// New crea el Sender según configuración.
func New(cfg Config) Sender {
	if cfg.Host == "" {
		return Noop{}
	}
	return NewSMTPSender(cfg)
}
