package email

import (
	"bytes"
	"context"
	"html/template"
)

const welcomeSubject = "Welcome aboard"

var welcomeHTML = template.Must(template.New("welcome").Parse(`<html><body>
<h2>Welcome!</h2>
<p>Your account <b>{{.Email}}</b> is ready.</p>
<p>Complete your profile in the onboarding wizard to get started.</p>
</body></html>`))

const welcomeText = `Welcome!

Your account is ready. Complete your profile in the onboarding wizard to get started.
`

// SendWelcome renderiza y envía el correo de bienvenida post-signup.
func SendWelcome(ctx context.Context, s Sender, to string) error {
	var buf bytes.Buffer
	if err := welcomeHTML.Execute(&buf, struct{ Email string }{Email: to}); err != nil {
		return err
	}
	return s.Send(ctx, to, welcomeSubject, buf.String(), welcomeText)
}
