package mailer

import (
	"bytes"
	"html/template"
)

// EmailJob is the message published to the email queue on signup and
// consumed by cmd/email_worker.
type EmailJob struct {
	To       string `json:"to"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

var welcomeTpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif;">
    <h2>Welcome to Chirper, @{{.Username}}!</h2>
    <p>Your account is ready. Follow a few people and your feed will fill up.</p>
  </body>
</html>`))

// RenderWelcome renders the subject, text and HTML bodies for a welcome email.
func RenderWelcome(job EmailJob) (subject, text, html string, err error) {
	var buf bytes.Buffer
	if err = welcomeTpl.Execute(&buf, job); err != nil {
		return "", "", "", err
	}
	subject = "Welcome to Chirper"
	text = "Welcome to Chirper, @" + job.Username + "! Your account is ready."
	return subject, text, buf.String(), nil
}
