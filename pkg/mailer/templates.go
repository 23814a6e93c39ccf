package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const orderConfirmationTpl = `
<p>Hi {{.Name}},</p>
<p>Your order #{{.OrderID}} has been confirmed.</p>
<p>The order consists of {{.ItemList}}.</p>
<p>Total: {{.Total}}</p>
<p>— {{.Company}}</p>
`

const passwordResetTpl = `
<p>Hi {{.Name}},</p>
<p>You requested a password reset. Click the link below to set a new password. The link expires in 30 minutes.</p>
<p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
<p>If you didn't request this, you can ignore this email.</p>
<p>— {{.Company}}</p>
`

var templates = map[string]*template.Template{
	"order_confirmation": template.Must(template.New("order_confirmation").Parse(orderConfirmationTpl)),
	"password_reset":     template.Must(template.New("password_reset").Parse(passwordResetTpl)),
}

var subjects = map[string]string{
	"order_confirmation": "Order Confirmed",
	"password_reset":     "Reset Your Password",
}

// Render produces the subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	tpl, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subjects[name], buf.String(), nil
}
