package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// Kept short enough for a single SMS segment.
const pinSMSText = "Your Bales Store verification code is %s. It expires in %s."

var pinEmailTemplate = template.Must(template.New("pin").Parse(`<div style="font-family:sans-serif">
<h2>Verify your email</h2>
<p>Your verification code is:</p>
<p style="font-size:28px;letter-spacing:6px"><strong>{{.Code}}</strong></p>
<p>This code expires in {{.ValidFor}}. If you did not request it you can ignore this email.</p>
</div>`))

var salesAlertTemplate = template.Must(template.New("sales").Parse(`<div style="font-family:sans-serif">
<h2>{{.Subject}}</h2>
<table>{{range $k, $v := .Lines}}
<tr><td><strong>{{$k}}</strong></td><td>{{$v}}</td></tr>{{end}}
</table>
</div>`))

var orderNoteTemplate = template.Must(template.New("note").Parse(`<div style="font-family:sans-serif">
<p>Hi {{.Order.CustomerName}},</p>
<p>There is an update on your order <strong>{{.Order.OrderNumber}}</strong>:</p>
<blockquote>{{.Note}}</blockquote>
<p>Current status: {{.Order.Status}}</p>
<p>Bales Store</p>
</div>`))

var contactTemplate = template.Must(template.New("contact").Parse(`<div style="font-family:sans-serif">
<h2>Contact form enquiry</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>{{if .Phone}}
<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
<p>{{.Message}}</p>
</div>`))

// validForText renders a PIN lifetime as whole minutes or hours.
func validForText(d time.Duration) string {
	m := int(d.Round(time.Minute) / time.Minute)
	switch {
	case m <= 1:
		return "1 minute"
	case m == 60:
		return "1 hour"
	case m%60 == 0:
		return fmt.Sprintf("%d hours", m/60)
	default:
		return fmt.Sprintf("%d minutes", m)
	}
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}
