package email

import (
	"fmt"
	"html/template"
	"strings"

	"bloodbank_backend/internal/models"
)

const layoutHTML = `{{define "layout"}}<html><body style="font-family: sans-serif">
<h2>{{.Title}}</h2>
{{template "content" .}}
<p style="color: #888">You are receiving this because notifications are enabled for your Blood Bank account.</p>
</body></html>{{end}}`

var contentByType = map[models.NotificationType]string{
	models.NotificationTypeBloodRequest: `<p>{{.Message}}</p>
{{with .RequestID}}<p>Request reference: {{.}}</p>{{end}}
<p>Log in to accept or decline this request.</p>`,
	models.NotificationTypeEvent: `<p>{{.Message}}</p>
<p>Upcoming donation events are listed on your dashboard.</p>`,
	models.NotificationTypeSystem: `<p>{{.Message}}</p>`,
}

var notificationTemplates = parseNotificationTemplates()

func parseNotificationTemplates() map[models.NotificationType]*template.Template {
	layout := template.Must(template.New("layout").Parse(layoutHTML))

	out := make(map[models.NotificationType]*template.Template, len(contentByType))
	for t, body := range contentByType {
		set := template.Must(layout.Clone())
		template.Must(set.New("content").Parse(body))
		out[t] = set
	}
	return out
}

// RenderNotification renders the HTML body for m. Unknown types use the system layout.
func RenderNotification(m *NotificationMail) (string, error) {
	tpl, ok := notificationTemplates[m.Type]
	if !ok {
		tpl = notificationTemplates[models.NotificationTypeSystem]
	}

	var buf strings.Builder
	if err := tpl.ExecuteTemplate(&buf, "layout", m); err != nil {
		return "", fmt.Errorf("render %s mail: %w", m.Type, err)
	}
	return buf.String(), nil
}
