// internal/notify/composer.go
package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"ponto-intake/internal/adjustments"
	"ponto-intake/internal/common/errors"
	"ponto-intake/internal/common/logger"
	"ponto-intake/internal/mail"
)

const subjectFormat = "AJUSTE DE PONTO - %s - %d REGISTRO(S)"

const bodyTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
<h2>Solicitação de Ajuste de Ponto</h2>
<p>Gestor(a): <strong>{{.ManagerName}}</strong> — Filial: <strong>{{.Branch}}</strong></p>
{{range .Collaborators}}
<div style="border: 1px solid #ccc; border-radius: 4px; padding: 12px; margin-bottom: 12px;">
<h3 style="margin-top: 0;">{{.Name}}</h3>
{{range .Adjustments}}
<p style="margin: 4px 0;">
<strong>Data:</strong> {{.Date}}<br>
<strong>Horário:</strong> {{.Time}}<br>
<strong>Motivo:</strong> {{.Reason}}
</p>
{{end}}
</div>
{{end}}
<p style="color: #777; font-size: 12px;">Registrado em {{.RegisteredAt}}</p>
</body>
</html>`

var bodyTmpl = template.Must(template.New("notification").Parse(bodyTemplate))

type adjustmentView struct {
	Date   string
	Time   string
	Reason template.HTML
}

type collaboratorView struct {
	Name        string
	Adjustments []adjustmentView
}

type bodyView struct {
	ManagerName   string
	Branch        string
	Collaborators []collaboratorView
	RegisteredAt  string
}

// Composer groups a batch's records by collaborator, renders the HTML
// summary, and dispatches it to HR and the submitting manager.
type Composer struct {
	transport mail.Transport
	hrEmail   string
	fromEmail string
	logger    logger.Logger
}

func NewComposer(transport mail.Transport, hrEmail, fromEmail string, log logger.Logger) *Composer {
	return &Composer{
		transport: transport,
		hrEmail:   hrEmail,
		fromEmail: fromEmail,
		logger:    log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// Notify sends the adjustment summary email. It operates on the in-memory
// records produced by normalization, never on data re-read from storage, and
// performs no retries. The caller decides whether a failure is fatal.
func (c *Composer) Notify(ctx context.Context, records []adjustments.Record, managerEmail, managerName string) error {
	if len(records) == 0 {
		return nil
	}

	if c.hrEmail == "" {
		return errors.NewConfigurationError("RH_EMAIL")
	}
	if c.fromEmail == "" {
		return errors.NewConfigurationError("MAIL_SERVICE_USER")
	}

	branch := records[0].Branch
	subject := fmt.Sprintf(subjectFormat, branch, len(records))
	body, err := renderBody(records, managerName)
	if err != nil {
		return errors.NewNotificationError(err)
	}

	messageID := uuid.New().String()
	msg := mail.Message{
		From:    c.fromEmail,
		To:      []string{c.hrEmail, managerEmail},
		Subject: subject,
		HTML:    body,
	}

	if err := c.transport.Send(ctx, msg); err != nil {
		c.logger.Error("notification send failed", map[string]interface{}{
			"error":     err,
			"messageId": messageID,
			"manager":   managerEmail,
		})
		return errors.NewNotificationError(err)
	}

	c.logger.Info("notification sent", map[string]interface{}{
		"messageId": messageID,
		"subject":   subject,
		"records":   len(records),
	})
	return nil
}

func renderBody(records []adjustments.Record, managerName string) (string, error) {
	view := bodyView{
		ManagerName:  managerName,
		Branch:       records[0].Branch,
		RegisteredAt: records[0].RegisteredAt,
	}

	// Group by collaborator preserving first-seen order.
	index := map[string]int{}
	for _, r := range records {
		i, seen := index[r.CollaboratorName]
		if !seen {
			i = len(view.Collaborators)
			index[r.CollaboratorName] = i
			view.Collaborators = append(view.Collaborators, collaboratorView{Name: r.CollaboratorName})
		}
		view.Collaborators[i].Adjustments = append(view.Collaborators[i].Adjustments, adjustmentView{
			Date:   formatDate(r.AdjustmentDate),
			Time:   r.AdjustedTime,
			Reason: reasonHTML(r.Reason),
		})
	}

	var b strings.Builder
	if err := bodyTmpl.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}

// formatDate renders an ISO date as day/month/year; anything unparseable
// passes through unchanged.
func formatDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}

// reasonHTML escapes the free-form reason and converts its newlines to <br>.
func reasonHTML(reason string) template.HTML {
	escaped := template.HTMLEscapeString(reason)
	escaped = strings.ReplaceAll(escaped, "\r\n", "<br>")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(escaped)
}
