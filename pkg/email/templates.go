package email

import "html/template"

const layoutHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #111827; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #111827; margin-top: 10px; }
        .button { display: inline-block; padding: 12px 24px; background: #111827; color: white; text-decoration: none; border-radius: 4px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">`

const layoutFoot = `
        <div class="footer">
            <p>This email was sent by the {{.JobTitle}} hiring team.</p>
        </div>
    </div>
</body>
</html>`

var templates = template.Must(template.New("interview").Parse(
	`{{define "interview_scheduled"}}` + layoutHead + `
        <div class="header"><h1>You're invited to an AI interview</h1></div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>Your interview for <strong>{{.JobTitle}}</strong> is scheduled for <strong>{{.When}}</strong> and takes about {{.DurationMinutes}} minutes.</p>
            {{if .CustomMessage}}<div class="message-box">{{.CustomMessage}}</div>{{end}}
            <p><a class="button" href="{{.InterviewLink}}">Open interview</a></p>
            <p>The link stays valid until {{.ExpiresAt.UTC.Format "2 Jan 2006 15:04 MST"}}.</p>
        </div>` + layoutFoot + `{{end}}` +

		`{{define "interview_rescheduled"}}` + layoutHead + `
        <div class="header"><h1>Your interview has moved</h1></div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>Your interview for <strong>{{.JobTitle}}</strong> has been moved{{if .PreviousWhen}} from {{.PreviousWhen}}{{end}} to <strong>{{.When}}</strong>.</p>
            {{if .Reason}}<div class="message-box">{{.Reason}}</div>{{end}}
            <p>Your link is unchanged: <a href="{{.InterviewLink}}">{{.InterviewLink}}</a></p>
        </div>` + layoutFoot + `{{end}}` +

		`{{define "interview_cancelled"}}` + layoutHead + `
        <div class="header"><h1>Your interview was cancelled</h1></div>
        <div class="content">
            <p>Hi {{.CandidateName}},</p>
            <p>Your interview for <strong>{{.JobTitle}}</strong> on {{.When}} has been cancelled.</p>
            {{if .Reason}}<div class="message-box">{{.Reason}}</div>{{end}}
            <p>The hiring team will be in touch about next steps.</p>
        </div>` + layoutFoot + `{{end}}`,
))
