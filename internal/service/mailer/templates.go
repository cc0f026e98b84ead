package mailer

import "github.com/kingrain94/realty-api/internal/domain"

// Bodies are html/template sources rendered with Mail.Data as dot.
// Subjects are text/template sources.
type source struct {
	subject string
	body    string
}

var sources = map[string]map[string]source{
	domain.MailSubscriptionConfirmation: {
		"en": {
			subject: `Confirm your subscription to {{.tenant}}`,
			body: `<p>Hello,</p>
<p>Please confirm that you want to receive news from {{.tenant}}.</p>
<p><a href="{{.confirm_url}}">Confirm subscription</a></p>
<p>If you did not ask for this, ignore this message.</p>`,
		},
		"ru": {
			subject: `Подтвердите подписку на {{.tenant}}`,
			body: `<p>Здравствуйте!</p>
<p>Подтвердите, что хотите получать новости {{.tenant}}.</p>
<p><a href="{{.confirm_url}}">Подтвердить подписку</a></p>
<p>Если вы не подписывались, просто проигнорируйте это письмо.</p>`,
		},
		"uk": {
			subject: `Підтвердіть підписку на {{.tenant}}`,
			body: `<p>Вітаємо!</p>
<p>Підтвердіть, що бажаєте отримувати новини {{.tenant}}.</p>
<p><a href="{{.confirm_url}}">Підтвердити підписку</a></p>
<p>Якщо ви не підписувалися, просто проігноруйте цей лист.</p>`,
		},
	},
	domain.MailSubscriberConfirmed: {
		"en": {
			subject: `New subscriber for {{.tenant}}`,
			body:    `<p>{{.email}} confirmed the newsletter subscription of {{.tenant}}.</p>`,
		},
		"ru": {
			subject: `Новый подписчик {{.tenant}}`,
			body:    `<p>{{.email}} подтвердил подписку на рассылку {{.tenant}}.</p>`,
		},
		"uk": {
			subject: `Новий підписник {{.tenant}}`,
			body:    `<p>{{.email}} підтвердив підписку на розсилку {{.tenant}}.</p>`,
		},
	},
	domain.MailScrapeReport: {
		"en": {
			subject: `Import {{.status}}: {{.url}}`,
			body: `<p>The import of <a href="{{.url}}">{{.url}}</a> for {{.tenant}} {{.status}}.</p>
<ul>
<li>Job: {{.job_id}}</li>
<li>Queued at: {{.queued_at}}</li>
{{if .listing_id}}<li>Listing: {{.listing_id}}</li>{{end}}
</ul>`,
		},
	},
}
