package mailer

import "html/template"

// HTML-шаблоны писем. Держим их в коде, а не в файлах рядом с бинарником,
// чтобы деплой сервиса оставался одним файлом + конфиг

var bookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Заявка на занятие принята</h2>
	<p>Здравствуйте, {{.ClientName}}!</p>
	<p>Ваша заявка на занятие принята и ожидает подтверждения администратором.</p>
	<table cellpadding="4">
		<tr><td><b>Номер заявки:</b></td><td>{{.BookingCode}}</td></tr>
		<tr><td><b>Услуга:</b></td><td>{{.ServiceName}}</td></tr>
		<tr><td><b>Дата:</b></td><td>{{.Date.Format "02.01.2006"}}</td></tr>
		<tr><td><b>Время:</b></td><td>{{.StartTime}}</td></tr>
	</table>
	<p>Мы сообщим вам, когда заявка будет рассмотрена.</p>
</body>
</html>`))

var bookingApprovedTmpl = template.Must(template.New("booking_approved").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Запись подтверждена</h2>
	<p>Здравствуйте, {{.ClientName}}!</p>
	<p>Ваша запись на занятие подтверждена.</p>
	<table cellpadding="4">
		<tr><td><b>Номер заявки:</b></td><td>{{.BookingCode}}</td></tr>
		<tr><td><b>Услуга:</b></td><td>{{.ServiceName}}</td></tr>
		<tr><td><b>Дата:</b></td><td>{{.Date.Format "02.01.2006"}}</td></tr>
		<tr><td><b>Время:</b></td><td>{{.StartTime}}</td></tr>
	</table>
	<p>Ждем вас в конном центре!</p>
</body>
</html>`))

var bookingRejectedTmpl = template.Must(template.New("booking_rejected").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Заявка отклонена</h2>
	<p>Здравствуйте, {{.ClientName}}!</p>
	<p>К сожалению, ваша заявка {{.BookingCode}} на {{.Date.Format "02.01.2006"}} {{.StartTime}} отклонена.</p>
	{{if .Reason}}<p>Причина: {{.Reason}}</p>{{end}}
	<p>Вы можете выбрать другое время в расписании.</p>
</body>
</html>`))

var paymentReminderTmpl = template.Must(template.New("payment_reminder").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Напоминание об оплате</h2>
	<p>Здравствуйте!</p>
	<p>По вашему абонементу за {{.Month}} числится задолженность.</p>
	<table cellpadding="4">
		<tr><td><b>Сумма:</b></td><td>{{printf "%.2f" .Amount}}</td></tr>
		{{if gt .Penalty 0.0}}<tr><td><b>Штраф за просрочку:</b></td><td>{{printf "%.2f" .Penalty}}</td></tr>{{end}}
		<tr><td><b>Итого к оплате:</b></td><td>{{printf "%.2f" .Outstanding}}</td></tr>
		<tr><td><b>Срок оплаты:</b></td><td>{{.DueDate.Format "02.01.2006"}}</td></tr>
	</table>
	<p>Обратите внимание: при задолженности запись на новые занятия недоступна.</p>
</body>
</html>`))
