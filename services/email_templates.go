package services

import (
	"bytes"
	"html/template"
)

const emailLayout = `<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#f5f5f5;">
<div style="max-width:600px;margin:0 auto;font-family:Arial,sans-serif;background-color:#ffffff;">
  <div style="background-color:#0078D2;color:#ffffff;padding:24px;text-align:center;">
    <h1 style="margin:0;font-size:1.5em;">{{template "title" .}}</h1>
  </div>
  <div style="padding:32px 24px;color:#475569;line-height:1.5;">
    {{if .CustomerName}}<p>Dear {{.CustomerName}},</p>{{else}}<p>Hello,</p>{{end}}
    {{template "content" .}}
  </div>
  <div style="background-color:#1e293b;color:#e2e8f0;padding:24px;text-align:center;font-size:0.875rem;">
    <p style="margin:0;">Lost &amp; Found Department</p>
    <p style="color:#94a3b8;font-size:0.8em;margin-top:8px;">This is an automated message.</p>
  </div>
</div>
</body>
</html>`

const itemFoundContent = `{{define "title"}}Lost Item Recovery{{end}}
{{define "content"}}
<p>We found an item that might belong to you on flight {{.FlightNumber}}.</p>
<div style="background-color:#f8fafc;padding:16px;border-radius:8px;margin:16px 0;">
  <h2 style="margin-top:0;color:#1e293b;">Item Details</h2>
  <p><strong>Item:</strong> {{.ItemName}}</p>
  {{if .ItemDescription}}<p><strong>Description:</strong> {{.ItemDescription}}</p>{{end}}
  <p><strong>Flight:</strong> {{.FlightNumber}}</p>
  <p><strong>Route:</strong> {{.OriginCode}} &rarr; {{.DestinationCode}}</p>
</div>
<h2 style="color:#1e293b;">Claim Your Item</h2>
<div style="border:1px solid #e2e8f0;border-radius:8px;padding:24px;margin:24px 0;">
  <h3 style="color:#0078D2;margin-top:0;">1. Collect In Person</h3>
  <p>Visit {{.PickupLocation}} with your verification code:</p>
  <div style="background-color:#f8fafc;padding:16px;font-family:monospace;font-size:1.2em;text-align:center;letter-spacing:2px;border:1px dashed #cbd5e1;">{{.CollectionCode}}</div>
  <p style="font-size:0.9em;color:#64748b;">Present this code along with a valid ID at our counter.</p>
  <a href="{{.ClaimURL}}" style="display:inline-block;padding:12px 24px;background-color:#0078D2;color:#ffffff;text-decoration:none;border-radius:4px;font-weight:bold;">Verify &amp; Collect</a>
</div>
<div style="background-color:#f0f9ff;border:1px solid #bae6fd;border-radius:8px;padding:24px;margin:24px 0;">
  <h3 style="color:#0078D2;margin-top:0;">2. Ship to Your Address</h3>
  <p>Have your item delivered with tracking for a flat rate of {{.ShippingFee}}.</p>
  <a href="{{.ShippingURL}}" style="display:inline-block;padding:12px 24px;background-color:#0284c7;color:#ffffff;text-decoration:none;border-radius:4px;font-weight:bold;">Ship to Me</a>
</div>
{{if .QRImageSrc}}
<div style="text-align:center;margin-top:32px;">
  <img src="{{.QRImageSrc}}" alt="QR Code" style="max-width:200px;margin-bottom:16px;"/>
  <p style="font-size:0.9em;color:#64748b;">Scan this QR code when collecting your item in person</p>
</div>
{{end}}
<p style="font-size:14px;margin-top:30px;">If you didn't lose an item on this flight, please disregard this email.</p>
{{end}}`

const shippingConfirmationContent = `{{define "title"}}Shipping Confirmation{{end}}
{{define "content"}}
<p>Your lost item ({{.ItemName}}) has been shipped and is on its way to you!</p>
<div style="background-color:#f8f9fa;padding:15px;border-radius:5px;margin:20px 0;">
  <h3 style="margin-top:0;color:#2c3e50;">Shipping Details:</h3>
  {{if .TrackingNumber}}<p><strong>Tracking Number:</strong> {{.TrackingNumber}}</p>{{end}}
  <p><strong>Shipping Address:</strong><br/>{{range $i, $line := .AddressLines}}{{if $i}}<br/>{{end}}{{$line}}{{end}}</p>
</div>
<p style="font-size:14px;margin-top:30px;">If you have any questions about your shipment, please reply to this email.</p>
{{end}}`

const claimApprovedContent = `{{define "title"}}Claim Approved{{end}}
{{define "content"}}
<p>Your claim for the lost item ({{.ItemName}}) has been approved!</p>
<div style="background-color:#f8f9fa;padding:15px;border-radius:5px;margin:20px 0;">
  <h3 style="margin-top:0;color:#2c3e50;">Next Steps:</h3>
  {{if .InPerson}}
  <p>You can pick up your item at:<br/>{{.PickupLocation}}</p>
  {{else}}
  <p>To proceed with shipping, please complete the payment using the link below:</p>
  <div style="text-align:center;margin-top:20px;">
    <a href="{{.PaymentLink}}" style="background-color:#3498db;color:#ffffff;padding:12px 25px;text-decoration:none;border-radius:5px;display:inline-block;">Complete Payment</a>
  </div>
  {{end}}
</div>
<p style="font-size:14px;margin-top:30px;">If you have any questions, please don't hesitate to contact us.</p>
{{end}}`

var (
	itemFoundTmpl            = template.Must(template.Must(template.New("layout").Parse(emailLayout)).Parse(itemFoundContent))
	shippingConfirmationTmpl = template.Must(template.Must(template.New("layout").Parse(emailLayout)).Parse(shippingConfirmationContent))
	claimApprovedTmpl        = template.Must(template.Must(template.New("layout").Parse(emailLayout)).Parse(claimApprovedContent))
)

// ItemFoundEmail is the data for the row passenger notification
type ItemFoundEmail struct {
	CustomerName    string
	FlightNumber    string
	OriginCode      string
	DestinationCode string
	ItemName        string
	ItemDescription string
	CollectionCode  string
	PickupLocation  string
	ShippingFee     string
	ClaimURL        string
	ShippingURL     string
	QRImageSrc      template.URL
}

// ShippingConfirmationEmail is the data for the shipped notification
type ShippingConfirmationEmail struct {
	CustomerName   string
	ItemName       string
	TrackingNumber string
	AddressLines   []string
}

// ClaimApprovedEmail is the data for the claim approval notification
type ClaimApprovedEmail struct {
	CustomerName   string
	ItemName       string
	InPerson       bool
	PickupLocation string
	PaymentLink    string
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderItemFound(data ItemFoundEmail) (string, string, error) {
	html, err := render(itemFoundTmpl, data)
	return "Lost Item Found - Flight " + data.FlightNumber, html, err
}

func renderShippingConfirmation(data ShippingConfirmationEmail) (string, string, error) {
	html, err := render(shippingConfirmationTmpl, data)
	return "Your Lost Item is On Its Way", html, err
}

func renderClaimApproved(data ClaimApprovedEmail) (string, string, error) {
	html, err := render(claimApprovedTmpl, data)
	return "Lost Item Claim Approved", html, err
}
