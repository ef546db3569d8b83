package services

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/HSouheill/lostfound_backend/config"
	"github.com/HSouheill/lostfound_backend/models"
)

const qrImageName = "claim-qr.png"

// EmailSender renders and sends the passenger emails
type EmailSender struct {
	mailer         Mailer
	qr             *QRGenerator
	baseURL        string
	pickupLocation string
	shippingFee    string
}

func NewEmailSender(mailer Mailer, qr *QRGenerator, cfg *config.Config) *EmailSender {
	return &EmailSender{
		mailer:         mailer,
		qr:             qr,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		pickupLocation: cfg.PickupLocation,
		shippingFee:    formatCents(cfg.ShippingFeeCents),
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// SendItemFound tells a row passenger about an item and how to claim it.
// The QR code is embedded inline since most clients block data URLs.
func (s *EmailSender) SendItemFound(ctx context.Context, to string, item *models.LostItem, flight *models.Flight) error {
	data := ItemFoundEmail{
		FlightNumber:    flight.FlightNumber,
		OriginCode:      flight.OriginCode,
		DestinationCode: flight.DestinationCode,
		ItemName:        item.ItemName,
		ItemDescription: item.ItemDescription,
		CollectionCode:  item.CollectionCode,
		PickupLocation:  s.pickupLocation,
		ShippingFee:     s.shippingFee,
		ClaimURL:        s.qr.ClaimURL(item.ClaimToken),
		ShippingURL:     s.qr.ShippingURL(item.ClaimToken),
	}

	var images []InlineImage
	if item.ClaimToken != "" {
		png, err := s.qr.PNG(data.ClaimURL)
		if err != nil {
			return err
		}
		images = append(images, InlineImage{Name: qrImageName, Data: png})
		data.QRImageSrc = template.URL("cid:" + qrImageName)
	}

	subject, html, err := renderItemFound(data)
	if err != nil {
		return fmt.Errorf("failed to render item-found email: %w", err)
	}
	return s.mailer.Send(ctx, Email{To: to, Subject: subject, HTML: html, Images: images})
}

// SendShippingConfirmation tells the passenger their item is on its way
func (s *EmailSender) SendShippingConfirmation(ctx context.Context, to, customerName string, item *models.LostItem, address string, trackingNumber string) error {
	subject, html, err := renderShippingConfirmation(ShippingConfirmationEmail{
		CustomerName:   customerName,
		ItemName:       item.ItemName,
		TrackingNumber: trackingNumber,
		AddressLines:   splitLines(address),
	})
	if err != nil {
		return fmt.Errorf("failed to render shipping-confirmation email: %w", err)
	}
	return s.mailer.Send(ctx, Email{To: to, Subject: subject, HTML: html})
}

// SendClaimApproved confirms a staff-recorded claim
func (s *EmailSender) SendClaimApproved(ctx context.Context, claim *models.Claim, item *models.LostItem) error {
	data := ClaimApprovedEmail{
		ItemName:       item.ItemName,
		InPerson:       claim.ClaimMethod == models.ClaimInPerson,
		PickupLocation: s.pickupLocation,
	}
	if !data.InPerson {
		data.PaymentLink = s.qr.ShippingURL(item.ClaimToken)
	}

	subject, html, err := renderClaimApproved(data)
	if err != nil {
		return fmt.Errorf("failed to render claim-approved email: %w", err)
	}
	return s.mailer.Send(ctx, Email{To: claim.CustomerEmail, Subject: subject, HTML: html})
}

// FormatAddress renders shipping details as a multi-line address
func FormatAddress(d *models.ShippingDetails) string {
	if d == nil {
		return ""
	}
	parts := []string{d.Name, d.Address, d.City + ", " + d.State + " " + d.PostalCode, d.Country}
	return strings.Join(parts, "\n")
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
