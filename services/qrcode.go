package services

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/HSouheill/lostfound_backend/utils"
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const qrSize = 400

// QRGenerator builds claim links and the QR images that encode them
type QRGenerator struct {
	baseURL string
	size    int
}

func NewQRGenerator(baseURL string) *QRGenerator {
	return &QRGenerator{baseURL: strings.TrimRight(baseURL, "/"), size: qrSize}
}

// ClaimURL is the public page a passenger lands on after scanning
func (g *QRGenerator) ClaimURL(token string) string {
	return g.baseURL + "/qr/" + token
}

// ShippingURL is the public shipping request page for an item
func (g *QRGenerator) ShippingURL(token string) string {
	return g.baseURL + "/shipping/" + token
}

// PNG encodes content as a square QR code image
func (g *QRGenerator) PNG(content string) ([]byte, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	code, err = barcode.Scale(code, g.size, g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR code: %w", err)
	}

	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, code); err != nil {
		return nil, fmt.Errorf("failed to encode QR code as PNG: %w", err)
	}
	return buffer.Bytes(), nil
}

// ClaimQR returns the claim QR code for token as PNG bytes and as a data URL
func (g *QRGenerator) ClaimQR(token string) ([]byte, string, error) {
	img, err := g.PNG(g.ClaimURL(token))
	if err != nil {
		return nil, "", err
	}
	return img, utils.ToDataURL("image/png", img), nil
}
