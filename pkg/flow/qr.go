package flow

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const defaultQRCodeSize = 256

// QRGenerator renders the autostart token as a QR code that the BankID app
// on another device can scan to pick up the order.
type QRGenerator interface {
	// QRCode returns a PNG image encoded as base64.
	QRCode(autoStartToken string) (string, error)
}

type qrGenerator struct {
	size int
}

// NewQRGenerator returns a generator producing 256x256 PNG codes.
func NewQRGenerator() QRGenerator {
	return &qrGenerator{size: defaultQRCodeSize}
}

func (g *qrGenerator) QRCode(autoStartToken string) (string, error) {
	content := SchemeURI + "?autostarttoken=" + autoStartToken
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", fmt.Errorf("qr code: %w", err)
	}
	code, err = barcode.Scale(code, g.size, g.size)
	if err != nil {
		return "", fmt.Errorf("qr code: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return "", fmt.Errorf("qr code: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
