package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(amount int64) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(amount int64) ([]byte, error) {
	qrData := fmt.Sprintf("%s/pembayaran/index.html?amount=%d", g.BaseURL, amount)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
