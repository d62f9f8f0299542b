package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(word string) ([]byte, error)
}

// DefaultQRGenerator encodes a link to the lookup page of the dashboard UI.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(word string) string {
	return fmt.Sprintf("%s/insights?word=%s", strings.TrimRight(g.BaseURL, "/"), url.QueryEscape(word))
}

func (g DefaultQRGenerator) Generate(word string) ([]byte, error) {
	return qrcode.Encode(g.Link(word), qrcode.Medium, 256)
}
