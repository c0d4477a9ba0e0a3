package service

import (
	"fmt"
	"strings"
	"time"

	"restaurant-api/restaurant-svc/internal/domain"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator renders order receipts as 256px PNG QR codes.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(order *domain.Order) ([]byte, error) {
	return qrcode.Encode(ReceiptPayload(g.BaseURL, order), qrcode.Medium, 256)
}

// ReceiptPayload is the text a receipt QR code carries: order number, date,
// one line per item, the total and a link back to the order.
func ReceiptPayload(baseURL string, order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ORDER %d\n", order.ID)
	fmt.Fprintf(&b, "DATE %s\n", order.Date.UTC().Format(time.RFC3339))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x #%d %s\n", item.Quantity, item.MenuItemID, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "TOTAL %s\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "%s/api/orders/%d", strings.TrimRight(baseURL, "/"), order.ID)
	return b.String()
}
