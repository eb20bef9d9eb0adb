package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"marcai/config"
)

// CallMeBot sends WhatsApp messages through the CallMeBot gateway, a plain
// GET endpoint keyed by phone and API key.
type CallMeBot struct {
	endpoint string
	phone    string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

func NewCallMeBot(cfg config.WhatsAppConfig, logger *zap.Logger) *CallMeBot {
	return &CallMeBot{
		endpoint: cfg.Endpoint,
		phone:    normalizeIntlPhone(cfg.Phone),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

func (c *CallMeBot) SendBookingConfirmed(ctx context.Context, n BookingConfirmed) error {
	phone := c.phone
	if n.Phone != "" {
		phone = normalizeIntlPhone(n.Phone)
	}
	if phone == "" {
		return fmt.Errorf("whatsapp destination phone is not set")
	}
	if c.apiKey == "" {
		return fmt.Errorf("whatsapp api key is not set")
	}

	params := url.Values{}
	params.Set("phone", phone)
	params.Set("text", bookingMessage(n))
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building whatsapp request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, string(body))
	}

	c.logger.Debug("whatsapp notification sent",
		zap.String("appointmentID", n.AppointmentID),
		zap.String("phone", phone))

	return nil
}

func bookingMessage(n BookingConfirmed) string {
	lines := []string{
		"📅 *Novo agendamento*",
		"",
		"🏢 *Empresa:* " + orDash(n.CompanyName),
		"💇 *Serviço:* " + orDash(n.ServiceName),
		"🕒 *Quando:* " + n.StartsAt.Format("02/01/2006 15:04"),
		"👤 *Cliente:* " + orDash(n.ClientName),
		"📱 *WhatsApp:* " + orDash(n.ClientPhone),
		"💰 *Valor:* " + formatBRL(n.PriceCents),
	}
	if n.AppointmentID != "" {
		lines = append(lines, "🧾 *ID:* "+n.AppointmentID)
	}
	return strings.Join(lines, "\n")
}

func formatBRL(cents int64) string {
	return strings.Replace(fmt.Sprintf("R$ %.2f", float64(cents)/100), ".", ",", 1)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

func normalizeIntlPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}
