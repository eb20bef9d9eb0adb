package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"marcai/config"
)

func testNotification() BookingConfirmed {
	return BookingConfirmed{
		AppointmentID: "appt-1",
		Phone:         "+55 (11) 99999-0000",
		CompanyName:   "Studio Ana",
		ClientName:    "Maria Silva",
		ClientPhone:   "11988887777",
		ServiceName:   "Haircut",
		StartsAt:      time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local),
		PriceCents:    5000,
	}
}

func TestCallMeBot_SendBookingConfirmed(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bot := NewCallMeBot(config.WhatsAppConfig{
		Endpoint: srv.URL,
		Phone:    "5511900000000",
		APIKey:   "secret",
		Timeout:  5 * time.Second,
	}, zap.NewNop())

	err := bot.SendBookingConfirmed(context.Background(), testNotification())

	require.NoError(t, err)
	require.NotNil(t, gotQuery)
	assert.Equal(t, []string{"5511999990000"}, gotQuery["phone"], "notification phone wins over the configured one, digits only")
	assert.Equal(t, []string{"secret"}, gotQuery["apikey"])

	require.Len(t, gotQuery["text"], 1)
	text := gotQuery["text"][0]
	assert.Contains(t, text, "Novo agendamento")
	assert.Contains(t, text, "Studio Ana")
	assert.Contains(t, text, "Haircut")
	assert.Contains(t, text, "14/09/2026 09:00")
	assert.Contains(t, text, "R$ 50,00")
	assert.Contains(t, text, "appt-1")
}

func TestCallMeBot_FallsBackToConfiguredPhone(t *testing.T) {
	var gotPhone string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPhone = r.URL.Query().Get("phone")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bot := NewCallMeBot(config.WhatsAppConfig{
		Endpoint: srv.URL,
		Phone:    "5511900000000",
		APIKey:   "secret",
		Timeout:  5 * time.Second,
	}, zap.NewNop())

	n := testNotification()
	n.Phone = ""

	require.NoError(t, bot.SendBookingConfirmed(context.Background(), n))
	assert.Equal(t, "5511900000000", gotPhone)
}

func TestCallMeBot_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	bot := NewCallMeBot(config.WhatsAppConfig{
		Endpoint: srv.URL,
		Phone:    "5511900000000",
		APIKey:   "secret",
		Timeout:  5 * time.Second,
	}, zap.NewNop())

	err := bot.SendBookingConfirmed(context.Background(), testNotification())

	assert.Error(t, err)
}

func TestCallMeBot_MissingPhone(t *testing.T) {
	bot := NewCallMeBot(config.WhatsAppConfig{
		Endpoint: "http://example.invalid",
		APIKey:   "secret",
		Timeout:  time.Second,
	}, zap.NewNop())

	n := testNotification()
	n.Phone = ""

	err := bot.SendBookingConfirmed(context.Background(), n)

	assert.Error(t, err)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 50,00", formatBRL(5000))
	assert.Equal(t, "R$ 0,00", formatBRL(0))
	assert.Equal(t, "R$ 1234,56", formatBRL(123456))
}

func TestNormalizeIntlPhone(t *testing.T) {
	assert.Equal(t, "5511999990000", normalizeIntlPhone("+55 (11) 99999-0000"))
	assert.Equal(t, "", normalizeIntlPhone("no digits"))
}
