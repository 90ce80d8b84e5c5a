package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"smsbridge/internal/config"
	"smsbridge/internal/models"
	"smsbridge/pkg/logger"
	"smsbridge/pkg/sms"
)

var testCommand = &models.ParsedCommand{SenderName: "Shop", Destination: "555123456", Body: "Hello"}

func newTestDelivery(fallback string, provider sms.SMSProvider) DeliveryService {
	return NewDeliveryService(&config.SMSConfig{
		FallbackFrom: fallback,
		SendTimeout:  time.Second,
	}, provider, nil)
}

func TestDeliverySendSuccess(t *testing.T) {
	provider := &fakeSMSProvider{results: []sendResult{
		{resp: &sms.SMSResponse{MessageID: "SM123", Status: "queued"}},
	}}
	reporter := &recordingReporter{}

	outcome := newTestDelivery("+15550001111", provider).Send(context.Background(), testCommand, "+995555123456", reporter)

	if !outcome.Sent() {
		t.Fatalf("expected sent, got %+v", outcome)
	}
	if outcome.ConfirmationID != "SM123" || outcome.ProviderStatus != "queued" {
		t.Fatalf("unexpected confirmation: %+v", outcome)
	}
	if outcome.FallbackUsed || outcome.Attempts != 1 || outcome.From != "Shop" {
		t.Fatalf("unexpected attempt data: %+v", outcome)
	}

	calls := provider.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 provider call, got %d", len(calls))
	}
	if calls[0].From != "Shop" || calls[0].To != "+995555123456" || calls[0].Message != "Hello" {
		t.Fatalf("unexpected request: %+v", calls[0])
	}

	if len(reporter.texts) != 2 {
		t.Fatalf("expected sending and sent reports, got %q", reporter.texts)
	}
	if !strings.HasPrefix(reporter.texts[0], "📤") || !strings.Contains(reporter.texts[1], "SM123") {
		t.Fatalf("unexpected reports: %q", reporter.texts)
	}
}

func TestDeliveryRejectedWithoutFallback(t *testing.T) {
	provider := &fakeSMSProvider{results: []sendResult{
		{err: &sms.ProviderError{Code: "21612", Message: "invalid from"}},
	}}
	reporter := &recordingReporter{}

	outcome := newTestDelivery("", provider).Send(context.Background(), testCommand, "+995555123456", reporter)

	if outcome.Sent() {
		t.Fatal("expected rejection")
	}
	if outcome.ErrorCode != "21612" || outcome.ErrorMessage != "invalid from" {
		t.Fatalf("unexpected error data: %+v", outcome)
	}
	if got := len(provider.calls()); got != 1 {
		t.Fatalf("expected 1 provider call, got %d", got)
	}
	if len(reporter.texts) != 2 || !strings.Contains(reporter.texts[1], "Twilio Error") || !strings.Contains(reporter.texts[1], "21612") {
		t.Fatalf("unexpected reports: %q", reporter.texts)
	}
}

func TestDeliveryFallbackSucceeds(t *testing.T) {
	provider := &fakeSMSProvider{results: []sendResult{
		{err: &sms.ProviderError{Code: "21612", Message: "invalid from"}},
		{resp: &sms.SMSResponse{MessageID: "SM456", Status: "queued"}},
	}}
	reporter := &recordingReporter{}

	outcome := newTestDelivery("+15550001111", provider).Send(context.Background(), testCommand, "+995555123456", reporter)

	if !outcome.Sent() || !outcome.FallbackUsed || outcome.Attempts != 2 {
		t.Fatalf("expected sent via fallback, got %+v", outcome)
	}
	if outcome.From != "+15550001111" {
		t.Fatalf("expected fallback from, got %q", outcome.From)
	}

	calls := provider.calls()
	if len(calls) != 2 || calls[0].From != "Shop" || calls[1].From != "+15550001111" {
		t.Fatalf("unexpected calls: %+v", calls)
	}

	if len(reporter.texts) != 3 {
		t.Fatalf("expected sending, retrying and sent reports, got %q", reporter.texts)
	}
	if !strings.Contains(reporter.texts[1], "Retrying from +15550001111") {
		t.Fatalf("unexpected retry report: %q", reporter.texts[1])
	}
	if !strings.Contains(reporter.texts[2], "(fallback sender)") {
		t.Fatalf("unexpected sent report: %q", reporter.texts[2])
	}
}

func TestDeliveryFallbackAlsoFails(t *testing.T) {
	provider := &fakeSMSProvider{results: []sendResult{
		{err: &sms.ProviderError{Code: "21612", Message: "invalid from"}},
		{err: &sms.ProviderError{Code: "21408", Message: "region not enabled"}},
	}}
	reporter := &recordingReporter{}

	outcome := newTestDelivery("+15550001111", provider).Send(context.Background(), testCommand, "+995555123456", reporter)

	if outcome.Sent() || outcome.Attempts != 2 {
		t.Fatalf("expected rejection after two attempts, got %+v", outcome)
	}
	if outcome.ErrorCode != "21408" {
		t.Fatalf("expected last error reported, got %q", outcome.ErrorCode)
	}
	if got := len(provider.calls()); got != 2 {
		t.Fatalf("expected at most 2 provider calls, got %d", got)
	}
}

func TestDeliveryTimeoutIsTransportFailure(t *testing.T) {
	provider := &fakeSMSProvider{block: true}
	delivery := NewDeliveryService(&config.SMSConfig{SendTimeout: 20 * time.Millisecond}, provider, nil)

	outcome := delivery.Send(context.Background(), testCommand, "+995555123456", &recordingReporter{})

	if outcome.Sent() {
		t.Fatal("expected timeout rejection")
	}
	if outcome.ErrorCode != sms.ErrorCodeTransport {
		t.Fatalf("expected transport code, got %q", outcome.ErrorCode)
	}
}

func TestDeliveryTimedOutPrimaryWarnsBeforeFallback(t *testing.T) {
	log, err := logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	var buf bytes.Buffer
	log.SetOutput(&buf)

	provider := &fakeSMSProvider{results: []sendResult{
		{err: fmt.Errorf("twilio create message: %w", context.DeadlineExceeded)},
		{resp: &sms.SMSResponse{MessageID: "SM7"}},
	}}
	delivery := NewDeliveryService(&config.SMSConfig{FallbackFrom: "+15550001111", SendTimeout: time.Second}, provider, log)

	outcome := delivery.Send(context.Background(), testCommand, "+995555123456", &recordingReporter{})

	if !outcome.Sent() || !outcome.FallbackUsed {
		t.Fatalf("expected fallback delivery, got %+v", outcome)
	}
	if !strings.Contains(buf.String(), "fallback may duplicate a late delivery") {
		t.Fatalf("missing duplicate risk warning in logs: %s", buf.String())
	}
}

func TestDeliveryRejectedPrimaryDoesNotWarnAboutTimeout(t *testing.T) {
	log, err := logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	var buf bytes.Buffer
	log.SetOutput(&buf)

	provider := &fakeSMSProvider{results: []sendResult{
		{err: &sms.ProviderError{Code: "21612", Message: "invalid from"}},
		{resp: &sms.SMSResponse{MessageID: "SM8"}},
	}}
	delivery := NewDeliveryService(&config.SMSConfig{FallbackFrom: "+15550001111", SendTimeout: time.Second}, provider, log)

	delivery.Send(context.Background(), testCommand, "+995555123456", &recordingReporter{})

	if strings.Contains(buf.String(), "late delivery") {
		t.Fatalf("unexpected timeout warning: %s", buf.String())
	}
}

func TestClassifyError(t *testing.T) {
	code, msg := classifyError(errors.New("connection reset"))
	if code != sms.ErrorCodeTransport || msg != "connection reset" {
		t.Fatalf("got (%q, %q)", code, msg)
	}

	code, _ = classifyError(context.DeadlineExceeded)
	if code != sms.ErrorCodeTransport {
		t.Fatalf("deadline: got %q", code)
	}
}
