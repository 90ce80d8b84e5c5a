package services

import (
	"fmt"
	"strings"

	"smsbridge/internal/models"
)

// Chat-facing texts.

const usageExample = "❗ Format example:\n\n" +
	"saxeli: Shop\n" +
	"nomeri: 555123456\n" +
	"texti: გამარჯობა, თქვენი შეკვეთა მზადაა ✅"

func msgUnauthorized(senderIdentity string) string {
	return fmt.Sprintf("❌ Not authorized.\nYour chatId: %s", senderIdentity)
}

func msgUsage() string {
	return usageExample
}

func msgInvalidNumber(number string) string {
	return fmt.Sprintf("❗ Number %q is not an international phone number.\n\n%s", number, usageExample)
}

func msgSending(cmd *models.ParsedCommand, to string) string {
	return fmt.Sprintf("📤 იგზავნება SMS...\n📛 Sender: %s\n📱 Number: %s\n💬 Message:\n%s",
		cmd.SenderName, to, cmd.Body)
}

func msgRetrying(primary, fallback string) string {
	return fmt.Sprintf("⚠️ Sender '%s' may not be supported. Retrying from %s...", primary, fallback)
}

func msgSent(outcome *models.DeliveryOutcome, body string) string {
	var b strings.Builder
	b.WriteString("✅ SMS გაგზავნილია წარმატებით!\n")
	fmt.Fprintf(&b, "SID: %s\n", valueOrDash(outcome.ConfirmationID))
	fmt.Fprintf(&b, "Sender: %s\n", outcome.From)
	if outcome.FallbackUsed {
		b.WriteString("(fallback sender)\n")
	}
	fmt.Fprintf(&b, "Number: %s\n", outcome.To)
	fmt.Fprintf(&b, "💬 ტექსტი:\n%s", body)
	return b.String()
}

func msgProviderError(provider string, outcome *models.DeliveryOutcome) string {
	return fmt.Sprintf("⚠️ %s Error:\nMessage: %s\nCode: %s",
		providerLabel(provider), valueOrDash(outcome.ErrorMessage), valueOrDash(outcome.ErrorCode))
}

func msgInternalError(err error) string {
	return "⚠️ Internal error: " + err.Error()
}

func providerLabel(name string) string {
	switch name {
	case "twilio":
		return "Twilio"
	case "sns":
		return "AWS SNS"
	case "":
		return "SMS"
	default:
		return name
	}
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
