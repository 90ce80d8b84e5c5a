package sms

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the part of the Twilio REST client the provider uses.
type messageCreator interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

type TwilioProvider struct {
	messages   messageCreator
	fromNumber string
}

func NewTwilioProvider(accountSID, authToken, fromNumber string) *TwilioProvider {
	restClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioProvider{
		messages:   restClient.Api,
		fromNumber: fromNumber,
	}
}

func (t *TwilioProvider) Name() string {
	return "twilio"
}

func (t *TwilioProvider) SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error) {
	params := &api.CreateMessageParams{}
	params.SetTo(request.To)
	params.SetFrom(t.getFromNumber(request.From))
	params.SetBody(request.Message)
	// Unicode bodies go out as typed, no lookalike substitution.
	params.SetSmartEncoded(false)

	type created struct {
		msg *api.ApiV2010Message
		err error
	}

	// The SDK call takes no context, so the deadline is enforced here.
	done := make(chan created, 1)
	go func() {
		msg, err := t.messages.CreateMessage(params)
		done <- created{msg: msg, err: err}
	}()

	var res created
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("twilio create message: %w", ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		var restErr *client.TwilioRestError
		if errors.As(res.err, &restErr) {
			return nil, &ProviderError{
				Code:       strconv.Itoa(restErr.Code),
				Message:    restErr.Message,
				HTTPStatus: restErr.Status,
			}
		}
		return nil, fmt.Errorf("twilio create message: %w", res.err)
	}

	if res.msg == nil {
		return nil, fmt.Errorf("twilio create message: empty response")
	}

	// Twilio can accept the request and still report an error on the message.
	if res.msg.ErrorCode != nil && *res.msg.ErrorCode != 0 {
		perr := &ProviderError{Code: strconv.Itoa(*res.msg.ErrorCode)}
		if res.msg.ErrorMessage != nil {
			perr.Message = *res.msg.ErrorMessage
		}
		return nil, perr
	}

	resp := &SMSResponse{}
	if res.msg.Sid != nil {
		resp.MessageID = *res.msg.Sid
	}
	if res.msg.Status != nil {
		resp.Status = string(*res.msg.Status)
	}

	return resp, nil
}

func (t *TwilioProvider) getFromNumber(from string) string {
	if from != "" {
		return from
	}
	return t.fromNumber
}
