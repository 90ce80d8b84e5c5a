package services

import (
	"context"
	"errors"
	"sync"

	"smsbridge/pkg/push"
	"smsbridge/pkg/sms"
)

type sendResult struct {
	resp *sms.SMSResponse
	err  error
}

// fakeSMSProvider returns queued results in order and records every request.
type fakeSMSProvider struct {
	mu       sync.Mutex
	results  []sendResult
	requests []*sms.SMSRequest
	block    bool
}

func (f *fakeSMSProvider) Name() string { return "twilio" }

func (f *fakeSMSProvider) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, request)
	block := f.block
	var res sendResult
	if len(f.results) > 0 {
		res = f.results[0]
		f.results = f.results[1:]
	} else {
		res = sendResult{err: errors.New("no result queued")}
	}
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return res.resp, res.err
}

func (f *fakeSMSProvider) calls() []*sms.SMSRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*sms.SMSRequest(nil), f.requests...)
}

type recordingReporter struct {
	texts []string
}

func (r *recordingReporter) Report(_ context.Context, text string) {
	r.texts = append(r.texts, text)
}

type fakePushProvider struct {
	mu       sync.Mutex
	requests []*push.NotificationRequest
	err      error
}

func (f *fakePushProvider) SendNotification(_ context.Context, request *push.NotificationRequest) (*push.NotificationResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	return &push.NotificationResponse{Success: true}, nil
}

func (f *fakePushProvider) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, r.Body)
	}
	return out
}
