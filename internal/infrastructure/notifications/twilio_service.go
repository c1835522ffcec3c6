package notifications

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// messageCreator is the slice of the Twilio REST API used to send texts
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioServiceImpl implements domain.NotificationService
type TwilioServiceImpl struct {
	api         messageCreator
	fromNumber  string
	countryCode string
}

// NewTwilioService creates a new Twilio notification service
func NewTwilioService(accountSID, authToken, fromNumber, countryCode string) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		api:         client.Api,
		fromNumber:  fromNumber,
		countryCode: countryCode,
	}
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(ctx context.Context, to, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(t.countryCode + to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
