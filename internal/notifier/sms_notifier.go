package notifier

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/AlexSpeaker/shop-app/configs"
)

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// SendSMS sends the payment confirmation text. Best effort, same as SendEmail.
func SendSMS(toPhoneNumber string, orderID uint, total string) error {
	cfg := config.LoadSMSConfig()

	message := fmt.Sprintf("Payment received for order #%d. Total: %s. Thank you for shopping with us!", orderID, total)

	data := url.Values{}
	data.Set("username", cfg.Username)
	data.Set("to", toPhoneNumber)
	data.Set("message", message)
	data.Set("from", cfg.SenderID)

	client := &http.Client{}
	req, err := http.NewRequest("POST", cfg.SMSURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	var smsResponse SMSResponse
	if err := json.NewDecoder(resp.Body).Decode(&smsResponse); err != nil {
		return fmt.Errorf("failed to decode SMS response: %w", err)
	}

	for _, recipient := range smsResponse.SMSMessageData.Recipients {
		if recipient.StatusCode != 101 {
			log.Printf("SMS to %s not accepted: %s", recipient.Number, recipient.Status)
			return fmt.Errorf("SMS rejected for %s: %s", recipient.Number, recipient.Status)
		}
	}

	return nil
}
