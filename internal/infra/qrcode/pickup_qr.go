// Package qrcode renders the distribution OTP as a scannable code so
// the handoff can be confirmed without reading digits aloud.
package qrcode

import (
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const payloadType = "pickup"

// Service generates and parses pickup QR codes.
type Service struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// PickupPayload is the QR code data structure.
type PickupPayload struct {
	GroupID int    `json:"group_id"`
	OTP     string `json:"otp"`
	Type    string `json:"type"`
}

// NewService creates a QR service with the given PNG size and error
// correction level (L, M, Q or H; anything else falls back to M).
func NewService(size int, errorCorrectionLevel string) *Service {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &Service{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GeneratePickupQR encodes the group id and distribution OTP as a PNG.
func (s *Service) GeneratePickupQR(groupID int, otp string) ([]byte, error) {
	data := PickupPayload{
		GroupID: groupID,
		OTP:     otp,
		Type:    payloadType,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParsePickupQR decodes scanned QR data back into the group id and OTP.
func (s *Service) ParsePickupQR(qrData string) (groupID int, otp string, err error) {
	var data PickupPayload
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return 0, "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != payloadType {
		return 0, "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.GroupID <= 0 || data.OTP == "" {
		return 0, "", fmt.Errorf("incomplete pickup payload")
	}

	return data.GroupID, data.OTP, nil
}
