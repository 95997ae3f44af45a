package model

import (
	"encoding/json"
)

// --- Remote API envelopes ---

// Envelope is the {success, data, error} wrapper every API response uses.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

type PollResult struct {
	Orders    []Order `json:"orders"`
	Count     int     `json:"count"`
	Timestamp string  `json:"timestamp"`
}

type RestaurantProfile struct {
	ID               string `json:"id,omitempty"`
	Name             string `json:"name"`
	AutoPrintEnabled bool   `json:"autoPrintKitchenReceiptEnabled"`
	PinnedDeviceID   string `json:"autoPrintKitchenReceiptDeviceId,omitempty"`
}

type AdminProfile struct {
	Restaurant *RestaurantProfile `json:"restaurant"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// --- Local trigger surface ---

type PrintRequest struct {
	OrderID string `json:"orderId"`
}

type PrintResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
	AlreadyPrinted bool   `json:"alreadyPrinted,omitempty"`
}

type HealthResponse struct {
	Success          bool   `json:"success"`
	Service          string `json:"service"`
	DeviceID         string `json:"deviceId"`
	PrinterConnected bool   `json:"printerConnected"`
}
