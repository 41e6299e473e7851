package db

import (
	"time"
)

// Secret is one stored one-time secret. The payload is ciphertext; the server
// never persists plaintext.
type Secret struct {
	LinkID          string
	EncryptedSecret []byte
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// Log is one row of the error log written by the slogdb handler.
type Log struct {
	ID            int64
	CreatedAt     time.Time
	RequestMethod *string
	RequestPath   *string
	HttpStatus    *int32
	Url           *string
	Hostname      *string
	Message       *string
	Err           *string
}

// QrCode tracks generation and cache hits for QR Codes of share links.
type QrCode struct {
	Url            string
	CreatedAt      time.Time
	LastAccessedAt time.Time
	AccessCount    int64
}
