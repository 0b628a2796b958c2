// Package qr mints repair identifiers, gate-pass numbers and the QR
// payloads printed on physical gate passes.
package qr

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// IDLength is the fixed length of a repair identifier in hex characters.
const IDLength = 24

// GenerateRepairID creates a 24-character lowercase hex identifier.
func GenerateRepairID() (string, error) {
	b := make([]byte, IDLength/2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("qr: generate repair ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GatePassNumber builds a human-readable gate-pass number from the
// dispatch time plus a short random suffix, e.g. GP-20260831-4F2A.
func GatePassNumber(now time.Time) (string, error) {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("qr: generate gate pass: %w", err)
	}
	return fmt.Sprintf("GP-%s-%s", now.Format("20060102"), strings.ToUpper(hex.EncodeToString(b))), nil
}

// ReturnURL builds the deep link encoded into a repair's QR code. The
// scan matcher only relies on the trailing identifier, so the link shape
// may change without reprinting old passes becoming unscannable.
func ReturnURL(publicURL, repairID string) string {
	return fmt.Sprintf("%s/return/%s", strings.TrimRight(publicURL, "/"), repairID)
}

// DataURI renders payload as a 256px QR PNG wrapped in a data URI,
// suitable for embedding straight into a printable gate pass.
func DataURI(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("qr: encode %q: %w", payload, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
