package service

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	accountIDVersionByte = 6 << 3 // 'G'
	strkeyLength         = 56
	maxAssetCodeLength   = 12
)

// ValidateAddress checks that address is a Stellar account ID (G... strkey):
// base32, version byte G, 32-byte key and a valid CRC16-XModem checksum.
func ValidateAddress(address string) error {
	if len(address) != strkeyLength {
		return fmt.Errorf("invalid address: must be %d characters", strkeyLength)
	}

	raw, err := base32.StdEncoding.DecodeString(address)
	if err != nil {
		return fmt.Errorf("invalid address: not base32")
	}

	if raw[0] != accountIDVersionByte {
		return fmt.Errorf("invalid address: not an account ID")
	}

	payload, checksum := raw[:len(raw)-2], raw[len(raw)-2:]
	crc := crc16XModem(payload)
	if checksum[0] != byte(crc) || checksum[1] != byte(crc>>8) {
		return fmt.Errorf("invalid address: checksum mismatch")
	}

	return nil
}

func crc16XModem(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// ValidateTxHash checks that hash is a 64-character hex transaction hash.
func ValidateTxHash(hash string) error {
	if len(hash) != 64 {
		return fmt.Errorf("invalid transaction hash: must be 64 hex characters")
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return fmt.Errorf("invalid transaction hash: must be hex")
	}
	return nil
}

// ValidateAssetCode checks that code is 1-12 ASCII letters or digits.
func ValidateAssetCode(code string) error {
	if len(code) == 0 || len(code) > maxAssetCodeLength {
		return fmt.Errorf("invalid asset code: must be 1-%d characters", maxAssetCodeLength)
	}

	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fmt.Errorf("invalid asset code: must be alphanumeric")
		}
	}

	return nil
}

// ValidateAmount checks if amount is valid (positive)
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return nil
}
