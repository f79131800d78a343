// Package rpc (format.go) provides parsing and formatting helpers for
// Ethereum-specific data: hex-to-decimal conversion and human-readable
// number display.
package rpc

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ParseHexUint64 converts a hex-encoded string (with or without "0x" prefix)
// to uint64. Used for values that fit in 64 bits: block numbers, timestamps,
// gas limits, gas used.
//
// Examples:
//   - "0x1c9c380" -> 30000000
//   - "0x0" -> 0
//   - "" -> 0 (empty string treated as zero)
func ParseHexUint64(hex string) (uint64, error) {
	hex = strings.TrimPrefix(hex, "0x")
	if hex == "" {
		return 0, nil
	}

	val := new(big.Int)
	_, ok := val.SetString(hex, 16)
	if !ok {
		return 0, fmt.Errorf("invalid hex: %s", hex)
	}
	if !val.IsUint64() {
		return 0, fmt.Errorf("value overflows uint64: %s", hex)
	}
	return val.Uint64(), nil
}

// ParseHexBigInt converts a hex-encoded string to *big.Int for values that
// may exceed uint64 range, such as baseFeePerGas in wei.
func ParseHexBigInt(hex string) (*big.Int, error) {
	hex = strings.TrimPrefix(hex, "0x")
	if hex == "" {
		return big.NewInt(0), nil
	}

	val := new(big.Int)
	_, ok := val.SetString(hex, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex: %s", hex)
	}
	return val, nil
}

// FormatNumber adds thousand separators to a number for readability,
// e.g. 30000000 -> "30,000,000".
func FormatNumber(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatGwei converts a wei amount to gwei (1 gwei = 10^9 wei) for display,
// e.g. 24000000000 wei -> "24.00 gwei". big.Float keeps the division exact
// for values beyond uint64 range.
func FormatGwei(wei *big.Int) string {
	if wei == nil {
		return "—"
	}

	gwei := new(big.Float).Quo(
		new(big.Float).SetInt(wei),
		big.NewFloat(1e9),
	)

	f, _ := gwei.Float64()
	return fmt.Sprintf("%.2f gwei", f)
}

// NormalizeBlockArg converts block identifiers (decimal, hex, or tag) to RPC
// format: "latest" stays "latest", decimal numbers become 0x-prefixed hex,
// hex strings pass through unchanged.
func NormalizeBlockArg(arg string) string {
	arg = strings.TrimSpace(strings.ToLower(arg))

	if arg == "latest" || arg == "pending" || arg == "earliest" || arg == "" {
		if arg == "" {
			return "latest"
		}
		return arg
	}

	if strings.HasPrefix(arg, "0x") {
		return arg
	}

	num, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		// Not a valid decimal number - return as-is and let the RPC reject it.
		return arg
	}
	return fmt.Sprintf("0x%x", num)
}
