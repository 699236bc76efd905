// Package randompkg provides functionality for generating random application items.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// IntBetween generates a random integer between min and max inclusive.
func IntBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

// FloatBetween generates a random decimal number between min and max rounded to 2 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*100) / 100
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// ClientName generates a random API client name.
func ClientName() string {
	return String(8)
}

// APIKey generates a random API key.
func APIKey() string {
	return String(32)
}

// IssuerName generates a random upper-case ticker.
func IssuerName() string {
	return strings.ToUpper(String(4))
}

// Shares generates a random positive number of shares.
func Shares() int64 {
	return IntBetween(1, 100)
}

// MoneyAmountBetween generates a random positive amount of money between min and max.
func MoneyAmountBetween(min, max float64) decimal.Decimal {
	amount := decimal.NewFromFloat(FloatBetween(min, max))
	if !amount.IsPositive() {
		return decimal.NewFromInt(1)
	}

	return amount
}

// MarketTime returns a random moment of today between 06:00 and 15:00 UTC.
func MarketTime() time.Time {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return today.Add(6 * time.Hour).Add(time.Duration(Intn(9*60*60)) * time.Second)
}
