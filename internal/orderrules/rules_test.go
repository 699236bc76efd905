package orderrules

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/configpkg"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

func at(hour, min int) time.Time {
	return time.Date(2022, 5, 1, hour, min, 0, 0, time.UTC)
}

func newOrder(op domain.Operation, issuer string, shares int64, price string, ts time.Time) domain.Order {
	return domain.Order{
		Operation:   op,
		IssuerName:  issuer,
		TotalShares: shares,
		SharePrice:  decimal.RequireFromString(price),
		Timestamp:   ts,
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	bought := domain.Account{
		ID:   1,
		Cash: decimal.NewFromInt(800),
		Orders: []domain.Order{
			newOrder(domain.OperationBuy, "AAPL", 2, "100", at(12, 0)),
		},
	}

	testCases := []struct {
		name    string
		account domain.Account
		order   domain.Order
		want    []domain.BusinessErrorCode
	}{
		{
			name:    "Admissible",
			account: domain.Account{Cash: decimal.NewFromInt(1000)},
			order:   newOrder(domain.OperationBuy, "AAPL", 2, "100", at(12, 0)),
			want:    []domain.BusinessErrorCode{},
		},
		{
			name:    "BuyExactlyAllCash",
			account: domain.Account{Cash: decimal.NewFromInt(200)},
			order:   newOrder(domain.OperationBuy, "AAPL", 2, "100", at(12, 0)),
			want:    []domain.BusinessErrorCode{},
		},
		{
			name:    "InsufficientBalance",
			account: domain.Account{Cash: decimal.NewFromInt(199)},
			order:   newOrder(domain.OperationBuy, "AAPL", 2, "100", at(12, 0)),
			want:    []domain.BusinessErrorCode{domain.InsufficientBalance},
		},
		{
			name:    "SellIgnoresBalance",
			account: bought,
			order:   newOrder(domain.OperationSell, "AAPL", 2, "100000", at(13, 0)),
			want:    []domain.BusinessErrorCode{},
		},
		{
			name:    "InsufficientStocks",
			account: bought,
			order:   newOrder(domain.OperationSell, "AAPL", 3, "100", at(13, 0)),
			want:    []domain.BusinessErrorCode{domain.InsufficientStocks},
		},
		{
			name:    "SellUnknownIssuer",
			account: bought,
			order:   newOrder(domain.OperationSell, "NFLX", 1, "100", at(13, 0)),
			want:    []domain.BusinessErrorCode{domain.InsufficientStocks},
		},
		{
			name:    "Duplicated",
			account: bought,
			order:   newOrder(domain.OperationBuy, "AAPL", 2, "100", at(12, 3)),
			want:    []domain.BusinessErrorCode{domain.DuplicatedOperation},
		},
		{
			name:    "DuplicatedEarlierTimestamp",
			account: bought,
			order:   newOrder(domain.OperationBuy, "AAPL", 1, "100", at(11, 56)),
			want:    []domain.BusinessErrorCode{domain.DuplicatedOperation},
		},
		{
			name:    "NotDuplicatedAtWindow",
			account: bought,
			order:   newOrder(domain.OperationBuy, "AAPL", 2, "100", at(12, 5)),
			want:    []domain.BusinessErrorCode{},
		},
		{
			name:    "NotDuplicatedOtherPrice",
			account: bought,
			order:   newOrder(domain.OperationBuy, "AAPL", 2, "100.01", at(12, 1)),
			want:    []domain.BusinessErrorCode{},
		},
		{
			name:    "NotDuplicatedOtherOperation",
			account: bought,
			order:   newOrder(domain.OperationSell, "AAPL", 1, "100", at(12, 1)),
			want:    []domain.BusinessErrorCode{},
		},
		{
			name:    "MarketOpenBoundary",
			account: domain.Account{Cash: decimal.NewFromInt(1000)},
			order:   newOrder(domain.OperationBuy, "AAPL", 1, "1", at(6, 0)),
			want:    []domain.BusinessErrorCode{},
		},
		{
			name:    "MarketCloseBoundary",
			account: domain.Account{Cash: decimal.NewFromInt(1000)},
			order:   newOrder(domain.OperationBuy, "AAPL", 1, "1", at(15, 0)),
			want:    []domain.BusinessErrorCode{},
		},
		{
			name:    "BeforeOpen",
			account: domain.Account{Cash: decimal.NewFromInt(1000)},
			order:   newOrder(domain.OperationBuy, "AAPL", 1, "1", at(5, 59)),
			want:    []domain.BusinessErrorCode{domain.ClosedMarket},
		},
		{
			name:    "AfterClose",
			account: domain.Account{Cash: decimal.NewFromInt(1000)},
			order:   newOrder(domain.OperationBuy, "AAPL", 1, "1", at(15, 1)),
			want:    []domain.BusinessErrorCode{domain.ClosedMarket},
		},
		{
			name:    "BalanceAndMarket",
			account: bought,
			order:   newOrder(domain.OperationBuy, "AAPL", 1, "6000", at(16, 0)),
			want:    []domain.BusinessErrorCode{domain.InsufficientBalance, domain.ClosedMarket},
		},
		{
			name:    "StocksDuplicateAndMarket",
			account: domain.Account{
				Cash: decimal.NewFromInt(100),
				Orders: []domain.Order{
					newOrder(domain.OperationBuy, "AAPL", 1, "10", at(14, 0)),
					newOrder(domain.OperationSell, "AAPL", 1, "10", at(20, 0)),
				},
			},
			order: newOrder(domain.OperationSell, "AAPL", 1, "10", at(20, 2)),
			want: []domain.BusinessErrorCode{
				domain.InsufficientStocks,
				domain.DuplicatedOperation,
				domain.ClosedMarket,
			},
		},
	}

	set := New(DefaultConfig())

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := set.Evaluate(context.Background(), tc.account, tc.order)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Evaluate() returned unexpected diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEvaluateMarketTimezone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Location = time.FixedZone("UTC-6", -6*60*60)

	set := New(cfg)
	acc := domain.Account{Cash: decimal.NewFromInt(1000)}

	// 13:00 UTC is 07:00 in the market zone.
	got := set.Evaluate(context.Background(), acc, newOrder(domain.OperationBuy, "AAPL", 1, "1", at(13, 0)))
	if len(got) != 0 {
		t.Errorf("Evaluate() at 07:00 local = %v, want no violations", got)
	}

	// 22:00 UTC is 16:00 in the market zone.
	got = set.Evaluate(context.Background(), acc, newOrder(domain.OperationBuy, "AAPL", 1, "1", at(22, 0)))
	if diff := cmp.Diff([]domain.BusinessErrorCode{domain.ClosedMarket}, got); diff != "" {
		t.Errorf("Evaluate() at 16:00 local returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestConfigFrom(t *testing.T) {
	t.Parallel()

	got, err := ConfigFrom(configpkg.Config{
		DuplicatedOrderThreshold: 2 * time.Minute,
		MarketOpensAt:            9,
		MarketClosesAt:           17,
		MarketTimezone:           "America/New_York",
	})
	if err != nil {
		t.Fatalf("ConfigFrom() returned error: %v", err)
	}

	if got.DuplicateWindow != 2*time.Minute || got.MarketOpensAt != 9*time.Hour ||
		got.MarketClosesAt != 17*time.Hour || got.Location.String() != "America/New_York" {
		t.Errorf("ConfigFrom() = %+v", got)
	}

	if _, err := ConfigFrom(configpkg.Config{MarketTimezone: "Mars/Olympus"}); err == nil {
		t.Error("ConfigFrom() with unknown timezone returned nil error")
	}
}

func contains(codes []domain.BusinessErrorCode, code domain.BusinessErrorCode) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}

	return false
}

func TestDuplicateWindowProperty(t *testing.T) {
	t.Parallel()

	set := New(DefaultConfig())
	window := DefaultConfig().DuplicateWindow

	rapid.Check(t, func(t *rapid.T) {
		offset := time.Duration(rapid.Int64Range(-int64(2*window), int64(2*window)).Draw(t, "offset"))

		first := newOrder(domain.OperationBuy, "AAPL", 1, "10", at(10, 0))
		acc := domain.Account{Cash: decimal.NewFromInt(1000), Orders: []domain.Order{first}}

		candidate := first
		candidate.Timestamp = first.Timestamp.Add(offset)

		got := contains(set.Evaluate(context.Background(), acc, candidate), domain.DuplicatedOperation)

		abs := offset
		if abs < 0 {
			abs = -abs
		}

		if want := abs < window; got != want {
			t.Fatalf("offset %v: duplicated = %v, want %v", offset, got, want)
		}
	})
}

func TestMarketHoursProperty(t *testing.T) {
	t.Parallel()

	set := New(DefaultConfig())

	rapid.Check(t, func(t *rapid.T) {
		sec := rapid.IntRange(0, 24*60*60-1).Draw(t, "second")
		day := rapid.IntRange(1, 28).Draw(t, "day")

		ts := time.Date(2023, 2, day, 0, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
		o := newOrder(domain.OperationBuy, "AAPL", 1, "1", ts)

		got := contains(set.Evaluate(context.Background(), domain.Account{Cash: decimal.NewFromInt(10)}, o), domain.ClosedMarket)
		want := sec < 6*60*60 || sec > 15*60*60

		if got != want {
			t.Fatalf("time %s: closed = %v, want %v", ts.Format(time.TimeOnly), got, want)
		}
	})
}

func TestBalanceProperty(t *testing.T) {
	t.Parallel()

	set := New(DefaultConfig())

	rapid.Check(t, func(t *rapid.T) {
		cash := decimal.New(rapid.Int64Range(0, 1_000_000).Draw(t, "cashCents"), -2)
		shares := rapid.Int64Range(1, 1000).Draw(t, "shares")
		price := decimal.New(rapid.Int64Range(1, 100_000).Draw(t, "priceCents"), -2)

		o := domain.Order{
			Operation:   domain.OperationBuy,
			IssuerName:  "AAPL",
			TotalShares: shares,
			SharePrice:  price,
			Timestamp:   at(10, 0),
		}

		got := contains(set.Evaluate(context.Background(), domain.Account{Cash: cash}, o), domain.InsufficientBalance)
		if want := o.TotalAmount().GreaterThan(cash); got != want {
			t.Fatalf("cash %v amount %v: insufficient = %v, want %v", cash, o.TotalAmount(), got, want)
		}
	})
}
