package models

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := NewCatalog(DefaultInstruments())
	require.NoError(t, err)

	require.Len(t, cat.ByKind(SourceSpot), 4)
	require.Len(t, cat.ByKind(SourceDailyClose), 3)
	require.Len(t, cat.ByKind(SourceExchangeRate), 2)
	require.Len(t, cat.ByKind(SourceCrossRate), 1)
	require.Equal(t, []string{"USD", "CNY"}, cat.Currencies())

	csi, ok := cat.Get("ETF_CSI_300")
	require.True(t, ok)
	require.True(t, csi.Source.ScaleByCrossRate)
	require.Equal(t, 20.0, csi.Source.Multiplier)
}

func TestNewCatalogRejects(t *testing.T) {
	spot := Instrument{Key: "Gold", Category: CategoryRareMaterials, Source: SourceSpec{Kind: SourceSpot, Symbol: "XAU"}}

	cases := map[string][]Instrument{
		"duplicate key":  {spot, spot},
		"invalid key":    {{Key: "Gold; DROP", Category: CategoryRareMaterials, Source: spot.Source}},
		"missing symbol": {{Key: "Gold", Category: CategoryRareMaterials, Source: SourceSpec{Kind: SourceSpot}}},
		"zero multiplier": {{Key: "SPY", Category: CategoryETF,
			Source: SourceSpec{Kind: SourceDailyClose, Symbol: "SPY"}}},
		"scale without cross rate": {{Key: "CSI", Category: CategoryETF,
			Source: SourceSpec{Kind: SourceDailyClose, Symbol: "ASHR", Multiplier: 20, ScaleByCrossRate: true}}},
		"unknown kind": {{Key: "X", Category: CategoryETF, Source: SourceSpec{Kind: "weekly"}}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(items)
			require.Error(t, err)
		})
	}
}

func TestPriceRecordValidate(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, PriceRecord{InstrumentKey: "Gold", Date: day, Price: 0}.Validate())
	require.Error(t, PriceRecord{InstrumentKey: "Gold", Date: day, Price: -1}.Validate())
	require.Error(t, PriceRecord{InstrumentKey: "Gold", Date: day, Price: math.NaN()}.Validate())
	require.Error(t, PriceRecord{InstrumentKey: "Gold", Price: 1}.Validate())
}

func TestErrorKinds(t *testing.T) {
	stale := &StalenessError{Key: "SPY", Expected: time.Now(), Actual: time.Now()}
	require.True(t, errors.Is(stale, ErrStale))
	require.Equal(t, "stale", ErrorKind(stale))

	netErr := NetworkError("goldapi", "spot XAU", errors.New("timeout"))
	require.True(t, errors.Is(netErr, ErrNetwork))
	require.Equal(t, "network", ErrorKind(netErr))

	require.Equal(t, "schema", ErrorKind(SchemaError("er", "latest", "missing %s", "EUR")))
	require.Equal(t, "derivation", ErrorKind(DerivationError("USD is zero")))
	require.Equal(t, "storage", ErrorKind(StorageError("insert", errors.New("disk full"))))
}

func TestRunReport(t *testing.T) {
	r := NewRunReport("run-1", time.Now(), time.Now())
	r.Stored("Gold", 2345.68, UpsertInserted)
	r.Stored("Silver", 29.1, UpsertAlreadyPresent)
	r.Failed("Bitcoin", NetworkError("goldapi", "spot BTC", errors.New("boom")))
	r.SkipMissing([]string{"Gold", "EUR_USD"}, "exchange rates unavailable")

	o, ok := r.Outcome("Silver")
	require.True(t, ok)
	require.True(t, o.AlreadyPresent)

	o, _ = r.Outcome("Bitcoin")
	require.Equal(t, "network", o.ErrorKind)

	counts := r.Counts()
	require.Equal(t, 2, counts[StatusStored])
	require.Equal(t, 1, counts[StatusFailed])
	require.Equal(t, 1, counts[StatusSkipped])
}
