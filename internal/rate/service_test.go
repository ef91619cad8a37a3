package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// --- Testify mocks ---

type MockRateStore struct{ mock.Mock }

func (m *MockRateStore) Upsert(ctx context.Context, code string, rate float64, source domain.Source, effectiveAt time.Time) (domain.UpsertResult, error) {
	args := m.Called(ctx, code, rate, source, effectiveAt)
	res, _ := args.Get(0).(domain.UpsertResult)
	return res, args.Error(1)
}

func (m *MockRateStore) GetCurrent(ctx context.Context, code string) (*domain.RateRecord, error) {
	args := m.Called(ctx, code)
	rec, _ := args.Get(0).(*domain.RateRecord)
	return rec, args.Error(1)
}

func (m *MockRateStore) GetAllCurrent(ctx context.Context) ([]domain.RateRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]domain.RateRecord)
	return records, args.Error(1)
}

func (m *MockRateStore) Freshness(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).(*time.Time)
	return ts, args.Error(1)
}

type MockSnapshotCache struct{ mock.Mock }

func (m *MockSnapshotCache) Get(key string) ([]domain.RateRecord, bool) {
	args := m.Called(key)
	records, _ := args.Get(0).([]domain.RateRecord)
	return records, args.Bool(1)
}

func (m *MockSnapshotCache) Set(key string, records []domain.RateRecord) {
	m.Called(key, records)
}

func (m *MockSnapshotCache) Drop(keys ...string) {
	m.Called(keys)
}

type MockSourceClient struct{ mock.Mock }

func (m *MockSourceClient) Fetch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func knownCodes() map[string]struct{} {
	return map[string]struct{}{"USD": {}, "EUR": {}, "MLC": {}}
}

func publicCodes() map[string]struct{} {
	return map[string]struct{}{"USD": {}, "EUR": {}}
}

func upserted(code string, rate float64, source domain.Source, at time.Time) domain.UpsertResult {
	return domain.UpsertResult{
		Created: true,
		Record:  domain.RateRecord{Code: code, Rate: rate, Source: source, EffectiveAt: at},
	}
}

// --- RefreshNow ---

func TestService_RefreshNow_MirrorEndToEnd(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	mirror := new(MockSourceClient)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), mirror, nil)

	// lowercase key, comma decimal: the whole normalization path in one go
	mirror.On("Fetch", mock.Anything).Return(`{"rates": {"usd": "295,50"}}`, nil).Once()
	store.On("Upsert", mock.Anything, "USD", 295.5, domain.SourceMirror, mock.AnythingOfType("time.Time")).
		Return(upserted("USD", 295.5, domain.SourceMirror, time.Now().UTC()), nil).Once()
	cache.On("Drop", []string{snapshotKey}).Return().Once()

	res, err := svc.RefreshNow(context.Background())

	require.NoError(t, err)
	require.Equal(t, domain.SourceMirror, res.Source)
	require.Equal(t, "mirror", res.Strategy)
	require.Len(t, res.Items, 1)
	require.Equal(t, "USD", res.Items[0].Code)
	require.InDelta(t, 295.5, res.Items[0].Rate, 1e-9)
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
	mirror.AssertExpectations(t)
}

func TestService_RefreshNow_PrefersMirrorOverScraper(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	mirror := new(MockSourceClient)
	scraper := new(MockSourceClient)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), mirror, scraper)

	mirror.On("Fetch", mock.Anything).Return(`{"rates": {"USD": 400}}`, nil).Once()
	store.On("Upsert", mock.Anything, "USD", 400.0, domain.SourceMirror, mock.AnythingOfType("time.Time")).
		Return(upserted("USD", 400, domain.SourceMirror, time.Now().UTC()), nil).Once()
	cache.On("Drop", []string{snapshotKey}).Return().Once()

	_, err := svc.RefreshNow(context.Background())

	require.NoError(t, err)
	scraper.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestService_RefreshNow_ScrapeFallback(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	scraper := new(MockSourceClient)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, scraper)

	doc := `<table><tbody><tr><td>1 USD</td><td>400.00 CUP</td></tr></tbody></table>`
	scraper.On("Fetch", mock.Anything).Return(doc, nil).Once()
	store.On("Upsert", mock.Anything, "USD", 400.0, domain.SourceScrape, mock.AnythingOfType("time.Time")).
		Return(upserted("USD", 400, domain.SourceScrape, time.Now().UTC()), nil).Once()
	cache.On("Drop", []string{snapshotKey}).Return().Once()

	res, err := svc.RefreshNow(context.Background())

	require.NoError(t, err)
	require.Equal(t, domain.SourceScrape, res.Source)
	require.Equal(t, "table", res.Strategy)
}

func TestService_RefreshNow_NoSourceConfigured(t *testing.T) {
	svc := NewService(new(MockRateStore), new(MockSnapshotCache), NewValidator(knownCodes()), publicCodes(), nil, nil)

	_, err := svc.RefreshNow(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestService_RefreshNow_UpstreamUnavailable(t *testing.T) {
	mirror := new(MockSourceClient)
	svc := NewService(new(MockRateStore), new(MockSnapshotCache), NewValidator(knownCodes()), publicCodes(), mirror, nil)

	mirror.On("Fetch", mock.Anything).
		Return("", errors.Join(domain.ErrUpstreamUnavailable, errors.New("status 503"))).Once()

	_, err := svc.RefreshNow(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestService_RefreshNow_ParseEmpty(t *testing.T) {
	mirror := new(MockSourceClient)
	svc := NewService(new(MockRateStore), new(MockSnapshotCache), NewValidator(knownCodes()), publicCodes(), mirror, nil)

	mirror.On("Fetch", mock.Anything).Return(`{"asOf": "2026-08-01"}`, nil).Once()

	_, err := svc.RefreshNow(context.Background())
	require.ErrorIs(t, err, domain.ErrParseEmpty)
	require.Contains(t, err.Error(), "mirror")
}

func TestService_RefreshNow_StoreErrorPropagates(t *testing.T) {
	store := new(MockRateStore)
	mirror := new(MockSourceClient)
	svc := NewService(store, new(MockSnapshotCache), NewValidator(knownCodes()), publicCodes(), mirror, nil)

	mirror.On("Fetch", mock.Anything).Return(`{"rates": {"USD": 400}}`, nil).Once()
	wantErr := errors.New("db temporarily unavailable")
	store.On("Upsert", mock.Anything, "USD", 400.0, domain.SourceMirror, mock.AnythingOfType("time.Time")).
		Return(domain.UpsertResult{}, wantErr).Once()

	_, err := svc.RefreshNow(context.Background())
	require.ErrorIs(t, err, wantErr)
}

// --- Override ---

func TestService_Override_AppliesValidSkipsInvalid(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, nil)

	store.On("Upsert", mock.Anything, "USD", 395.0, domain.SourceManual, mock.AnythingOfType("time.Time")).
		Return(upserted("USD", 395, domain.SourceManual, time.Now().UTC()), nil).Once()
	store.On("Upsert", mock.Anything, "EUR", 410.5, domain.SourceManual, mock.AnythingOfType("time.Time")).
		Return(upserted("EUR", 410.5, domain.SourceManual, time.Now().UTC()), nil).Once()
	cache.On("Drop", []string{snapshotKey}).Return().Once()

	res, err := svc.Override(context.Background(), map[string]string{
		"usd": "395",
		"EUR": "410,50",
		"ZZZ": "100",   // unknown code
		"MLC": "abc",   // unparseable
		"CUP": "2",     // base currency is not overridable
	})

	require.NoError(t, err)
	require.Equal(t, domain.SourceManual, res.Source)
	require.Len(t, res.Items, 2)
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Override_AllInvalid(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, nil)

	_, err := svc.Override(context.Background(), map[string]string{
		"ZZZ": "100",
		"USD": "-5",
		"EUR": "",
	})

	require.ErrorIs(t, err, domain.ErrNoValidRates)
	store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Drop", mock.Anything)
}

// --- Reads ---

func TestService_PublicRates_EmptyStoreDegradesToBaseOnly(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, nil)

	cache.On("Get", snapshotKey).Return(nil, false).Once()
	store.On("GetAllCurrent", mock.Anything).Return([]domain.RateRecord{}, nil).Once()
	cache.On("Set", snapshotKey, mock.Anything).Return().Once()

	view, err := svc.PublicRates(context.Background())

	require.NoError(t, err)
	require.Nil(t, view.AsOf)
	require.Equal(t, map[string]float64{"CUP": 1}, view.Rates)
}

func TestService_PublicRates_FiltersToPublicSubset(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, nil)

	older := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	records := []domain.RateRecord{
		{Code: "USD", Rate: 400, Source: domain.SourceScrape, EffectiveAt: newer},
		{Code: "EUR", Rate: 410, Source: domain.SourceScrape, EffectiveAt: older},
		{Code: "MLC", Rate: 250, Source: domain.SourceManual, EffectiveAt: older}, // known but not public
	}

	cache.On("Get", snapshotKey).Return(nil, false).Once()
	store.On("GetAllCurrent", mock.Anything).Return(records, nil).Once()
	cache.On("Set", snapshotKey, records).Return().Once()

	view, err := svc.PublicRates(context.Background())

	require.NoError(t, err)
	require.NotNil(t, view.AsOf)
	require.Equal(t, newer, *view.AsOf)
	require.Equal(t, map[string]float64{"CUP": 1, "USD": 400, "EUR": 410}, view.Rates)
}

func TestService_PublicRates_ServedFromCache(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, nil)

	at := time.Now().UTC()
	cache.On("Get", snapshotKey).
		Return([]domain.RateRecord{{Code: "USD", Rate: 400, Source: domain.SourceScrape, EffectiveAt: at}}, true).Once()

	view, err := svc.PublicRates(context.Background())

	require.NoError(t, err)
	require.InDelta(t, 400.0, view.Rates["USD"], 1e-9)
	store.AssertNotCalled(t, "GetAllCurrent", mock.Anything)
}

func TestService_AllRates_EmptyStoreIsNotFound(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, nil)

	cache.On("Get", snapshotKey).Return(nil, false).Once()
	store.On("GetAllCurrent", mock.Anything).Return([]domain.RateRecord{}, nil).Once()
	cache.On("Set", snapshotKey, mock.Anything).Return().Once()

	_, err := svc.AllRates(context.Background())
	require.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestService_AllRates_IncludesNonPublicCodes(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, nil)

	at := time.Now().UTC()
	records := []domain.RateRecord{
		{Code: "USD", Rate: 400, Source: domain.SourceScrape, EffectiveAt: at},
		{Code: "MLC", Rate: 250, Source: domain.SourceManual, EffectiveAt: at},
	}
	cache.On("Get", snapshotKey).Return(nil, false).Once()
	store.On("GetAllCurrent", mock.Anything).Return(records, nil).Once()
	cache.On("Set", snapshotKey, records).Return().Once()

	view, err := svc.AllRates(context.Background())

	require.NoError(t, err)
	require.Equal(t, map[string]float64{"CUP": 1, "USD": 400, "MLC": 250}, view.Rates)
}

// --- ConvertAmount ---

func TestService_ConvertAmount(t *testing.T) {
	store := new(MockRateStore)
	cache := new(MockSnapshotCache)
	svc := NewService(store, cache, NewValidator(knownCodes()), publicCodes(), nil, nil)

	at := time.Now().UTC()
	cache.On("Get", snapshotKey).
		Return([]domain.RateRecord{{Code: "USD", Rate: 400, Source: domain.SourceScrape, EffectiveAt: at}}, true)

	converted, formatted, err := svc.ConvertAmount(context.Background(), 1000, "usd", "cup")
	require.NoError(t, err)
	require.Equal(t, int64(400000), converted)
	require.Equal(t, "4000.00 CUP", formatted)

	// missing rate degrades to unchanged amount
	converted, _, err = svc.ConvertAmount(context.Background(), 1000, "usd", "eur")
	require.NoError(t, err)
	require.Equal(t, int64(1000), converted)
}
