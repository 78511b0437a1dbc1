package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      domain.Date
		wantError bool
	}{
		{name: "iso_date", input: "2025-01-31", want: domain.Date{Year: 2025, Month: time.January, Day: 31}},
		{name: "localized_date", input: "31/01/2025", want: domain.Date{Year: 2025, Month: time.January, Day: 31}},
		{name: "timestamp_is_truncated", input: "2025-03-02T10:11:12Z", want: domain.Date{Year: 2025, Month: time.March, Day: 2}},
		{name: "surrounding_spaces", input: "  2024-12-25 ", want: domain.Date{Year: 2024, Month: time.December, Day: 25}},
		{name: "empty", input: "", wantError: true},
		{name: "garbage", input: "yesterday", wantError: true},
		{name: "impossible_day", input: "2025-02-30", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseDate(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_Formatting(t *testing.T) {
	d := domain.MustParseDate("2025-07-04")

	assert.Equal(t, "2025-07-04", d.String())
	assert.Equal(t, "04/07/2025", d.FormatBR())
	assert.Equal(t, "", domain.Date{}.FormatBR())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-07-04"`, string(data))

	var decoded domain.Date
	require.NoError(t, json.Unmarshal([]byte(`"04/07/2025"`), &decoded))
	assert.Equal(t, d, decoded)

	require.NoError(t, json.Unmarshal([]byte(`null`), &decoded))
	assert.True(t, decoded.IsZero())
}

func TestNewBatch(t *testing.T) {
	tests := []struct {
		name      string
		batchName string
		date      string
		wantField string
	}{
		{name: "valid_batch", batchName: "Lote A", date: "2025-01-01"},
		{name: "valid_localized_date", batchName: "Lote B", date: "01/02/2025"},
		{name: "missing_name", batchName: "", date: "2025-01-01", wantField: "name"},
		{name: "blank_name", batchName: "   ", date: "2025-01-01", wantField: "name"},
		{name: "missing_date", batchName: "Lote A", date: "", wantField: "closureDate"},
		{name: "invalid_date", batchName: "Lote A", date: "not-a-date", wantField: "closureDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := domain.NewBatch(tt.batchName, tt.date)
			if tt.wantField != "" {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, b.Name)
			assert.False(t, b.ClosureDate.IsZero())
		})
	}
}

func TestBatchPatch_Apply(t *testing.T) {
	original := domain.Batch{ID: "b1", Name: "Lote A", ClosureDate: domain.MustParseDate("2025-01-01")}

	newName := "Lote A2"
	updated, err := domain.BatchPatch{Name: &newName}.Apply(original)
	require.NoError(t, err)
	assert.Equal(t, "Lote A2", updated.Name)
	assert.Equal(t, original.ClosureDate, updated.ClosureDate)
	assert.Equal(t, "Lote A", original.Name, "original must not be mutated")

	empty := ""
	_, err = domain.BatchPatch{Name: &empty}.Apply(original)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.BatchPatch{ClosureDate: &empty}.Apply(original)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "integer", input: "100", want: "100"},
		{name: "dot_decimal", input: "150.75", want: "150.75"},
		{name: "comma_decimal", input: "150,75", want: "150.75"},
		{name: "thousands_and_comma", input: "1.234,56", want: "1234.56"},
		{name: "thousands_comma_and_dot", input: "1,234.56", want: "1234.56"},
		{name: "grouped_millions_dot_decimal", input: "1,234,567.89", want: "1234567.89"},
		{name: "grouped_millions_comma_decimal", input: "1.234.567,89", want: "1234567.89"},
		{name: "comma_cents", input: "80,50", want: "80.5"},
		{name: "trailing_garbage", input: "99abc", want: "99"},
		{name: "non_numeric", input: "abc", want: "0"},
		{name: "empty", input: "", want: "0"},
		{name: "negative", input: "-10", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ParseAmount(tt.input)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestNewEngine_ToDomain(t *testing.T) {
	catalog := domain.DefaultCatalog()
	valid := domain.NewEngine{
		VehicleModel: "Honda Civic",
		EngineNumber: "001",
		Operator:     "J",
		BatchID:      "b1",
		Services:     []domain.ServiceInput{{Type: string(domain.ServiceSimpleRevision), Amount: "100"}},
	}

	t.Run("valid_engine", func(t *testing.T) {
		e, err := valid.ToDomain(catalog)
		require.NoError(t, err)
		assert.Equal(t, domain.Today(), e.EntryDate)
		require.Len(t, e.Services, 1)
		assert.True(t, decimal.NewFromInt(100).Equal(e.Total()))
	})

	tests := []struct {
		name      string
		mutate    func(*domain.NewEngine)
		wantField string
	}{
		{name: "missing_vehicle_model", mutate: func(n *domain.NewEngine) { n.VehicleModel = "" }, wantField: "vehicleModel"},
		{name: "missing_engine_number", mutate: func(n *domain.NewEngine) { n.EngineNumber = " " }, wantField: "engineNumber"},
		{name: "missing_operator", mutate: func(n *domain.NewEngine) { n.Operator = "" }, wantField: "operator"},
		{name: "missing_batch", mutate: func(n *domain.NewEngine) { n.BatchID = "" }, wantField: "batchId"},
		{name: "no_services", mutate: func(n *domain.NewEngine) { n.Services = nil }, wantField: "services"},
		{
			name:      "unknown_service_type",
			mutate:    func(n *domain.NewEngine) { n.Services = []domain.ServiceInput{{Type: "Pintura", Amount: "1"}} },
			wantField: "services[0].type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			input.Services = append([]domain.ServiceInput(nil), valid.Services...)
			tt.mutate(&input)

			_, err := input.ToDomain(catalog)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestService_TaggedPart(t *testing.T) {
	part := domain.NewService(domain.ServiceAdditionalParts, decimal.NewFromInt(50), "Bomba de óleo")
	require.NotNil(t, part.Part)
	assert.Equal(t, "Bomba de óleo", part.PartName())
	assert.Equal(t, "Peças adicionais: Bomba de óleo", part.Label())

	plain := domain.NewService(domain.ServiceLabor, decimal.NewFromInt(50), "ignored")
	assert.Nil(t, plain.Part)
	assert.Equal(t, "Serviços mão de obra", plain.Label())

	data, err := json.Marshal(plain)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "partName")

	var decoded domain.Service
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Troca de biela","amount":"10","partName":"x"}`), &decoded))
	assert.Nil(t, decoded.Part, "part name is dropped for types that do not carry one")
}

func TestEnginePatch_Apply(t *testing.T) {
	catalog := domain.DefaultCatalog()
	original := domain.Engine{
		ID:           "e1",
		BatchID:      "b1",
		VehicleModel: "Gol",
		EngineNumber: "123",
		Operator:     "Ana",
		Services:     []domain.Service{domain.NewService(domain.ServiceLabor, decimal.NewFromInt(10), "")},
	}

	services := []domain.ServiceInput{
		{Type: string(domain.ServiceAdditionalParts), Amount: "20,50", PartName: "Junta"},
		{Type: string(domain.ServiceLabor), Amount: "x"},
	}
	updated, err := domain.EnginePatch{Services: &services}.Apply(original, catalog)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20.5").Equal(updated.Total()))
	assert.Equal(t, "Junta", updated.Services[0].PartName())
	assert.Len(t, original.Services, 1)

	blank := ""
	_, err = domain.EnginePatch{Operator: &blank}.Apply(original, catalog)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEngineFilter_Match(t *testing.T) {
	from := domain.MustParseDate("2025-01-10")
	to := domain.MustParseDate("2025-01-20")
	minTotal := decimal.NewFromInt(100)
	maxTotal := decimal.NewFromInt(300)

	engine := domain.Engine{
		BatchID:      "b1",
		VehicleModel: "Fiat Palio Econômico",
		EngineNumber: "ABC-123",
		EntryDate:    domain.MustParseDate("2025-01-15"),
		Services: []domain.Service{
			domain.NewService(domain.ServiceHeadResurfacing, decimal.NewFromInt(150), ""),
			domain.NewService(domain.ServiceLabor, decimal.NewFromInt(50), ""),
		},
	}

	tests := []struct {
		name   string
		filter domain.EngineFilter
		want   bool
	}{
		{name: "empty_filter", filter: domain.EngineFilter{}, want: true},
		{name: "batch_match", filter: domain.EngineFilter{BatchID: "b1"}, want: true},
		{name: "batch_mismatch", filter: domain.EngineFilter{BatchID: "b2"}, want: false},
		{name: "model_case_and_accent_insensitive", filter: domain.EngineFilter{VehicleModel: "ECONOMICO"}, want: true},
		{name: "model_mismatch", filter: domain.EngineFilter{VehicleModel: "uno"}, want: false},
		{name: "engine_number_substring", filter: domain.EngineFilter{EngineNumber: "c-12"}, want: true},
		{name: "service_type_present", filter: domain.EngineFilter{ServiceType: domain.ServiceLabor}, want: true},
		{name: "service_type_absent", filter: domain.EngineFilter{ServiceType: domain.ServiceConnectingRodReplace}, want: false},
		{name: "total_in_range", filter: domain.EngineFilter{MinTotal: &minTotal, MaxTotal: &maxTotal}, want: true},
		{name: "total_below_min", filter: domain.EngineFilter{MinTotal: &maxTotal}, want: false},
		{name: "date_in_range", filter: domain.EngineFilter{From: &from, To: &to}, want: true},
		{name: "date_after_range", filter: domain.EngineFilter{To: &from}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(engine))
		})
	}
}

func TestErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.NewRemoteError("insert batch", cause)

	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, domain.NewRemoteError("noop", nil))

	cacheErr := &domain.CacheReadError{Key: "retifica-lotes", Err: cause}
	assert.ErrorIs(t, cacheErr, domain.ErrCacheRead)
	assert.Contains(t, cacheErr.Error(), "retifica-lotes")
}

func TestCatalog(t *testing.T) {
	c := domain.NewCatalog([]domain.ServiceType{"A", "", "A", "B"})
	assert.Equal(t, []domain.ServiceType{"A", "B", domain.ServiceAdditionalParts}, c.Types())
	assert.True(t, c.Contains("B"))
	assert.False(t, c.Contains("C"))

	assert.Len(t, domain.DefaultCatalog().Types(), len(domain.DefaultServiceTypes))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", domain.MaskSecret("", 4))
	assert.Equal(t, "***", domain.MaskSecret("abc", 4))
	assert.Equal(t, "abcd...", domain.MaskSecret("abcdefgh", 4))
}
