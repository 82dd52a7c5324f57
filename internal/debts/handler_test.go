package debts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vehicledebts/pkg/logger"
	"vehicledebts/pkg/plate"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) SearchDebts(ctx context.Context, input SearchInput) ([]Debt, error) {
	args := m.Called(ctx, input)
	result, _ := args.Get(0).([]Debt)
	return result, args.Error(1)
}

func doSearch(t *testing.T, svc InterfaceService, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/debts?"+query, nil)
	rec := httptest.NewRecorder()

	h := NewDebtsHandler(svc, logger.NewNop())
	require.NoError(t, h.SearchDebts(e.NewContext(req, rec)))
	return rec
}

func TestHandler_SearchDebts_OK(t *testing.T) {
	svc := new(serviceMock)
	svc.On("SearchDebts", mock.Anything, SearchInput{
		LicensePlate: "ABC1C34",
		Renavam:      "12345678900",
		DebtOption:   "dpvat",
	}).Return([]Debt{Insurance{
		Amount:      5.23,
		Description: "DPVAT 2020",
		Title:       TitleInsurance,
		Type:        KindInsurance,
		Year:        2020,
	}}, nil)

	rec := doSearch(t, svc, "license_plate=abc-1c34&renavam=12345678900&debt_option=dpvat")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"amount":5.23,"description":"DPVAT 2020","title":"Seguro Obrigatório","type":"insurance","year":2020}]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_SearchDebts_EmptyResult(t *testing.T) {
	svc := new(serviceMock)
	svc.On("SearchDebts", mock.Anything, mock.Anything).Return([]Debt{}, nil)

	rec := doSearch(t, svc, "license_plate=ABC1234&renavam=12345678900")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_SearchDebts_BadRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing plate", query: "renavam=12345678900"},
		{name: "short plate", query: "license_plate=ABC12&renavam=12345678900"},
		{name: "missing renavam", query: "license_plate=ABC1234"},
		{name: "non numeric renavam", query: "license_plate=ABC1234&renavam=1234567890X"},
		{name: "wrong check digit", query: "license_plate=ABC1234&renavam=12345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMock)

			rec := doSearch(t, svc, tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "SearchDebts", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_SearchDebts_ErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid filter", err: ErrInvalidFilter, wantStatus: http.StatusBadRequest},
		{name: "invalid plate", err: plate.ErrInvalidPlateCharacter, wantStatus: http.StatusBadRequest},
		{
			name:       "gateway failure",
			err:        &GatewayError{Query: QueryTickets, Err: errors.New("timeout")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "invalid records",
			err: ValidationErrors{{Type: KindTicket, Index: 0, Fields: map[string][]string{
				"auto_infraction": {msgRequired},
			}}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMock)
			svc.On("SearchDebts", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := doSearch(t, svc, "license_plate=ABC1234&renavam=12345678900&debt_option=ticket")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_SearchDebts_ValidationBody(t *testing.T) {
	svc := new(serviceMock)
	svc.On("SearchDebts", mock.Anything, mock.Anything).Return(nil, ValidationErrors{
		{Type: KindInsurance, Index: 2, Fields: map[string][]string{"year": {msgRequired}}},
	})

	rec := doSearch(t, svc, "license_plate=ABC1234&renavam=12345678900")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, KindInsurance, body.Errors[0].Type)
	assert.Equal(t, 2, body.Errors[0].Index)
	assert.Equal(t, []string{msgRequired}, body.Errors[0].Fields["year"])
}
