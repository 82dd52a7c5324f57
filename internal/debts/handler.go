package debts

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"vehicledebts/pkg/logger"
	"vehicledebts/pkg/plate"
	"vehicledebts/validation"
)

type Handler struct {
	InterfaceService InterfaceService
	Logger           *logger.Logger
}

func NewDebtsHandler(InterfaceService InterfaceService, log *logger.Logger) *Handler {
	return &Handler{
		InterfaceService: InterfaceService,
		Logger:           log,
	}
}

// SearchDebts godoc
// @Summary Consultar débitos do veículo.
// @Description Consulta multas, IPVA, DPVAT e licenciamento no Detran-SP.
// @Tags Débitos
// @Produce json
// @Param license_plate query string true "Placa (padrão cinza ou Mercosul)"
// @Param renavam query string true "RENAVAM"
// @Param debt_option query string false "ticket, ipva, dpvat ou licensing"
// @Success 200 {array} object "Débitos normalizados"
// @Failure 400 {string} string "Requisição Inválida"
// @Failure 422 {object} ErrorResponse "Débito inválido retornado pelo Detran"
// @Failure 502 {string} string "Falha na consulta ao Detran"
// @Router /debts [get]
func (h *Handler) SearchDebts(e echo.Context) error {
	var request SearchRequest
	if err := e.Bind(&request); err != nil {
		return e.JSON(http.StatusBadRequest, err.Error())
	}
	request.LicensePlate = plate.Sanitize(request.LicensePlate)

	if err := validation.Validate(request); err != nil {
		return e.JSON(http.StatusBadRequest, err.Error())
	}

	if !validation.ValidateRenavam(request.Renavam) {
		return e.JSON(http.StatusBadRequest, "RENAVAM inválido")
	}

	result, err := h.InterfaceService.SearchDebts(e.Request().Context(), SearchInput{
		LicensePlate: request.LicensePlate,
		Renavam:      request.Renavam,
		DebtOption:   request.DebtOption,
	})
	if err != nil {
		return h.respondError(e, err)
	}

	return e.JSON(http.StatusOK, result)
}

func (h *Handler) respondError(e echo.Context, err error) error {
	var (
		invalid ValidationErrors
		gwErr   *GatewayError
	)

	switch {
	case errors.Is(err, ErrInvalidFilter),
		errors.Is(err, plate.ErrInvalidPlateCharacter),
		errors.Is(err, plate.ErrInvalidPlateLength):
		return e.JSON(http.StatusBadRequest, err.Error())
	case errors.As(err, &invalid):
		return e.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "entity validation error",
			Errors:  invalid,
		})
	case errors.As(err, &gwErr):
		h.Logger.Error("detran query failed", "query", gwErr.Query, "error", gwErr.Err)
		return e.JSON(http.StatusBadGateway, gwErr.Error())
	default:
		h.Logger.Error("debts search failed", "error", err)
		return e.JSON(http.StatusInternalServerError, err.Error())
	}
}
