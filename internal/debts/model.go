package debts

import (
	"strconv"
)

// Kind is the discriminant written to the "type" field of every record.
type Kind string

const (
	KindTicket     Kind = "ticket"
	KindVehicleTax Kind = "ipva"
	KindInsurance  Kind = "insurance"
	KindLicensing  Kind = "licensing"
)

// Query names the Detran-SP webservice method for a debt category.
type Query string

const (
	QueryTickets    Query = "ConsultaMultas"
	QueryVehicleTax Query = "ConsultaIPVA"
	QueryInsurance  Query = "ConsultaDPVAT"
	QueryLicensing  Query = "ConsultaLicenciamento"
)

// Query returns the upstream method that retrieves debts of this kind.
func (k Kind) Query() Query {
	switch k {
	case KindTicket:
		return QueryTickets
	case KindVehicleTax:
		return QueryVehicleTax
	case KindInsurance:
		return QueryInsurance
	case KindLicensing:
		return QueryLicensing
	}
	return ""
}

const (
	TitleTicket    = "Infração de Trânsito"
	TitleInsurance = "Seguro Obrigatório"
	TitleLicensing = "Licenciamento"

	titleVehicleTax     = "IPVA"
	uniqueInstallment   = "unique"
	uniqueInstallmentPT = "Única"
)

// Debt is any normalized record returned to the caller. The four kinds share
// only the JSON shape {amount, description, title, type}.
type Debt interface {
	DebtType() Kind
}

type Ticket struct {
	Amount         float64 `json:"amount"`
	AutoInfraction string  `json:"auto_infraction"`
	Description    string  `json:"description"`
	Title          string  `json:"title"`
	Type           Kind    `json:"type"`
}

func (Ticket) DebtType() Kind { return KindTicket }

type VehicleTax struct {
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	Installment *Installment `json:"installment,omitempty"`
	Title       string       `json:"title"`
	Type        Kind         `json:"type"`
	Year        int          `json:"year"`
}

func (VehicleTax) DebtType() Kind { return KindVehicleTax }

type Insurance struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Title       string  `json:"title"`
	Type        Kind    `json:"type"`
	Year        int     `json:"year"`
}

func (Insurance) DebtType() Kind { return KindInsurance }

type Licensing struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Title       string  `json:"title"`
	Type        Kind    `json:"type"`
	Year        int     `json:"year"`
}

func (Licensing) DebtType() Kind { return KindLicensing }

// Installment is an IPVA quota: a number from 1 to 8, or the single-payment
// sentinel serialized as "unique".
type Installment struct {
	number int
	unique bool
}

func NumberedInstallment(n int) Installment {
	return Installment{number: n}
}

func UniqueInstallment() Installment {
	return Installment{unique: true}
}

func (i Installment) IsUnique() bool { return i.unique }

func (i Installment) String() string {
	if i.unique {
		return uniqueInstallment
	}
	return strconv.Itoa(i.number)
}

func (i Installment) MarshalJSON() ([]byte, error) {
	if i.unique {
		return []byte(strconv.Quote(uniqueInstallment)), nil
	}
	return strconv.AppendInt(nil, int64(i.number), 10), nil
}

// SearchInput carries the identifying query parameters of a search.
type SearchInput struct {
	LicensePlate string
	Renavam      string
	DebtOption   string
}

type SearchRequest struct {
	LicensePlate string `query:"license_plate" validate:"required,len=7,alphanum"`
	Renavam      string `query:"renavam" validate:"required,numeric,min=9,max=11"`
	DebtOption   string `query:"debt_option"`
}

type ErrorResponse struct {
	Message string           `json:"message"`
	Errors  ValidationErrors `json:"errors,omitempty"`
}
