package debts

// Filter selects which categories a search retrieves.
type Filter int

const (
	FilterAll Filter = iota
	FilterTickets
	FilterVehicleTax
	FilterInsurance
	FilterLicensing
)

// resultOrder is the order in which categories appear in a combined result.
var resultOrder = []Kind{KindTicket, KindVehicleTax, KindInsurance, KindLicensing}

// ParseFilter maps the debt_option query value to a Filter. Unknown values
// are rejected, never defaulted to FilterAll.
func ParseFilter(option string) (Filter, error) {
	switch option {
	case "":
		return FilterAll, nil
	case "ticket":
		return FilterTickets, nil
	case "ipva":
		return FilterVehicleTax, nil
	case "dpvat":
		return FilterInsurance, nil
	case "licensing":
		return FilterLicensing, nil
	default:
		return 0, ErrInvalidFilter
	}
}

// Kinds lists the categories selected by the filter, in result order.
func (f Filter) Kinds() []Kind {
	switch f {
	case FilterAll:
		return resultOrder
	case FilterTickets:
		return []Kind{KindTicket}
	case FilterVehicleTax:
		return []Kind{KindVehicleTax}
	case FilterInsurance:
		return []Kind{KindInsurance}
	case FilterLicensing:
		return []Kind{KindLicensing}
	}
	return nil
}

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterTickets:
		return "ticket"
	case FilterVehicleTax:
		return "ipva"
	case FilterInsurance:
		return "dpvat"
	case FilterLicensing:
		return "licensing"
	}
	return "invalid"
}
