package debts

import (
	"fmt"
)

type categoryKeys struct {
	outer string
	inner string
}

var extractKeys = map[Kind]categoryKeys{
	KindTicket:     {outer: "Multas", inner: "Multa"},
	KindVehicleTax: {outer: "IPVAs", inner: "IPVA"},
	KindInsurance:  {outer: "DPVATs", inner: "DPVAT"},
	KindLicensing:  {outer: "Licenciamento"},
}

// Extract pulls the raw items of one category out of an upstream payload.
// A missing, null or empty category returns found=false and no error;
// ErrMalformedPayload is reserved for values of an unexpected shape.
func Extract(payload map[string]any, kind Kind) (items []map[string]any, found bool, err error) {
	keys, ok := extractKeys[kind]
	if !ok {
		return nil, false, fmt.Errorf("unknown debt kind %q", kind)
	}

	value, ok := payload[keys.outer]
	if !ok || value == nil {
		if kind == KindLicensing && isFlatLicensing(payload) {
			return []map[string]any{payload}, true, nil
		}
		return nil, false, nil
	}

	category, ok := value.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s is %T", ErrMalformedPayload, keys.outer, value)
	}
	if len(category) == 0 {
		return nil, false, nil
	}

	// Licenciamento is a single object, not a list
	if keys.inner == "" {
		return []map[string]any{category}, true, nil
	}

	items, err = asItemList(category[keys.inner], keys.inner)
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return items, true, nil
}

var flatLicensingKeys = []string{"TaxaLicenciamento", "Exercicio", "DescricaoLicenciamento"}

// the licensing query answers with the record itself at the top level
func isFlatLicensing(payload map[string]any) bool {
	for _, key := range flatLicensingKeys {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}

func asItemList(value any, key string) ([]map[string]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		// XML-to-JSON bridges collapse one-element lists into an object
		if len(v) == 0 {
			return nil, nil
		}
		return []map[string]any{v}, nil
	case []any:
		items := make([]map[string]any, 0, len(v))
		for i, raw := range v {
			item, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] is %T", ErrMalformedPayload, key, i, raw)
			}
			items = append(items, item)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T", ErrMalformedPayload, key, value)
	}
}
