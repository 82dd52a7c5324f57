package debts

import (
	"fmt"
	"strconv"
	"strings"
)

// Each Normalize function builds an unexported draft from one raw upstream
// item, applies the category rules in order, validates the draft and only
// then freezes it into the returned record.

type ticketDraft struct {
	amount         numberField
	autoInfraction textField
	description    textField
	title          string
	typ            Kind
}

func NormalizeTicket(raw map[string]any) (Ticket, error) {
	d := ticketDraft{
		amount:         cents(raw, "Valor"),
		autoInfraction: readText(raw, "AIIP"),
		description:    readText(raw, "DescricaoEnquadramento"),
		title:          TitleTicket,
		typ:            KindTicket,
	}

	if err := validateTicket(d); err != nil {
		return Ticket{}, err
	}

	return Ticket{
		Amount:         d.amount.value,
		AutoInfraction: d.autoInfraction.value,
		Description:    d.description.value,
		Title:          d.title,
		Type:           d.typ,
	}, nil
}

type installmentField struct {
	present  bool
	isNumber bool
	number   int
	text     string
}

func (i installmentField) singlePayment() bool {
	return i.isNumber && (i.number == 0 || i.number == 7 || i.number == 8)
}

func readInstallment(raw map[string]any, key string) installmentField {
	v, ok := raw[key]
	if !ok || v == nil {
		return installmentField{}
	}

	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return installmentField{}
		}
		if n, err := strconv.Atoi(s); err == nil {
			return installmentField{present: true, isNumber: true, number: n}
		}
		return installmentField{present: true, text: s}
	}

	n := readInt(raw, key)
	if n.invalid {
		return installmentField{present: true, text: fmt.Sprint(v)}
	}
	return installmentField{present: true, isNumber: true, number: n.value}
}

type vehicleTaxDraft struct {
	amount      numberField
	description textField
	installment installmentField
	title       string
	typ         Kind
	year        intField
}

// buildTitle must run before setInstallment: the title shows the quota as
// received, while setInstallment rewrites single payments to the sentinel.
func (d *vehicleTaxDraft) buildTitle() {
	switch {
	case !d.installment.present:
		d.title = titleVehicleTax
	case d.installment.singlePayment(), d.installment.text == uniqueInstallment:
		d.title = titleVehicleTax + " - Cota " + uniqueInstallmentPT
	case d.installment.isNumber:
		d.title = fmt.Sprintf("%s - Cota %d", titleVehicleTax, d.installment.number)
	default:
		d.title = titleVehicleTax + " - Cota " + d.installment.text
	}
}

func (d *vehicleTaxDraft) setDescription() {
	if d.description.missing() && d.year.present && !d.year.invalid {
		d.description = textField{value: fmt.Sprintf("IPVA %d", d.year.value), present: true}
	}
}

func (d *vehicleTaxDraft) setInstallment() {
	if d.installment.singlePayment() {
		d.installment = installmentField{present: true, text: uniqueInstallment}
	}
}

func NormalizeVehicleTax(raw map[string]any) (VehicleTax, error) {
	d := vehicleTaxDraft{
		amount:      cents(raw, "Valor"),
		description: readText(raw, "DescricaoServico"),
		installment: readInstallment(raw, "Cota"),
		typ:         KindVehicleTax,
		year:        readInt(raw, "Exercicio"),
	}
	d.buildTitle()
	d.setDescription()
	d.setInstallment()

	if err := validateVehicleTax(d); err != nil {
		return VehicleTax{}, err
	}

	record := VehicleTax{
		Amount:      d.amount.value,
		Description: d.description.value,
		Title:       d.title,
		Type:        d.typ,
		Year:        d.year.value,
	}
	if d.installment.present {
		var inst Installment
		if d.installment.isNumber {
			inst = NumberedInstallment(d.installment.number)
		} else {
			inst = UniqueInstallment()
		}
		record.Installment = &inst
	}
	return record, nil
}

// yearDraft is shared by the categories whose records are keyed by year only.
type yearDraft struct {
	amount      numberField
	description textField
	title       string
	typ         Kind
	year        intField
}

func (d *yearDraft) defaultDescription(prefix string) {
	if d.description.missing() && d.year.present && !d.year.invalid {
		d.description = textField{value: fmt.Sprintf("%s %d", prefix, d.year.value), present: true}
	}
}

func NormalizeInsurance(raw map[string]any) (Insurance, error) {
	d := yearDraft{
		amount:      cents(raw, "Valor"),
		description: readText(raw, "DescricaoServico"),
		title:       TitleInsurance,
		typ:         KindInsurance,
		year:        readInt(raw, "Exercicio"),
	}
	d.defaultDescription("DPVAT")

	if err := validateYearRecord(d); err != nil {
		return Insurance{}, err
	}

	return Insurance{
		Amount:      d.amount.value,
		Description: d.description.value,
		Title:       d.title,
		Type:        d.typ,
		Year:        d.year.value,
	}, nil
}

func NormalizeLicensing(raw map[string]any) (Licensing, error) {
	d := yearDraft{
		amount:      cents(raw, "TaxaLicenciamento"),
		description: readText(raw, "DescricaoLicenciamento"),
		title:       TitleLicensing,
		typ:         KindLicensing,
		year:        readInt(raw, "Exercicio"),
	}
	d.defaultDescription("Licenciamento")

	if err := validateYearRecord(d); err != nil {
		return Licensing{}, err
	}

	return Licensing{
		Amount:      d.amount.value,
		Description: d.description.value,
		Title:       d.title,
		Type:        d.typ,
		Year:        d.year.value,
	}, nil
}

// Normalize dispatches a raw item to the normalizer of its category.
func Normalize(kind Kind, raw map[string]any) (Debt, error) {
	var (
		debt Debt
		err  error
	)
	switch kind {
	case KindTicket:
		debt, err = NormalizeTicket(raw)
	case KindVehicleTax:
		debt, err = NormalizeVehicleTax(raw)
	case KindInsurance:
		debt, err = NormalizeInsurance(raw)
	case KindLicensing:
		debt, err = NormalizeLicensing(raw)
	default:
		return nil, fmt.Errorf("unknown debt kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return debt, nil
}
