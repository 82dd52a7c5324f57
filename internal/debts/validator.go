package debts

const (
	msgRequired    = "This field is required."
	msgBlank       = "This field may not be blank."
	msgNumber      = "A valid number is required."
	msgInteger     = "A valid integer is required."
	msgString      = "Not a valid string."
	msgNonNegative = "Ensure this value is greater than or equal to 0."
	msgPositive    = "Ensure this value is greater than 0."
	msgInstallment = `Installment must be an integer between 1 and 8 or "unique".`
	minInstallment = 1
	maxInstallment = 8
)

func checkAmount(errs fieldErrors, amount numberField) {
	switch {
	case !amount.present:
		errs.add("amount", msgRequired)
	case amount.invalid:
		errs.add("amount", msgNumber)
	case amount.value < 0:
		errs.add("amount", msgNonNegative)
	}
}

// ticket amounts are fines and can never be zero
func checkPositiveAmount(errs fieldErrors, amount numberField) {
	switch {
	case !amount.present:
		errs.add("amount", msgRequired)
	case amount.invalid:
		errs.add("amount", msgNumber)
	case amount.value <= 0:
		errs.add("amount", msgPositive)
	}
}

func checkRequiredText(errs fieldErrors, name string, t textField) {
	switch {
	case !t.present:
		errs.add(name, msgRequired)
	case t.invalid:
		errs.add(name, msgString)
	case t.blank():
		errs.add(name, msgBlank)
	}
}

// optional text may be absent or blank, but must be a string when sent
func checkOptionalText(errs fieldErrors, name string, t textField) {
	if t.present && t.invalid {
		errs.add(name, msgString)
	}
}

func checkFixed(errs fieldErrors, name, value string) {
	if value == "" {
		errs.add(name, msgRequired)
	}
}

func checkYear(errs fieldErrors, year intField) {
	switch {
	case !year.present:
		errs.add("year", msgRequired)
	case year.invalid:
		errs.add("year", msgInteger)
	}
}

func validateTicket(d ticketDraft) error {
	errs := fieldErrors{}
	checkPositiveAmount(errs, d.amount)
	checkRequiredText(errs, "auto_infraction", d.autoInfraction)
	checkRequiredText(errs, "description", d.description)
	checkFixed(errs, "title", d.title)
	checkFixed(errs, "type", string(d.typ))
	return errs.toError(KindTicket)
}

func validateVehicleTax(d vehicleTaxDraft) error {
	errs := fieldErrors{}
	checkAmount(errs, d.amount)
	checkOptionalText(errs, "description", d.description)
	if inst := d.installment; inst.present {
		validNumber := inst.isNumber && inst.number >= minInstallment && inst.number <= maxInstallment
		if !validNumber && inst.text != uniqueInstallment {
			errs.add("installment", msgInstallment)
		}
	}
	checkFixed(errs, "title", d.title)
	checkFixed(errs, "type", string(d.typ))
	checkYear(errs, d.year)
	return errs.toError(KindVehicleTax)
}

func validateYearRecord(d yearDraft) error {
	errs := fieldErrors{}
	checkAmount(errs, d.amount)
	checkOptionalText(errs, "description", d.description)
	checkFixed(errs, "title", d.title)
	checkFixed(errs, "type", string(d.typ))
	checkYear(errs, d.year)
	return errs.toError(d.typ)
}
