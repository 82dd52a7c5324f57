package validation

import (
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

func Validate(data interface{}) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(data)
}

func IsValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

var renavamWeights = []int{2, 3, 4, 5, 6, 7, 8, 9, 2, 3}

// ValidateRenavam checks the RENAVAM check digit. Numbers issued with 9
// digits are left-padded with zeros to the current 11-digit form.
func ValidateRenavam(renavam string) bool {
	renavam = strings.TrimSpace(renavam)
	if len(renavam) < 9 || len(renavam) > 11 {
		return false
	}
	for _, c := range renavam {
		if c < '0' || c > '9' {
			return false
		}
	}
	renavam = strings.Repeat("0", 11-len(renavam)) + renavam

	if renavam == strings.Repeat(renavam[:1], 11) {
		return false
	}

	sum := 0
	for i := 0; i < 10; i++ {
		sum += int(renavam[9-i]-'0') * renavamWeights[i]
	}
	check := (sum * 10) % 11
	if check == 10 {
		check = 0
	}
	return check == int(renavam[10]-'0')
}
