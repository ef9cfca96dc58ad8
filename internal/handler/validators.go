package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)

var registerOnce sync.Once

// Decimals beyond these limits never reach float conversion.
const (
	maxDecimalExponent = 12
	maxDecimalBits     = 62
)

// RegisterValidators installs the custom binding rules on gin's validator:
// decimals validate as numbers, "money" and "gst_rate" bound amounts and
// rates, and "pincode" checks a six digit Indian postal code.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterAlias("money", "gte=0,lte=1000000000000")
		v.RegisterAlias("gst_rate", "gte=0,lte=100")
		_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
			return pincodeRe.MatchString(fl.Field().String())
		})
	})
}

func decimalValue(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	// NaN fails every comparison rule.
	e := d.Exponent()
	if e > maxDecimalExponent || e < -maxDecimalExponent || d.Coefficient().BitLen() > maxDecimalBits {
		return math.NaN()
	}
	f, _ := d.Float64()
	return f
}

// validationMessage flattens binding errors into "field: rule" pairs.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fields[k]))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}

// bindJSON binds the request body, writing a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
		return false
	}
	return true
}
