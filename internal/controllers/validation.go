package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"trip_ledger/internal/models"
)

func init() {
	// report json field names ("nopol") instead of Go names ("PlateNumber")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
	}
}

// fieldErrors is the 422 body: field name -> messages.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func respondValidation(c *gin.Context, errs fieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

// bindErrors turns a binding error into field-level messages.
func bindErrors(err error) fieldErrors {
	errs := fieldErrors{}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			errs.add(fe.Field(), validationMessage(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		errs.add(field, fmt.Sprintf("The %s field must be a %s.", field, kindName(typeErr.Type)))
	case errors.As(err, &numErr):
		errs.add("body", fmt.Sprintf("%q is not a number.", numErr.Num))
	default:
		errs.add("body", err.Error())
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid. Allowed: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "max":
		return fmt.Sprintf("The %s field is out of range.", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	}
	return t.Kind().String()
}

// amount is a money field that accepts a JSON number, a numeric JSON string
// ("100") or a form value.
type amount int64

var int64Type = reflect.TypeOf(int64(0))

func (a *amount) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return &json.UnmarshalTypeError{Value: "string", Type: int64Type}
		}
		*a = amount(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amount(n)
	return nil
}

func (a *amount) UnmarshalParam(param string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(param), 10, 64)
	if err != nil {
		return err
	}
	*a = amount(n)
	return nil
}

// parseInputDate accepts "YYYY-MM-DD" or an RFC3339 timestamp.
func parseInputDate(s string) (models.Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return models.DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return models.DateOf(t), nil
}

// parseID reads the :id path param; anything that is not a positive integer
// is answered as a missing record.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondNotFound(c)
		return 0, false
	}
	return uint(id), true
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Data not found"})
}
