package middleware

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/cstockton/go-conv"
	"github.com/labstack/echo/v4"
)

// BindAndValidate binds path params, query, body and headers into req, then
// validates it. Invalid requests are answered with 400.
func BindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	if err := bindHeader(c.Request().Header, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

// bindHeader decode http header to struct by tag `header:"<header_name>"`
// out must be a pointer to a struct
func bindHeader(header http.Header, dst interface{}) error {
	getValueFn := func(tagValue string) (interface{}, bool) {
		if _, ok := header[http.CanonicalHeaderKey(tagValue)]; !ok {
			return nil, false
		}
		return header.Get(tagValue), true
	}

	return bindStruct(dst, "header", getValueFn)
}

// bindStruct decode to struct by custom tag `tagName:"tagValue"`
// dst must be a pointer to a struct
func bindStruct(dst interface{}, tagName string, getValueFn func(tagValue string) (interface{}, bool)) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return fmt.Errorf("non-pointer passed to bind %s", tagName)
	}

	indirect := reflect.Indirect(ptr)
	if indirect.Kind() != reflect.Struct {
		return fmt.Errorf("cannot bind %s into %s", tagName, indirect.Kind())
	}
	structType := indirect.Type()

	for i := 0; i < structType.NumField(); i++ {
		structField := structType.Field(i)
		tagValue := structField.Tag.Get(tagName)
		if tagValue == "-" || tagValue == "" {
			continue
		}

		value, ok := getValueFn(tagValue)
		if !ok {
			continue
		}
		field := indirect.Field(i)
		if err := conv.Infer(field, value); err != nil {
			return fmt.Errorf("cannot parse %s.%s as %s from: %#v / %s",
				structType.Name(), structField.Name, field.Type(), value, err)
		}
	}

	return nil
}
