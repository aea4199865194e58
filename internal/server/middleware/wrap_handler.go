package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"runtime"

	"github.com/labstack/echo/v4"
)

var (
	echoContextType = reflect.TypeOf((*echo.Context)(nil)).Elem()
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
)

// WrapHandler turns func(echo.Context, Req) (Data, error) or
// func(echo.Context, Req) error into an echo handler. Req is bound and
// validated with BindAndValidate, Data is written as a successful Response.
func WrapHandler(f interface{}) echo.HandlerFunc {
	handler, err := wrapHandler(f)
	if err != nil {
		panic(err)
	}

	return handler
}

func wrapHandler(f interface{}) (echo.HandlerFunc, error) {
	fVal := reflect.ValueOf(f)
	if fVal.Kind() != reflect.Func {
		return nil, fmt.Errorf("invalid function passed to wrap handler: %v", fVal)
	}
	fTyp := fVal.Type()
	fName := runtime.FuncForPC(fVal.Pointer()).Name()

	if numIn := fTyp.NumIn(); numIn != 2 {
		return nil, fmt.Errorf("[%s] invalid function arguments length: %d", fName, numIn)
	}
	if !fTyp.In(0).Implements(echoContextType) {
		return nil, fmt.Errorf("[%s] first argument must has type echo.Context", fName)
	}
	reqType := fTyp.In(1)
	if reqType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("[%s] second argument must has type struct: %v", fName, reqType.Kind())
	}

	numOut := fTyp.NumOut()
	if numOut < 1 || numOut > 2 {
		return nil, fmt.Errorf("[%s] invalid function returns length: %d", fName, numOut)
	}
	errorIndex := numOut - 1
	if !fTyp.Out(errorIndex).Implements(errorType) {
		return nil, fmt.Errorf("[%s] last return argument must has type error: %v", fName, fTyp.Out(errorIndex))
	}

	handler := func(c echo.Context) error {
		req := reflect.New(reqType)
		if err := BindAndValidate(c, req.Interface()); err != nil {
			return err
		}

		res := fVal.Call([]reflect.Value{reflect.ValueOf(c), req.Elem()})
		if errVal := res[errorIndex]; !errVal.IsNil() {
			return errVal.Interface().(error)
		}

		if c.Response().Committed {
			return nil
		}
		if numOut == 1 {
			return c.NoContent(http.StatusNoContent)
		}

		data := res[0].Interface()
		resp, ok := data.(*Response)
		if !ok {
			resp = &Response{
				Status:  http.StatusOK,
				Success: true,
				Data:    data,
			}
		}
		if resp.Status == 0 {
			resp.Status = http.StatusOK
		}
		return c.JSON(resp.Status, resp)
	}

	return handler, nil
}
