package handler // handler defines http handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// reqTimeout bounds every database call made from a handler.
const reqTimeout = 5 * time.Second

// dateLayout is the format the date inputs on the forms submit.
const dateLayout = "2006-01-02"

func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), reqTimeout)
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// parseDate parses a form date value.
func parseDate(v string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(v))
}

// parsePriceCents converts a decimal form amount like "10.00" or "5" to
// integer cents.  At most two fraction digits are accepted.
func parsePriceCents(v string) (int64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	whole, frac, _ := strings.Cut(v, ".")
	cents, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || cents < 0 {
		return 0, errors.New("invalid amount")
	}
	cents *= 100
	if frac != "" {
		if len(frac) > 2 {
			return 0, errors.New("invalid amount")
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil || f < 0 {
			return 0, errors.New("invalid amount")
		}
		cents += f
	}
	return cents, nil
}
