package dwc

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/pkg/errcode"
)

// ISODate is the canonical calendar-date layout of normalized
// eventDate values.
const ISODate = "2006-01-02"

// dateLayouts are the source layouts ParseEventDate tries, in order.
// Month-first layouts come before day-first ones because the source
// files occdb was written for use US-style dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2 Jan 2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseEventDate reparses a textual event date into ISO 8601
// calendar-date form. A date that matches none of the known layouts is
// a loud error naming the field and the offending value; silent null
// dates are not an option.
func ParseEventDate(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", dateError(s, fmt.Errorf("empty value"))
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t.Format(ISODate), nil
		}
	}
	return "", dateError(s, fmt.Errorf("unknown date layout"))
}

func dateError(val string, err error) error {
	msg := "Cannot parse eventDate <em>'%s'</em>"
	vars := []any{val}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NormalizeDateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed eventDate %q: %w",
			fn, val, err),
	}
}
