// Package orderstatus enumerates the lifecycle stages of a customer order.
package orderstatus

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/bigboy/appconfig/internal/locale"
)

// Status is the stable code of an order lifecycle stage.
type Status string

const (
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
	Preparing Status = "preparing"
	Ready     Status = "ready"
	Served    Status = "served"
	Cancelled Status = "cancelled"
)

// ErrUnknownStatus is returned for codes outside the status set.
var ErrUnknownStatus = errors.New("unknown order status")

type entry struct {
	status Status
	label  locale.Text
}

var statuses = []entry{
	{Pending, locale.Text{language.Vietnamese: "Chờ xác nhận", language.English: "Submitted"}},
	{Confirmed, locale.Text{language.Vietnamese: "Đã xác nhận", language.English: "Accepted"}},
	{Preparing, locale.Text{language.Vietnamese: "Đang chuẩn bị", language.English: "In preparation"}},
	{Ready, locale.Text{language.Vietnamese: "Sẵn sàng", language.English: "Ready"}},
	{Served, locale.Text{language.Vietnamese: "Đã phục vụ", language.English: "Delivered"}},
	{Cancelled, locale.Text{language.Vietnamese: "Đã hủy", language.English: "Cancelled"}},
}

// All returns the statuses in lifecycle order.
func All() []Status {
	out := make([]Status, len(statuses))
	for i, e := range statuses {
		out[i] = e.status
	}
	return out
}

// Parse resolves a status code. Matching ignores case and surrounding space.
func Parse(code string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(code)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, code)
	}
	return s, nil
}

// Label returns the display label of s in lang, or the code itself for unknown statuses.
func (s Status) Label(lang language.Tag) string {
	for _, e := range statuses {
		if e.status == s {
			return e.label.In(lang)
		}
	}
	return string(s)
}

// Labels returns the label of s in every supported language.
func (s Status) Labels() locale.Text {
	for _, e := range statuses {
		if e.status == s {
			out := make(locale.Text, len(e.label))
			for k, v := range e.label {
				out[k] = v
			}
			return out
		}
	}
	return nil
}

// Valid reports whether s belongs to the status set.
func (s Status) Valid() bool {
	for _, e := range statuses {
		if e.status == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition follows s.
func (s Status) Terminal() bool {
	return s == Served || s == Cancelled
}

func (s Status) String() string {
	return string(s)
}
