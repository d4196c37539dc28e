package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GermanFOSSIL/candapp/internal/candapp/entity"
)

// FormValue is one resolved submission value, in descriptor order. Value is
// the canonical string representation used by the document renderer.
type FormValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Resolve validates submitted values against the descriptor list and returns
// one value per descriptor, in descriptor order. Fields absent from the
// submission take the descriptor default. Nothing is persisted here; callers
// act on the result only after an explicit submit.
func Resolve(fields []entity.FieldDescriptor, submitted map[string]string) ([]FormValue, error) {
	values := make([]FormValue, 0, len(fields))
	for _, f := range fields {
		raw, ok := submitted[f.Name]
		if !ok {
			values = append(values, FormValue{Name: f.Name, Value: defaultString(f)})
			continue
		}
		v, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		values = append(values, FormValue{Name: f.Name, Value: v})
	}
	return values, nil
}

func coerce(f entity.FieldDescriptor, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch f.Kind {
	case entity.FieldText:
		return raw, nil
	case entity.FieldNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("schema: field %q: %q is not a number", f.Name, raw)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case entity.FieldBoolean:
		return strconv.FormatBool(strings.EqualFold(raw, "true")), nil
	case entity.FieldSelect:
		for _, o := range f.Options {
			if o == raw {
				return raw, nil
			}
		}
		return "", fmt.Errorf("schema: field %q: %q is not among options %v", f.Name, raw, f.Options)
	case entity.FieldDate:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format(entity.DateLayout), nil
			}
		}
		return "", fmt.Errorf("schema: field %q: %q is not a date", f.Name, raw)
	}
	return raw, nil
}

func defaultString(f entity.FieldDescriptor) string {
	switch v := f.Default.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
