package repository

import (
	"strconv"
	"strings"
	"time"
)

// Helpers de lectura tolerante para Document: los adaptadores entregan tipos normalizados,
// pero los documentos históricos pueden traer fechas como texto o números guardados como string.

// String devuelve el campo como string ("" si falta o no es texto).
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// Strings devuelve el campo como lista de strings, ignorando elementos que no sean texto.
func (d Document) Strings(field string) []string {
	switch v := d[field].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Bool devuelve el campo como bool (false si falta).
func (d Document) Bool(field string) bool {
	b, _ := d[field].(bool)
	return b
}

// Float devuelve el campo numérico como float64 y si estaba presente.
func (d Document) Float(field string) (float64, bool) {
	return toFloat(d[field])
}

// Int devuelve el campo numérico truncado a int.
func (d Document) Int(field string) int {
	f, _ := toFloat(d[field])
	return int(f)
}

// Map devuelve un subdocumento (nil si falta).
func (d Document) Map(field string) Document {
	switch v := d[field].(type) {
	case map[string]any:
		return Document(v)
	case Document:
		return v
	default:
		return nil
	}
}

// Time devuelve el campo como time.Time. Acepta time.Time, RFC 3339 y milisegundos Unix;
// si el valor es inválido devuelve el instante cero.
func (d Document) Time(field string) time.Time {
	switch v := d[field].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v)); err == nil {
			return t
		}
	case int64:
		return time.UnixMilli(v)
	case float64:
		return time.UnixMilli(int64(v))
	}
	return time.Time{}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Clone copia el documento en profundidad (mapas y slices), para que los adaptadores
// no compartan memoria con el llamador.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case Document:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	default:
		return v
	}
}
