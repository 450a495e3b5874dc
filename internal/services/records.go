package services

import "catalog/internal/validation"

// The helpers below read fields from a record that already passed validation.

func stringField(rec validation.Record, key string) *string {
	s, ok := rec[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func floatField(rec validation.Record, key string) *float64 {
	f, ok := rec[key].(float64)
	if !ok {
		return nil
	}
	return &f
}

func stringsField(rec validation.Record, key string) *[]string {
	ids, ok := rec[key].([]string)
	if !ok {
		return nil
	}
	return &ids
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// confirmed reports whether the record carries confirmed: true.
func confirmed(rec validation.Record) bool {
	v, ok := rec["confirmed"].(bool)
	return ok && v
}
