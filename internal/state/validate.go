// Package state validates, normalises and merges the player's owned state.
// Every read, write and import passes through Validate before reaching
// storage or the shortfall calculator.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
)

// Top-level document keys
const (
	KeyMaterials   = "materials"
	KeyArmorLevels = "armorLevels"
	KeyRupees      = "rupees"

	pathRoot = "(root)"
)

// Default returns the empty owned state
func Default() domain.OwnedState {
	return domain.OwnedState{
		Materials:   map[string]int{},
		ArmorLevels: map[string]domain.Level{},
		Rupees:      0,
	}
}

// Seeded returns the empty owned state with every armor id at level 0
func Seeded(armorIDs []string) domain.OwnedState {
	s := Default()
	for _, id := range armorIDs {
		s.ArmorLevels[id] = domain.LevelMin
	}
	return s
}

// Validate turns untrusted input into a normalised OwnedState.
// raw may be a decoded JSON object (map[string]interface{}), a
// domain.OwnedState or a *domain.OwnedState. Failures are *ValidationError.
func Validate(raw interface{}) (domain.OwnedState, error) {
	switch v := raw.(type) {
	case domain.OwnedState:
		return validateTyped(v)
	case *domain.OwnedState:
		if v == nil {
			return domain.OwnedState{}, rootError("expected an object, got null")
		}
		return validateTyped(*v)
	case map[string]interface{}:
		return validateDocument(v)
	case nil:
		return domain.OwnedState{}, rootError("expected an object, got null")
	default:
		return domain.OwnedState{}, rootError(fmt.Sprintf("expected an object, got %T", raw))
	}
}

// Parse decodes a JSON document and validates it
func Parse(data []byte) (domain.OwnedState, error) {
	doc, err := Decode(data)
	if err != nil {
		return domain.OwnedState{}, err
	}
	return Validate(doc)
}

// Decode parses JSON text into a generic value, keeping numbers as json.Number.
// Malformed text is reported as a *ValidationError.
func Decode(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, rootError(fmt.Sprintf("malformed JSON: %v", err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, rootError("malformed JSON: unexpected data after document")
	}
	return doc, nil
}

// Encode renders a state as the pretty-printed export document
func Encode(s domain.OwnedState) ([]byte, error) {
	normalized, err := validateTyped(s)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(normalized, "", "  ")
}

func rootError(msg string) error {
	var is issues
	is.add(pathRoot, "%s", msg)
	return is.err()
}

func validateDocument(doc map[string]interface{}) (domain.OwnedState, error) {
	var is issues
	out := Default()

	if raw, ok := doc[KeyMaterials]; ok && raw != nil {
		entries, isObject := raw.(map[string]interface{})
		if !isObject {
			is.add(KeyMaterials, "expected an object, got %T", raw)
		}
		for id, v := range entries {
			path := KeyMaterials + "." + id
			n, err := coerceInt(v)
			if err != nil {
				is.add(path, "%v", err)
				continue
			}
			if n < 0 {
				is.add(path, "must be greater than or equal to 0, got %d", n)
				continue
			}
			out.Materials[id] = n
		}
	}

	if raw, ok := doc[KeyArmorLevels]; ok && raw != nil {
		entries, isObject := raw.(map[string]interface{})
		if !isObject {
			is.add(KeyArmorLevels, "expected an object, got %T", raw)
		}
		for id, v := range entries {
			path := KeyArmorLevels + "." + id
			n, err := coerceInt(v)
			if err != nil {
				is.add(path, "%v", err)
				continue
			}
			level := domain.Level(n)
			if !level.Valid() {
				is.add(path, "must be between %d and %d, got %d", domain.LevelMin, domain.LevelMax, n)
				continue
			}
			out.ArmorLevels[id] = level
		}
	}

	if raw, ok := doc[KeyRupees]; ok && raw != nil {
		n, err := coerceInt(raw)
		switch {
		case err != nil:
			is.add(KeyRupees, "%v", err)
		case n < 0:
			is.add(KeyRupees, "must be greater than or equal to 0, got %d", n)
		default:
			out.Rupees = n
		}
	}

	if err := is.err(); err != nil {
		return domain.OwnedState{}, err
	}
	return out, nil
}

func validateTyped(s domain.OwnedState) (domain.OwnedState, error) {
	var is issues
	for id, n := range s.Materials {
		if n < 0 {
			is.add(KeyMaterials+"."+id, "must be greater than or equal to 0, got %d", n)
		} else if n > MaxQuantity {
			is.add(KeyMaterials+"."+id, "%v, must be at most %d", errOutOfBounds, MaxQuantity)
		}
	}
	for id, level := range s.ArmorLevels {
		if !level.Valid() {
			is.add(KeyArmorLevels+"."+id, "must be between %d and %d, got %d", domain.LevelMin, domain.LevelMax, level)
		}
	}
	if s.Rupees < 0 {
		is.add(KeyRupees, "must be greater than or equal to 0, got %d", s.Rupees)
	} else if s.Rupees > MaxQuantity {
		is.add(KeyRupees, "%v, must be at most %d", errOutOfBounds, MaxQuantity)
	}
	if err := is.err(); err != nil {
		return domain.OwnedState{}, err
	}
	return s.Clone(), nil
}
