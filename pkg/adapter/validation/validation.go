// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package validation provides the field validator of the use cases
// layer using the github.com/go-playground/validator/v10 module.
// In addition to the builtin tags (e.g., min and max), the model.Rule*
// custom tags are registered, so entity descriptors may refer to them
// in their field Rules.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/soutside/bookweb/pkg/core/model"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9+()\-\s]{7,}$`)
)

// New instantiates a validator with the custom tags registered.
// The returned *validator.Validate may be used concurrently and it
// realizes the recordsuc.Validator interface by its Var method.
func New() (*validator.Validate, error) {
	v := validator.New()
	if err := Register(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Register adds the custom tags to an existing v validator.
func Register(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		model.RulePersonName: personName,
		model.RuleEmail:      matcher(emailRe),
		model.RulePhone:      matcher(phoneRe),
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("registering %q tag: %w", tag, err)
		}
	}
	return nil
}

// personName accepts strings having at least two characters after
// trimming the surrounding white spaces.
func personName(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(f.String())) >= 2
}

func matcher(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.Kind() == reflect.String && re.MatchString(f.String())
	}
}
