// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package controller

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	apierrors "github.com/sapcc/jobly/internal/errors"
)

var validate = validator.New()

// decodeQuery fills target from the first value of each query parameter. Values are
// converted weakly, so hasEquity=1 and hasEquity=true are both true. Unknown keys are ignored.
func decodeQuery(query url.Values, target any) error {
	input := make(map[string]any, len(query))
	for key, values := range query {
		if len(values) > 0 {
			input[key] = values[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return apierrors.InvalidInput(err, "invalid query: %s", err.Error())
	}
	if err := validate.Struct(target); err != nil {
		return apierrors.InvalidInput(err, "invalid query: %s", err.Error())
	}
	return nil
}
