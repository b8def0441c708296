// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

//go:generate mockgen -source=interfaces.go -destination=../mock/prompter_mock.go -package=mock

// Prompter asks the user for a single value.
type Prompter interface {
	// Prompt shows label and returns the entered value, or defaultValue
	// when the user submits an empty answer.
	Prompt(label, defaultValue string) (string, error)
}
