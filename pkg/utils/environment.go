// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package utils

import "strings"

type Environment string

const (
	PRODUCTION  Environment = "production"
	DEVELOPMENT Environment = "development"
)

func (e Environment) Get() string {
	return string(e)
}

// FromEnvironmentStr maps a config value to an Environment, defaulting to development.
func FromEnvironmentStr(s string) Environment {
	switch strings.ToLower(s) {
	case "production":
		return PRODUCTION
	default:
		return DEVELOPMENT
	}
}
