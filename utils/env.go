package utils

import "clinicore/config"

// IsProduction reports whether the server runs with a production profile.
func IsProduction() bool {
	return config.AppConfig.Env == "production"
}
