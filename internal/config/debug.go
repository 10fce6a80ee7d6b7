package config

import "os"

func IsDebug() bool {
	return os.Getenv("BUTLER_DEBUG") == "1"
}
