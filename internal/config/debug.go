package config

import "os"

func IsDebug() bool {
	return os.Getenv("CAMPINNOVA_DEBUG") == "1"
}
