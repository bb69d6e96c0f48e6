package utils

import (
	"fmt"
	"strconv"
)

const defaultPort = 8080

func getPort(httpPort string) int {
	port, err := strconv.Atoi(httpPort)
	if err != nil || port < 10 || port > 65535 {
		return defaultPort
	}
	return port
}

// GetListenAddress binds every interface in production and the default
// interface elsewhere.
func GetListenAddress(httpPort, appEnv string) string {
	port := getPort(httpPort)

	if appEnv == "production" {
		return fmt.Sprintf("0.0.0.0:%d", port)
	}
	return fmt.Sprintf(":%d", port)
}
