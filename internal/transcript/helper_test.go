package transcript

import "github.com/quangdm-dev/meeting-flow/internal/logger"

func testLogger() logger.Logger {
	return logger.New("error")
}
