package service

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var serviceLog *log.Logger

func init() {
	if os.Getenv("TURTLEGO_DEBUG") != "" {
		logPath := filepath.Join(os.TempDir(), "turtlego-service-debug.log")
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600) // #nosec G304 -- fixed filename in temp dir
		if err != nil {
			serviceLog = log.New(os.Stderr, "SERVICE: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
		} else {
			serviceLog = log.New(f, "SERVICE: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
		}
	} else {
		serviceLog = log.New(io.Discard, "", 0)
	}
}
