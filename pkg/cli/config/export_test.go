package config

import "time"

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func NewBackendForTest(url string, timeout time.Duration) *Backend {
	return &Backend{url: url, timeout: timeout}
}

func NewConsoleForTest(path string) *Console {
	return &Console{path: path}
}

func NewVerifyForTest(enabled bool, slackAPIURL string) *Verify {
	return &Verify{enabled: enabled, slackAPIURL: slackAPIURL}
}
