package publishers

import "github.com/samvad-hq/emotion-sdk/pkg/emotion"

// Logger is the object-logging surface shared with the emotion client.
type Logger = emotion.Logger

type discardLogger struct{}

func (discardLogger) InfoObj(string, string, interface{})  {}
func (discardLogger) DebugObj(string, string, interface{}) {}
func (discardLogger) WarnObj(string, string, interface{})  {}
func (discardLogger) ErrorObj(string, string, interface{}) {}

func orDiscard(log Logger) Logger {
	if log == nil {
		return discardLogger{}
	}
	return log
}
