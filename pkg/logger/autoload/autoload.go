// Package autoload initializes the global logger from LOG_* environment
// variables as a side effect of import.
package autoload

import (
	configx "github.com/Samilincoln/ai-customer-chat/pkg/config"
	logx "github.com/Samilincoln/ai-customer-chat/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
