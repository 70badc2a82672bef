// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic web framework, hiding it from the
// routes registration and resource packages behind type aliases and
// providing the standard middlewares. The request logging and panic
// recovery middlewares emit structured records through the process
// default slog logger, so HTTP access logs and application logs share
// one stream and format.
package gin

import (
	"log/slog"

	"github.com/FabienMht/ginslog/logger"
	"github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a request logging middleware which reports the
// method, path, status, and latency of each handled request using the
// default slog logger.
func Logger() HandlerFunc {
	return logger.New(slog.Default())
}

// Recovery returns a panic recovery middleware which logs the failure
// using the default slog logger and responds with the 500 status.
func Recovery() HandlerFunc {
	return recovery.New(slog.Default())
}
