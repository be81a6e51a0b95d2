// Copyright 2020 ConsenSys AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package glog is the package-wide logger for algorithm-selection
// decisions (which polynomial multiplication / GCD / division rung was
// taken, and why). It never logs from a hot inner loop.
package glog

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(io.Discard).With().Timestamp().Logger()
)

// Logger returns the current package-wide logger. Defaults to a
// discarding writer, so embedding applications pay nothing unless they
// opt in with SetOutput.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetOutput redirects the package-wide logger to w, e.g. os.Stderr
// during debugging. It takes the same lock as Logger(), so the two may
// be called concurrently.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w).With().Timestamp().Logger()
}

func init() {
	if os.Getenv("FLINTGO_DEBUG") != "" {
		SetOutput(os.Stderr)
	}
}
