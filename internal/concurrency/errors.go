// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import "errors"

// ErrExecutorClosed is returned by Executor.Submit after Close.
var ErrExecutorClosed = errors.New("concurrency: executor is closed")
