// Package merge implements the idempotent artifact merge contract: text
// blocks are spliced into existing artifacts immediately before their
// final closing delimiter, never overwriting prior content. The package
// operates on text only; reading and writing artifacts is the caller's
// concern.
package merge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnmergeable is returned when an existing artifact has no
// recognizable closing delimiter. The condition is recoverable: callers
// skip the artifact and continue.
var ErrUnmergeable = errors.New("graphforge: artifact has no closing delimiter")

// UnmergeableError reports an artifact that cannot accept an appended
// block.
type UnmergeableError struct {
	Closing string
}

// Error implements the error interface.
func (e *UnmergeableError) Error() string {
	return fmt.Sprintf("graphforge: no closing delimiter %q in artifact", e.Closing)
}

// Is reports whether the target matches ErrUnmergeable.
func (e *UnmergeableError) Is(target error) bool {
	return target == ErrUnmergeable
}

// Engine merges rendered blocks into artifact text. The closing token is
// the bare closing-scope line that terminates the artifact's wrapper;
// for generated Go artifacts it is "}".
type Engine struct {
	closing string
}

// NewEngine returns an engine splicing before the given bare closing
// token. An empty token defaults to "}".
func NewEngine(closing string) *Engine {
	if closing == "" {
		closing = "}"
	}
	return &Engine{closing: closing}
}

// Closing returns the engine's closing token.
func (e *Engine) Closing() string { return e.closing }

// Merge produces the new artifact content for a rendered block. When the
// artifact is absent (present == false), the block is wrapped via wrap
// and becomes the full content. When present, the block is appended via
// Append. Appending is intentionally not idempotent: merging the same
// block twice produces two copies.
func (e *Engine) Merge(current string, present bool, block string, wrap func(string) string) (string, error) {
	if !present {
		return wrap(block), nil
	}
	return e.Append(current, block)
}

// Append splices the block immediately before the last line of content
// whose trimmed text equals the closing token. All other content, both
// generated and hand-written, is preserved byte-for-byte. Content with
// no such line fails with ErrUnmergeable and is left untouched.
func (e *Engine) Append(content, block string) (string, error) {
	at := e.spliceOffset(content)
	if at < 0 {
		return "", &UnmergeableError{Closing: e.closing}
	}
	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}
	return content[:at] + block + content[at:], nil
}

// spliceOffset returns the byte offset of the start of the last line
// whose trimmed content equals the closing token, or -1.
func (e *Engine) spliceOffset(content string) int {
	offset := -1
	start := 0
	for start <= len(content) {
		end := strings.IndexByte(content[start:], '\n')
		var line string
		if end < 0 {
			line = content[start:]
			end = len(content) - start
		} else {
			line = content[start : start+end]
		}
		if strings.TrimSpace(line) == e.closing {
			offset = start
		}
		start += end + 1
	}
	return offset
}
