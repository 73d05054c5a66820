package merge

import "strings"

// Inject splices a linkage statement into the artifact, guarded by a
// presence check: when the exact statement already occurs anywhere in
// the content, the content is returned unchanged and injected reports
// false. Re-running the same injection is therefore a no-op; this is the
// one idempotency guarantee the engine makes.
func (e *Engine) Inject(content, stmt string) (out string, injected bool, err error) {
	if strings.Contains(content, stmt) {
		return content, false, nil
	}
	out, err = e.Append(content, stmt)
	if err != nil {
		return content, false, err
	}
	return out, true, nil
}
