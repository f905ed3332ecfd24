package browser

import (
	"encoding/json"
	"fmt"
)

// Selectors of the web application contain single quotes, so they are embedded in scripts as
// JSON string literals.
func jsString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

// confirmClickScript clicks the first element matching the selector, and returns false if there
// is none. The click happens after the script has returned, so the confirmation dialog that it
// opens does not block the evaluation.
func confirmClickScript(selector string) string {
	return fmt.Sprintf(`(function() {
	const el = document.querySelector(%s);
	if (!el) { return false; }
	setTimeout(() => el.click(), 0);
	return true;
})()`, jsString(selector))
}

const readyStateScript = `document.readyState`
