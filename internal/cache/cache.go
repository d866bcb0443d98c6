package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ppiankov/campaignkit/internal/model"
)

// Key derives a cache key from an operation, a raw submission body and the
// UI selection. Drafts are a pure function of these, so equal keys always
// mean equal results.
func Key(operation, body string, selection model.Selection) string {
	h := sha256.New()
	h.Write([]byte(operation))
	h.Write([]byte{0})
	h.Write([]byte(body))
	h.Write([]byte{0})
	// Map keys marshal sorted, so the encoding is stable
	sel, _ := json.Marshal(selection)
	h.Write(sel)
	return "campaignkit:v1:" + hex.EncodeToString(h.Sum(nil))
}
