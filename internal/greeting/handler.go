package greeting

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/codd-collab/lang-server/internal/models"
)

// Text is the static greeting served by GET /api/greeting.
const Text = "Hello from the Al-Khwarizmi/Ellis/Codd collaborative server!"

// Handle answers with the greeting and the current server time in RFC 3339.
func Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Greeting{
		Text:      Text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
