package corpus

import (
	"encoding/json"
	"os"
)

// saveRawForTest writes raw records the way the scraper would.
func saveRawForTest(path string, raws []RawRecord) error {
	data, err := json.MarshalIndent(raws, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
