// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/skirmish/config"
	"github.com/shashiranjanraj/skirmish/pkg/validate"
)

const defaultMaxBody = 1 << 20

// maxBodyBytes reads the MAX_BODY_BYTES limit, defaulting to 1 MB.
func maxBodyBytes() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxBody
	}
	return n
}

// JSON decodes r.Body into dest and runs tag validation. The body is capped
// at MAX_BODY_BYTES. An empty body decodes to the zero value so optional
// bodies validate like any other.
//
// Returns (errs, nil) on validation failures and (nil, err) on malformed or
// oversized JSON.
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	limited := http.MaxBytesReader(nil, r.Body, maxBodyBytes())
	raw, err := io.ReadAll(limited)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		}
		return nil, fmt.Errorf("read body: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, dest); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
