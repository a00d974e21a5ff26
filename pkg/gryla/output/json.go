// Package output serializes mining results.
package output

import (
	"encoding/json"

	"github.com/gryla-project/gryla-go/pkg/gryla/models"
)

// ToJSON serializes a mining result to JSON.
func ToJSON(res *models.Result, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(res, "", "  ")
	}
	return json.Marshal(res)
}
