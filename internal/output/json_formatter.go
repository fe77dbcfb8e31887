package output

import (
	"encoding/json"

	"github.com/rpgo/mccall/internal/domain"
)

// JSONFormatter serializes the model comparison as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(results *domain.ModelComparison) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
