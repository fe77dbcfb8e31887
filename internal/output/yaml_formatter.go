package output

import (
	"github.com/rpgo/mccall/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the model comparison as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string      { return "yaml" }
func (y YAMLFormatter) Extension() string { return "yaml" }

func (y YAMLFormatter) Format(results *domain.ModelComparison) ([]byte, error) {
	return yaml.Marshal(results)
}
