package servicedata

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed realistic.yaml
var realisticYAML []byte

// RealisticService is a service as a real customer would enter it.
type RealisticService struct {
	Name     string
	Quantity int64
	Price    decimal.Decimal
	Note     string
}

// OrderScenario is a typical order size.
type OrderScenario struct {
	Description string
	Quantity    int64
	Price       decimal.Decimal
}

type RealisticDataset struct {
	Services  []RealisticService
	Scenarios []OrderScenario
}

type realisticFile struct {
	Services []struct {
		Name     string `yaml:"name"`
		Quantity int64  `yaml:"quantity"`
		Price    string `yaml:"price"`
		Note     string `yaml:"note"`
	} `yaml:"services"`
	Scenarios []struct {
		Description string `yaml:"description"`
		Quantity    int64  `yaml:"quantity"`
		Price       string `yaml:"price"`
	} `yaml:"scenarios"`
}

var realistic = mustParseRealistic(realisticYAML)

// Realistic returns the dataset embedded in the binary. It is parsed once, at startup.
func Realistic() RealisticDataset {
	return realistic
}

// ParseRealistic parses a realistic dataset in YAML form.
func ParseRealistic(data []byte) (RealisticDataset, error) {
	var f realisticFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return RealisticDataset{}, fmt.Errorf("malformed realistic dataset: %w", err)
	}
	var ret RealisticDataset
	for _, s := range f.Services {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return RealisticDataset{}, fmt.Errorf("invalid price for service %q: %w", s.Name, err)
		}
		ret.Services = append(ret.Services, RealisticService{
			Name: s.Name, Quantity: s.Quantity, Price: price, Note: s.Note,
		})
	}
	for _, s := range f.Scenarios {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return RealisticDataset{}, fmt.Errorf("invalid price for scenario %q: %w", s.Description, err)
		}
		ret.Scenarios = append(ret.Scenarios, OrderScenario{
			Description: s.Description, Quantity: s.Quantity, Price: price,
		})
	}
	return ret, nil
}

func mustParseRealistic(data []byte) RealisticDataset {
	ret, err := ParseRealistic(data)
	if err != nil {
		panic(err)
	}
	return ret
}
