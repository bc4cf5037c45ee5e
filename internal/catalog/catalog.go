// Package catalog holds the read-only alphabet reference table.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"cardbot/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed letterforms.yaml
var letterformsYAML []byte

var (
	loadOnce    sync.Once
	letterforms []domain.Letterform
	loadErr     error
)

// Letterforms returns the alphabet table in order. The returned slice is a
// copy.
func Letterforms() ([]domain.Letterform, error) {
	loadOnce.Do(func() {
		letterforms, loadErr = parse(letterformsYAML)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]domain.Letterform, len(letterforms))
	copy(out, letterforms)
	return out, nil
}

func parse(raw []byte) ([]domain.Letterform, error) {
	var forms []domain.Letterform
	if err := yaml.Unmarshal(raw, &forms); err != nil {
		return nil, fmt.Errorf("parse letterforms: %w", err)
	}
	for i, f := range forms {
		if f.Isolated == "" || f.Romanization == "" {
			return nil, fmt.Errorf("letterform %d: isolated form and romanization are required", i)
		}
	}
	return forms, nil
}
